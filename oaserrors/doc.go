// Package oaserrors provides structured error types for the abeye generator.
//
// Import path: github.com/oeb25/abeye/oaserrors
//
// # Error Types
//
//   - [ParseError]: YAML/JSON parsing failures and structural issues
//   - [ReferenceError]: a schema name missing from components.schemas
//   - [UnsupportedError]: an OpenAPI construct outside the supported subset
//   - [TypeMismatchError]: a text/plain response whose schema is not a string
//   - [ConfigError]: invalid configuration or input options
//
// [SchemaError] and [OperationError] add the schema name or the path and
// method to a wrapped error. Both unwrap, so errors.Is sees through them.
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrUnresolvedReference]: Matches any [ReferenceError]
//   - [ErrUnsupported]: Matches any [UnsupportedError]
//   - [ErrTypeMismatch]: Matches any [TypeMismatchError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// Every failure is terminal for a generation run. There is no partial output.
package oaserrors

// Package oaserrors provides structured error types for abeye.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish an input document that uses
// an out-of-scope OpenAPI feature from one that is simply broken.
//
// # Error Categories
//
//   - ParseError: YAML/JSON parsing failures and structural issues
//   - ReferenceError: a named schema reference that does not exist
//   - UnsupportedError: an OpenAPI construct the generator refuses to type
//   - TypeMismatchError: a schema whose type contradicts its media type
//   - ConfigError: invalid configuration or input options
//
// SchemaError and OperationError carry location context and wrap one of
// the above.
//
// # Usage with errors.Is
//
//	_, err := generator.New().Generate(ctx, doc)
//	if errors.Is(err, oaserrors.ErrUnsupported) {
//	    var opErr *oaserrors.OperationError
//	    if errors.As(err, &opErr) {
//	        fmt.Println("cannot type", opErr.Method, opErr.Path)
//	    }
//	}
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrUnresolvedReference indicates a named schema reference does not exist.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrUnsupported indicates an OpenAPI construct outside the supported subset.
	ErrUnsupported = errors.New("unsupported construct")

	// ErrTypeMismatch indicates a schema type that contradicts its media type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to parse an OpenAPI document.
type ParseError struct {
	// Path is the file path, URL, or source identifier
	Path string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ReferenceError represents a schema reference with no target in the document.
type ReferenceError struct {
	// Ref is the reference string or schema name that failed to resolve
	Ref string
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "unresolved reference"
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}

// UnsupportedError reports an OpenAPI feature the generator does not handle.
type UnsupportedError struct {
	// Construct names the feature, e.g. "anyOf" or "header parameter"
	Construct string
	// Detail adds specifics such as the offending name or media type
	Detail string
}

// Error returns a human-readable error message.
func (e *UnsupportedError) Error() string {
	msg := "unsupported construct"
	if e.Construct != "" {
		msg += ": " + e.Construct
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// Unsupported is shorthand for building an UnsupportedError.
func Unsupported(construct, format string, args ...any) error {
	e := &UnsupportedError{Construct: construct}
	if format != "" {
		e.Detail = fmt.Sprintf(format, args...)
	}
	return e
}

// TypeMismatchError reports a response whose schema does not fit its media type.
type TypeMismatchError struct {
	MediaType string
	Expected  string
	Actual    string
}

// Error returns a human-readable error message.
func (e *TypeMismatchError) Error() string {
	msg := "type mismatch"
	if e.MediaType != "" {
		msg += " for " + e.MediaType
	}
	if e.Expected != "" || e.Actual != "" {
		msg += fmt.Sprintf(": expected %s, got %s", e.Expected, e.Actual)
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// SchemaError locates a failure inside a named component schema.
type SchemaError struct {
	Schema string
	Cause  error
}

// Error returns a human-readable error message.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %q: %v", e.Schema, e.Cause)
}

// Unwrap returns the underlying cause for error chaining.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// OperationError locates a failure inside a path/method pair. Method is
// empty when the failure concerns the path item as a whole.
type OperationError struct {
	Path   string
	Method string
	Cause  error
}

// Error returns a human-readable error message.
func (e *OperationError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Cause)
}

// Unwrap returns the underlying cause for error chaining.
func (e *OperationError) Unwrap() error {
	return e.Cause
}

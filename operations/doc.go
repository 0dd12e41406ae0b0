// Package operations extracts typed request signatures from the paths of an
// OpenAPI document.
//
// For every path item the seven methods DELETE, GET, PUT, POST, HEAD, TRACE
// and PATCH are visited in that order. Each defined operation becomes an
// [Operation] holding its path and query parameter types, its JSON request
// body and the kind of response it yields:
//
//	ex := operations.New(resolver.New(doc))
//	ops, err := ex.ExtractAll(ctx)
//
// Only query and path parameters, single-content JSON request bodies, and
// text/plain, application/json or text/event-stream responses are supported.
// Anything else fails with an error wrapping [oaserrors.ErrUnsupported] and
// locating the offending path and method.
package operations

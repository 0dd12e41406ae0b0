// Package resolver maps OpenAPI schemas onto interned types.
//
// A [Resolver] is bound to one parsed document and one [typesys.Store].
// References to component schemas follow a naming convention: a component
// whose name contains an underscore is a synthetic variant and is inlined
// wherever it is referenced, while every other component is exported on its
// own and referenced by a [typesys.KindReference] placeholder.
//
//	r := resolver.New(result.Document, resolver.WithLogger(logger))
//	types, err := r.ResolveAll(ctx)
//
// Constructs outside the supported subset (anyOf, not, free-form schemas,
// uneven array bounds, discriminators with fewer than two mappings) fail
// with an error matching [oaserrors.ErrUnsupported].
package resolver

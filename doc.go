// Package abeye generates strongly-typed API clients from OpenAPI documents.
//
// The generator reads an OpenAPI 3.x document, resolves every schema into a
// hash-consed internal type, simplifies unions and intersections into a
// canonical form, extracts one signature per path and method, and renders a
// TypeScript module with exported types and a map of request functions.
//
// # Packages
//
//   - parser: load documents from files, URLs, or standard input
//   - typesys: the interned type store and the simplifier
//   - resolver: map OpenAPI schemas to types, memoized per schema name
//   - operations: extract per-endpoint operation signatures
//   - generator: render a TypeScript client module
//   - oaserrors: structured errors for unsupported or broken input
//
// # Quick Start
//
//	result, err := generator.GenerateWithOptions(ctx,
//		generator.WithFilePath("openapi.json"),
//		generator.WithAPIPrefix("/beta/api"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(result.Source)
//
// The command-line tool lives in cmd/abeye:
//
//	abeye generate openapi.json --target ts --output api.ts
//
// Unsupported OpenAPI constructs (header and cookie parameters, anyOf, not,
// free-form schemas, multi-content bodies, and more) fail the whole run with
// an error from package oaserrors instead of producing loose types.
package abeye

// Package generator renders a typed TypeScript client from an OpenAPI
// document.
//
// The output is one self-contained module: a fixed runtime preamble, an
// exported `api` object with one request function per operation, and an
// exported type alias per component schema whose name has no underscore.
// A component that is a union of string literals also gets an exported
// constant listing its values.
//
// # Quick Start
//
//	result, err := generator.GenerateWithOptions(ctx,
//		generator.WithFilePath("openapi.yaml"),
//		generator.WithAPIPrefix("/beta/api"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if _, err := result.WriteFile("src/api.ts"); err != nil {
//		log.Fatal(err)
//	}
//
// # Operation names
//
// The API prefix is removed from each path and the remaining segments are
// joined in lowerCamelCase, so "/beta/api/webgraph/host/ingoing" becomes
// webgraphHostIngoing. A path with several methods prefixes each name with
// the method: getPets, postPets. Two operations that map to the same name
// fail the run.
//
// Generation is all-or-nothing. Any unsupported construct returns an error
// from package oaserrors and no source.
package generator

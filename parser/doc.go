// Package parser loads OpenAPI 3.x documents for the abeye generator.
//
// Documents are accepted as YAML or JSON from a local file, an http(s) URL,
// standard input, an io.Reader, or a byte slice. The decoded [Document]
// keeps only the parts of the specification that type generation needs:
// paths and their operations, parameters, request bodies, responses, and
// component schemas.
//
// Every mapping whose order matters for output (paths, component schemas,
// properties, discriminator mappings, responses, content maps) is decoded
// into an [OrderedMap] so that generated code follows document order.
//
// # Quick Start
//
//	result, err := parser.New().Parse(ctx, "openapi.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for name := range result.Document.Components.Schemas.All() {
//		fmt.Println(name)
//	}
//
// Parse from a URL or standard input by passing an http(s) URL or "-".
//
// # Logging
//
// The [Logger] interface is shared by every abeye package. Wrap a
// *slog.Logger with [NewSlogAdapter] and pass it via [WithLogger].
package parser

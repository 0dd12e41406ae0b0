// Package schemautil provides helpers for inspecting parsed OpenAPI schemas.
//
// It centralizes the type assertion patterns for version-specific fields
// (a "type" that is a string in OAS 3.0 and may be a list in OAS 3.1), the
// classification of a schema into the kind the resolver dispatches on, and
// local $ref handling.
package schemautil

import (
	"strings"

	"github.com/oeb25/abeye/parser"
)

// SchemaRefPrefix is the JSON pointer prefix of component schema references.
const SchemaRefPrefix = "#/components/schemas/"

// GetSchemaTypes returns the type(s) from a schema, handling both
// string (OAS 3.0) and []any (OAS 3.1+) representations.
//
// Examples:
//   - OAS 3.0: {"type": "string"} returns ["string"]
//   - OAS 3.1: {"type": ["string", "null"]} returns ["string", "null"]
func GetSchemaTypes(schema *parser.Schema) []string {
	if schema == nil {
		return nil
	}
	switch t := schema.Type.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		result := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				result = append(result, s)
			}
		}
		return result
	case []string:
		return t
	}
	return nil
}

// Kind is the shape a schema is resolved by.
type Kind int

const (
	// KindAny is a schema with no type and no composition keyword.
	KindAny Kind = iota
	// KindTyped has a single "type".
	KindTyped
	// KindTypeList has a list of types (OAS 3.1).
	KindTypeList
	KindOneOf
	KindAllOf
	KindAnyOf
	KindNot
)

// Classify determines how a schema should be resolved. A declared type
// takes precedence over composition keywords, which are checked in the
// order oneOf, allOf, anyOf, not.
func Classify(schema *parser.Schema) Kind {
	switch types := GetSchemaTypes(schema); {
	case len(types) == 1:
		return KindTyped
	case len(types) > 1:
		return KindTypeList
	}
	switch {
	case schema.OneOf != nil:
		return KindOneOf
	case schema.AllOf != nil:
		return KindAllOf
	case schema.AnyOf != nil:
		return KindAnyOf
	case schema.Not != nil:
		return KindNot
	}
	return KindAny
}

// SchemaRefName returns the component name a local schema reference points
// at. The second result is false for any other kind of reference.
func SchemaRefName(ref string) (string, bool) {
	name, ok := strings.CutPrefix(ref, SchemaRefPrefix)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// IsInlined reports whether references to the named component schema are
// replaced by the schema's resolved type instead of a named placeholder.
// Names containing an underscore denote synthetic variants that are never
// exported on their own.
func IsInlined(name string) bool {
	return strings.Contains(name, "_")
}

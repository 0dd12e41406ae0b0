package parser

import (
	"slices"
	"strings"
)

// Document is the subset of an OpenAPI 3.x document that abeye reads.
// Unknown fields are ignored while decoding.
type Document struct {
	OpenAPI    string      `yaml:"openapi"`
	Info       *Info       `yaml:"info,omitempty"`
	Paths      Paths       `yaml:"paths,omitempty"`
	Components *Components `yaml:"components,omitempty"`
}

// Info provides metadata about the API.
type Info struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Version     string `yaml:"version"`
}

// Components holds reusable objects. Only schemas are consulted.
type Components struct {
	Schemas OrderedMap[*Schema] `yaml:"schemas,omitempty"`
}

// SchemaNames returns the component schema names in document order.
func (d *Document) SchemaNames() []string {
	if d.Components == nil {
		return nil
	}
	return d.Components.Schemas.Keys()
}

// Schema returns the component schema registered under name.
func (d *Document) Schema(name string) (*Schema, bool) {
	if d.Components == nil {
		return nil, false
	}
	return d.Components.Schemas.Get(name)
}

// PathItem describes the operations available on a single path.
type PathItem struct {
	Ref         string       `yaml:"$ref,omitempty"`
	Summary     string       `yaml:"summary,omitempty"`
	Description string       `yaml:"description,omitempty"`
	Get         *Operation   `yaml:"get,omitempty"`
	Put         *Operation   `yaml:"put,omitempty"`
	Post        *Operation   `yaml:"post,omitempty"`
	Delete      *Operation   `yaml:"delete,omitempty"`
	Options     *Operation   `yaml:"options,omitempty"`
	Head        *Operation   `yaml:"head,omitempty"`
	Patch       *Operation   `yaml:"patch,omitempty"`
	Trace       *Operation   `yaml:"trace,omitempty"`
	Parameters  []*Parameter `yaml:"parameters,omitempty"`
}

// Operation describes a single API operation on a path.
type Operation struct {
	OperationID string       `yaml:"operationId,omitempty"`
	Summary     string       `yaml:"summary,omitempty"`
	Description string       `yaml:"description,omitempty"`
	Tags        []string     `yaml:"tags,omitempty"`
	Deprecated  bool         `yaml:"deprecated,omitempty"`
	Parameters  []*Parameter `yaml:"parameters,omitempty"`
	RequestBody *RequestBody `yaml:"requestBody,omitempty"`
	Responses   Responses    `yaml:"responses,omitempty"`
}

// Parameter locations.
const (
	InQuery  = "query"
	InPath   = "path"
	InHeader = "header"
	InCookie = "cookie"
)

// Parameter describes a single operation parameter.
type Parameter struct {
	Ref         string                 `yaml:"$ref,omitempty"`
	Name        string                 `yaml:"name,omitempty"`
	In          string                 `yaml:"in,omitempty"`
	Description string                 `yaml:"description,omitempty"`
	Required    bool                   `yaml:"required,omitempty"`
	Schema      *Schema                `yaml:"schema,omitempty"`
	Content     OrderedMap[*MediaType] `yaml:"content,omitempty"`
}

// RequestBody describes a single request body.
type RequestBody struct {
	Ref         string                 `yaml:"$ref,omitempty"`
	Description string                 `yaml:"description,omitempty"`
	Required    bool                   `yaml:"required,omitempty"`
	Content     OrderedMap[*MediaType] `yaml:"content,omitempty"`
}

// Response describes a single response from an API operation.
type Response struct {
	Ref         string                 `yaml:"$ref,omitempty"`
	Description string                 `yaml:"description,omitempty"`
	Content     OrderedMap[*MediaType] `yaml:"content,omitempty"`
}

// MediaType provides the schema for one content type.
type MediaType struct {
	Schema *Schema `yaml:"schema,omitempty"`
}

// Schema is an OpenAPI schema object or a $ref to one.
type Schema struct {
	Ref         string `yaml:"$ref,omitempty"`
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`

	// Type is a string in OAS 3.0 and may be a list of strings in OAS 3.1.
	Type   any    `yaml:"type,omitempty"`
	Format string `yaml:"format,omitempty"`
	Enum   []any  `yaml:"enum,omitempty"`

	Properties OrderedMap[*Schema] `yaml:"properties,omitempty"`
	Required   []string            `yaml:"required,omitempty"`

	Items    *Schema `yaml:"items,omitempty"`
	MinItems *int    `yaml:"minItems,omitempty"`
	MaxItems *int    `yaml:"maxItems,omitempty"`

	OneOf []*Schema `yaml:"oneOf,omitempty"`
	AllOf []*Schema `yaml:"allOf,omitempty"`
	AnyOf []*Schema `yaml:"anyOf,omitempty"`
	Not   *Schema   `yaml:"not,omitempty"`

	Discriminator *Discriminator `yaml:"discriminator,omitempty"`
	Nullable      bool           `yaml:"nullable,omitempty"`
}

// IsRequired reports whether name is listed in the schema's required set.
func (s *Schema) IsRequired(name string) bool {
	return slices.Contains(s.Required, name)
}

// Discriminator supports polymorphism by naming the tag property and
// mapping each tag value to a schema.
type Discriminator struct {
	PropertyName string             `yaml:"propertyName"`
	Mapping      OrderedMap[string] `yaml:"mapping,omitempty"`
	Extra        map[string]any     `yaml:",inline"`
}

// Extensions returns the names of specification extension (x-) fields.
func (d *Discriminator) Extensions() []string {
	var out []string
	for k := range d.Extra {
		if strings.HasPrefix(k, "x-") {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

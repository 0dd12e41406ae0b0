package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/oeb25/abeye/internal/schemautil"
	"github.com/oeb25/abeye/operations"
	"github.com/oeb25/abeye/parser"
	"github.com/oeb25/abeye/resolver"
	"github.com/oeb25/abeye/typesys"
)

// ParamSummary is a parameter with its TypeScript type.
type ParamSummary struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// OperationSummary describes one emitted request function.
type OperationSummary struct {
	Name           string         `json:"name"                      yaml:"name"`
	Method         string         `json:"method"                    yaml:"method"`
	Path           string         `json:"path"                      yaml:"path"`
	OperationID    string         `json:"operation_id,omitempty"    yaml:"operation_id,omitempty"`
	Summary        string         `json:"summary,omitempty"         yaml:"summary,omitempty"`
	Deprecated     bool           `json:"deprecated,omitempty"      yaml:"deprecated,omitempty"`
	PathParams     []ParamSummary `json:"path_params,omitempty"     yaml:"path_params,omitempty"`
	QueryParams    []ParamSummary `json:"query_params,omitempty"    yaml:"query_params,omitempty"`
	Body           string         `json:"body,omitempty"            yaml:"body,omitempty"`
	Status         string         `json:"status,omitempty"          yaml:"status,omitempty"`
	ResponseFormat string         `json:"response_format,omitempty" yaml:"response_format,omitempty"`
	ResponseType   string         `json:"response_type,omitempty"   yaml:"response_type,omitempty"`
}

// Signature renders the summary on one line, e.g.
// `GET /pets query(limit: number) -> 200 json Pet[]`.
func (s OperationSummary) Signature() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", s.Method, s.Path)
	writeParams := func(label string, params []ParamSummary) {
		if len(params) == 0 {
			return
		}
		parts := make([]string, len(params))
		for i, p := range params {
			parts[i] = tsKey(p.Name) + ": " + oneLine(p.Type)
		}
		fmt.Fprintf(&b, " %s(%s)", label, strings.Join(parts, ", "))
	}
	writeParams("params", s.PathParams)
	writeParams("query", s.QueryParams)
	if s.Body != "" {
		fmt.Fprintf(&b, " body(%s)", oneLine(s.Body))
	}
	if s.ResponseFormat != "" {
		fmt.Fprintf(&b, " -> %s %s", s.Status, s.ResponseFormat)
		if s.ResponseType != "" {
			b.WriteString(" " + oneLine(s.ResponseType))
		}
	}
	return b.String()
}

// oneLine collapses a multi-line type rendering onto a single line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Summarize describes op under its api key name.
func Summarize(name string, op *operations.Operation) OperationSummary {
	s := OperationSummary{
		Name:        name,
		Method:      op.Method,
		Path:        op.Path,
		OperationID: op.OperationID,
		Summary:     op.Summary,
		Deprecated:  op.Deprecated,
		PathParams:  summarizeParams(op.PathParams),
		QueryParams: summarizeParams(op.QueryParams),
		Status:      op.Status,
	}
	if op.Body != nil {
		s.Body = tsType(op.Body.Type)
	}
	if op.Response != nil {
		s.ResponseFormat = op.Response.Format.String()
		if op.Response.Type.IsValid() {
			s.ResponseType = tsType(op.Response.Type)
		}
	}
	return s
}

func summarizeParams(params []operations.Param) []ParamSummary {
	if len(params) == 0 {
		return nil
	}
	out := make([]ParamSummary, len(params))
	for i, p := range params {
		out[i] = ParamSummary{Name: p.Name, Type: tsType(p.Type)}
	}
	return out
}

// ListOperations extracts and names every operation of doc without
// rendering a module.
func (g *Generator) ListOperations(ctx context.Context, doc *parser.Document) ([]OperationSummary, error) {
	r := g.resolver(doc, typesys.NewStore())
	ops, err := operations.New(r, operations.WithLogger(g.log())).ExtractAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	named, err := nameOperations(ops, g.APIPrefix)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	out := make([]OperationSummary, len(named))
	for i, n := range named {
		out[i] = Summarize(n.name, n.op)
	}
	return out, nil
}

// SchemaSummary describes one component schema after simplification.
type SchemaSummary struct {
	Name        string   `json:"name"                  yaml:"name"`
	Exported    bool     `json:"exported"              yaml:"exported"`
	Type        string   `json:"type"                  yaml:"type"`
	Declaration string   `json:"declaration,omitempty" yaml:"declaration,omitempty"`
	Constants   []string `json:"constants,omitempty"   yaml:"constants,omitempty"`
}

func summarizeSchema(name string, t typesys.Type) SchemaSummary {
	s := SchemaSummary{
		Name:     name,
		Exported: !schemautil.IsInlined(name),
		Type:     tsType(t),
	}
	if s.Exported {
		s.Declaration = Declaration(name, t)
	}
	if values, ok := t.Constants(); ok {
		s.Constants = values
	}
	return s
}

// InspectSchema resolves one component schema. name may carry the
// "#/components/schemas/" prefix. Schemas whose name contains an underscore
// are resolved but reported as not exported.
func (g *Generator) InspectSchema(doc *parser.Document, name string) (SchemaSummary, error) {
	name = strings.TrimPrefix(name, schemautil.SchemaRefPrefix)
	r := g.resolver(doc, typesys.NewStore())
	t, err := r.Named(name)
	if err != nil {
		return SchemaSummary{}, fmt.Errorf("generator: %w", err)
	}
	return summarizeSchema(name, r.Store().Simplify(t)), nil
}

// InspectAll resolves every exported component schema in document order.
func (g *Generator) InspectAll(ctx context.Context, doc *parser.Document) ([]SchemaSummary, error) {
	resolved, err := g.resolver(doc, typesys.NewStore()).ResolveAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	out := make([]SchemaSummary, len(resolved))
	for i, r := range resolved {
		out[i] = summarizeSchema(r.Name, r.Type)
	}
	return out, nil
}

func (g *Generator) resolver(doc *parser.Document, store *typesys.Store) *resolver.Resolver {
	return resolver.New(doc,
		resolver.WithStore(store),
		resolver.WithLogger(g.log()),
		resolver.WithConcurrency(g.Concurrency),
	)
}

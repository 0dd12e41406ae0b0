package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oeb25/abeye/generator"
)

type inspectSchemaInput struct {
	Spec specInput `json:"spec" jsonschema:"The OpenAPI document containing the schema"`
	Name string    `json:"name" jsonschema:"Component schema name, with or without the #/components/schemas/ prefix"`
}

func handleInspectSchema(ctx context.Context, _ *mcp.CallToolRequest, input inspectSchemaInput) (*mcp.CallToolResult, generator.SchemaSummary, error) {
	if input.Name == "" {
		return errResult(fmt.Errorf("name is required")), generator.SchemaSummary{}, nil
	}

	parsed, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), generator.SchemaSummary{}, nil
	}

	g := generator.New()
	g.Concurrency = cfg.Concurrency
	summary, err := g.InspectSchema(parsed.Document, input.Name)
	if err != nil {
		return errResult(err), generator.SchemaSummary{}, nil
	}
	return nil, summary, nil
}

package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oeb25/abeye/generator"
)

type listOperationsInput struct {
	Spec      specInput `json:"spec"                 jsonschema:"The OpenAPI document to list operations from"`
	APIPrefix string    `json:"api_prefix,omitempty" jsonschema:"Path prefix removed before operation names are derived"`
	Method    string    `json:"method,omitempty"     jsonschema:"Filter by HTTP method (get\\, post\\, put\\, delete\\, patch\\, etc.)"`
	Limit     int       `json:"limit,omitempty"      jsonschema:"Maximum number of results to return (default 100)"`
	Offset    int       `json:"offset,omitempty"     jsonschema:"Skip the first N results (for pagination)"`
}

type listOperationsOutput struct {
	Total      int                          `json:"total"`
	Matched    int                          `json:"matched"`
	Returned   int                          `json:"returned"`
	Operations []generator.OperationSummary `json:"operations,omitempty"`
}

func handleListOperations(ctx context.Context, _ *mcp.CallToolRequest, input listOperationsInput) (*mcp.CallToolResult, listOperationsOutput, error) {
	parsed, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), listOperationsOutput{}, nil
	}

	g := generator.New()
	g.APIPrefix = input.APIPrefix
	g.Concurrency = cfg.Concurrency
	all, err := g.ListOperations(ctx, parsed.Document)
	if err != nil {
		return errResult(err), listOperationsOutput{}, nil
	}

	matched := makeSlice[generator.OperationSummary](len(all))
	for _, op := range all {
		if input.Method == "" || strings.EqualFold(op.Method, input.Method) {
			matched = append(matched, op)
		}
	}

	returned := paginate(matched, input.Offset, input.Limit)
	return nil, listOperationsOutput{
		Total:      len(all),
		Matched:    len(matched),
		Returned:   len(returned),
		Operations: returned,
	}, nil
}

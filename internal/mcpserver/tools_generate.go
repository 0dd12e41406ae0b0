package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oeb25/abeye/generator"
)

type generateInput struct {
	Spec      specInput `json:"spec"                 jsonschema:"The OpenAPI document to generate a client from"`
	Target    string    `json:"target,omitempty"     jsonschema:"Output language (default: ts)"`
	APIPrefix string    `json:"api_prefix,omitempty" jsonschema:"Path prefix removed before operation names are derived, e.g. /beta/api"`
	Output    string    `json:"output,omitempty"     jsonschema:"File to write the generated module to; the source is returned inline when empty"`
}

type generateOutput struct {
	Success        bool     `json:"success"`
	Target         string   `json:"target"`
	Version        string   `json:"version,omitempty"`
	Operations     int      `json:"operations"`
	OperationNames []string `json:"operation_names,omitempty"`
	Types          int      `json:"types"`
	Skipped        []string `json:"skipped,omitempty"`
	Output         string   `json:"output,omitempty"`
	Written        bool     `json:"written,omitempty"`
	Size           int      `json:"size"`
	Source         string   `json:"source,omitempty"`
}

func handleGenerate(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	g := generator.New()
	g.APIPrefix = input.APIPrefix
	g.Concurrency = cfg.Concurrency
	if input.Target != "" {
		target, err := generator.ParseTarget(input.Target)
		if err != nil {
			return errResult(err), generateOutput{}, nil
		}
		g.Target = target
	}

	parsed, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	result, err := g.GenerateParsed(ctx, parsed)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		Success:        true,
		Target:         string(result.Target),
		Version:        result.Version,
		Operations:     result.Operations,
		OperationNames: result.OperationNames,
		Types:          result.Types,
		Skipped:        result.Skipped,
		Size:           len(result.Source),
	}

	if input.Output == "" {
		output.Source = string(result.Source)
		return nil, output, nil
	}

	written, err := result.WriteFile(input.Output)
	if err != nil {
		return errResult(fmt.Errorf("failed to write generated module: %w", err)), generateOutput{}, nil
	}
	output.Output = input.Output
	output.Written = written
	return nil, output, nil
}

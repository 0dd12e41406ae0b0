// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the abeye generator as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oeb25/abeye"
)

const serverInstructions = `abeye MCP server: generates typed TypeScript clients from OpenAPI 3.x documents and explains how schemas and operations map to TypeScript.

Every tool takes a spec object with exactly one of file, url, or content.

Configuration: defaults come from ABEYE_* environment variables set in your MCP client config.
- ABEYE_CONCURRENCY (default: number of CPUs): parallel schema resolution
- ABEYE_FETCH_TIMEOUT (default: 30s): timeout for url inputs
- ABEYE_MCP_CACHE_ENABLED (default: true): cache parsed documents per session
- ABEYE_MCP_CACHE_FILE_TTL (default: 15m), ABEYE_MCP_CACHE_URL_TTL (default: 5m)
- ABEYE_MCP_LIST_LIMIT (default: 100): default page size for list_operations
- ABEYE_MCP_ALLOW_PRIVATE_IPS (default: false): allow url inputs on private networks`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}
	return newServer().Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "abeye", Version: abeye.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate a typed TypeScript client from an OpenAPI 3.x document. Returns operation names, type counts, and skipped schemas. Set output to write the module to a file (unchanged files are not rewritten); otherwise the source is returned inline. api_prefix is removed from paths before operation names are derived. Unsupported constructs fail the whole run with a descriptive error.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect_schema",
		Description: "Resolve one component schema and return its simplified TypeScript type, the exported declaration, and the literal constants for string enums. Schemas whose name contains '_' are resolved but reported as not exported.",
	}, handleInspectSchema)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_operations",
		Description: "List the operations the generator would emit: api name, method, path, parameter types, body type, and response format. Filter by method. Use offset/limit to paginate; the default limit is configurable via ABEYE_MCP_LIST_LIMIT.",
	}, handleListOperations)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

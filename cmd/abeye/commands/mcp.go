package commands

import (
	"github.com/spf13/cobra"

	"github.com/oeb25/abeye/internal/mcpserver"
)

// NewMCPCommand creates the mcp command.
func NewMCPCommand(_ *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server over stdio",
		Long: `Run a Model Context Protocol server on standard input and output.

The server exposes the generate, inspect_schema and list_operations tools.
Its defaults are read from ABEYE_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.Run(cmd.Context())
		},
	}
}

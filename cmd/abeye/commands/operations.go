package commands

import (
	"github.com/spf13/cobra"

	"github.com/oeb25/abeye/generator"
	"github.com/oeb25/abeye/internal/cliutil"
)

// OperationsFlags contains flags for the operations command
type OperationsFlags struct {
	APIPrefix string
	Format    string
}

// NewOperationsCommand creates the operations command.
func NewOperationsCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &OperationsFlags{}

	cmd := &cobra.Command{
		Use:   "operations [file|url|-]",
		Short: "List the operations a client would expose",
		Long: `List every operation with its api name, parameter types, request body
and response kind, in the order the generated client declares them.`,
		Example: `  abeye operations openapi.yaml --api-prefix /beta/api
  abeye operations openapi.yaml --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperations(cmd, rootOpts, flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.APIPrefix, "api-prefix", "", "path prefix removed before operation names are derived")
	cmd.Flags().StringVar(&flags.Format, "format", FormatText, "output format (text|json|yaml)")

	return cmd
}

func runOperations(cmd *cobra.Command, opts *RootOptions, flags *OperationsFlags, args []string) error {
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	parsed, err := loadDocument(cmd.Context(), cmd, opts, args)
	if err != nil {
		return err
	}

	g := generator.New()
	g.APIPrefix = flags.APIPrefix
	g.Concurrency = opts.Concurrency
	g.Logger = opts.Logger()
	ops, err := g.ListOperations(cmd.Context(), parsed.Document)
	if err != nil {
		return err
	}

	if flags.Format != FormatText {
		return OutputStructured(cmd.OutOrStdout(), ops, flags.Format)
	}
	rows := make([][]string, 0, len(ops))
	for _, op := range ops {
		rows = append(rows, []string{op.Name, op.Signature()})
	}
	return cliutil.WriteTable(cmd.OutOrStdout(), rows)
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/oeb25/abeye/generator"
	"github.com/oeb25/abeye/internal/cliutil"
)

// InspectFlags contains flags for the inspect command
type InspectFlags struct {
	Schema string
	Format string
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &InspectFlags{}

	cmd := &cobra.Command{
		Use:   "inspect [file|url|-]",
		Short: "Show the resolved type of component schemas",
		Long: `Resolve component schemas and print their simplified TypeScript types.

With --schema, one schema is printed; a name containing "_" is resolved even
though it is never exported on its own. Without --schema, every exported
schema is printed in document order.`,
		Example: `  abeye inspect openapi.yaml --schema Pet
  abeye inspect openapi.yaml --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, rootOpts, flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.Schema, "schema", "", "component schema name")
	cmd.Flags().StringVar(&flags.Format, "format", FormatText, "output format (text|json|yaml)")

	return cmd
}

func runInspect(cmd *cobra.Command, opts *RootOptions, flags *InspectFlags, args []string) error {
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	parsed, err := loadDocument(cmd.Context(), cmd, opts, args)
	if err != nil {
		return err
	}

	g := generator.New()
	g.Concurrency = opts.Concurrency
	g.Logger = opts.Logger()

	var schemas []generator.SchemaSummary
	if flags.Schema != "" {
		s, err := g.InspectSchema(parsed.Document, flags.Schema)
		if err != nil {
			return err
		}
		schemas = []generator.SchemaSummary{s}
	} else {
		schemas, err = g.InspectAll(cmd.Context(), parsed.Document)
		if err != nil {
			return err
		}
	}

	if flags.Format != FormatText {
		return OutputStructured(cmd.OutOrStdout(), schemas, flags.Format)
	}
	w := cmd.OutOrStdout()
	for _, s := range schemas {
		if s.Exported {
			cliutil.Writef(w, "%s", s.Declaration)
		} else {
			cliutil.Writef(w, "type %s = %s; // not exported\n", s.Name, s.Type)
		}
	}
	return nil
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oeb25/abeye/generator"
	"github.com/oeb25/abeye/internal/cliutil"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Target    string
	Output    string
	APIPrefix string
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &GenerateFlags{}

	cmd := &cobra.Command{
		Use:   "generate [file|url|-]",
		Short: "Generate a typed client module",
		Long: `Generate a typed client module from an OpenAPI 3.x document.

The document is read from a file, an http(s) URL, or standard input when the
argument is omitted or "-". The module is written to --output, or to standard
output when no output path is given. An output file whose content would not
change is left untouched.`,
		Example: `  abeye generate openapi.json -t ts -o src/api.ts
  abeye generate https://example.com/openapi.yaml -t ts --api-prefix /beta/api
  cat openapi.yaml | abeye generate -t ts`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, rootOpts, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.Target, "target", "t", "", "output language (ts)")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&flags.APIPrefix, "api-prefix", "", "path prefix removed before operation names are derived")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *RootOptions, flags *GenerateFlags, args []string) error {
	source := sourceArg(args)
	if flags.Output != "" {
		if err := ValidateOutputPath(flags.Output, []string{source}); err != nil {
			return err
		}
	}

	logger := opts.Logger()
	result, err := generator.GenerateWithOptions(cmd.Context(),
		generator.WithFilePath(source),
		generator.WithTarget(flags.Target),
		generator.WithAPIPrefix(flags.APIPrefix),
		generator.WithConcurrency(opts.Concurrency),
		generator.WithLogger(logger),
		generator.WithParserOptions(parserOptions(cmd, opts)...),
	)
	if err != nil {
		return err
	}
	logger.Debug("generated module",
		"source", FormatSpecPath(result.SourcePath),
		"bytes", len(result.Source),
		"interned_types", result.InternedTypes,
		"elapsed", result.GenerateTime)

	if flags.Output == "" {
		cliutil.WriteSource(cmd.OutOrStdout(), result.Source)
		return nil
	}

	written, err := result.WriteFile(flags.Output)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if written {
		logger.Info("wrote output", "path", flags.Output, "bytes", len(result.Source))
	} else {
		logger.Info("output unchanged", "path", flags.Output)
	}
	return nil
}

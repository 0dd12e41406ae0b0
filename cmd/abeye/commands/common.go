package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v4"

	"github.com/oeb25/abeye/internal/cliutil"
	"github.com/oeb25/abeye/internal/pathutil"
	"github.com/oeb25/abeye/parser"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidFormats lists the accepted --format values.
var ValidFormats = []string{FormatText, FormatJSON, FormatYAML}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured writes data to w as indented JSON or YAML.
func OutputStructured(w io.Writer, data any, format string) error {
	var out []byte
	var err error

	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	cliutil.Writef(w, "%s", out)
	if len(out) > 0 && out[len(out)-1] != '\n' {
		cliutil.Writef(w, "\n")
	}
	return nil
}

// sourceArg returns the document source named on the command line, or
// standard input when none is given.
func sourceArg(args []string) string {
	if len(args) == 0 {
		return parser.StdinSource
	}
	return args[0]
}

// FormatSpecPath returns a display-friendly path for the document.
func FormatSpecPath(specPath string) string {
	if specPath == parser.StdinSource {
		return "<stdin>"
	}
	return specPath
}

// parserOptions builds the parser configuration shared by every command.
func parserOptions(cmd *cobra.Command, opts *RootOptions) []parser.Option {
	return []parser.Option{
		parser.WithLogger(opts.Logger()),
		parser.WithStdin(cmd.InOrStdin()),
		parser.WithFetchTimeout(opts.FetchTimeout),
	}
}

// loadDocument parses the document named by args.
func loadDocument(ctx context.Context, cmd *cobra.Command, opts *RootOptions, args []string) (*parser.ParseResult, error) {
	return parser.New(parserOptions(cmd, opts)...).Parse(ctx, sourceArg(args))
}

// ValidateOutputPath checks that writing outputPath cannot clobber an input
// document or follow a symlink.
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	for _, inputPath := range inputPaths {
		if inputPath == parser.StdinSource || isURL(inputPath) {
			continue
		}
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}

	_, err = pathutil.SanitizeOutputPath(outputPath)
	return err
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

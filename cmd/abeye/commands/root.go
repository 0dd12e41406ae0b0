// Package commands provides the cobra commands of the abeye CLI.
package commands

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oeb25/abeye/internal/envconfig"
	"github.com/oeb25/abeye/parser"
)

// RootOptions holds global flags and settings shared by every command.
type RootOptions struct {
	LogLevel     string
	Concurrency  int
	FetchTimeout time.Duration

	logger parser.Logger
}

// Logger returns the logger configured by the root command.
func (o *RootOptions) Logger() parser.Logger {
	return parser.OrNop(o.logger)
}

// NewRootCommand creates the root command for the abeye CLI.
func NewRootCommand() *cobra.Command {
	env := envconfig.Load()
	opts := &RootOptions{
		LogLevel:     strings.ToLower(env.LogLevel.String()),
		Concurrency:  env.Concurrency,
		FetchTimeout: env.FetchTimeout,
	}

	cmd := &cobra.Command{
		Use:   "abeye",
		Short: "abeye - typed API clients from OpenAPI documents",
		Long: `Generate strongly-typed API clients from OpenAPI 3.x documents.

abeye resolves every component schema into a canonical type, extracts one
signature per path and method, and writes a single TypeScript module with
exported types and a map of request functions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := envconfig.ParseLevel(opts.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", opts.LogLevel)
			}
			if opts.Concurrency <= 0 {
				return fmt.Errorf("invalid concurrency %d: must be positive", opts.Concurrency)
			}
			handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
			opts.logger = parser.NewSlogAdapter(slog.New(handler))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "log level (debug|info|warn|error); env "+envconfig.LogLevelKey)
	cmd.PersistentFlags().IntVar(&opts.Concurrency, "concurrency", opts.Concurrency, "parallel schema resolution; env "+envconfig.ConcurrencyKey)
	cmd.PersistentFlags().DurationVar(&opts.FetchTimeout, "fetch-timeout", opts.FetchTimeout, "timeout for URL sources; env "+envconfig.FetchTimeoutKey)

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewOperationsCommand(opts))
	cmd.AddCommand(NewMCPCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

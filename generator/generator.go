package generator

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/oeb25/abeye/internal/options"
	"github.com/oeb25/abeye/internal/schemautil"
	"github.com/oeb25/abeye/oaserrors"
	"github.com/oeb25/abeye/operations"
	"github.com/oeb25/abeye/parser"
	"github.com/oeb25/abeye/typesys"
)

// Target selects the language of the generated client.
type Target string

const (
	// TargetTypeScript emits a single TypeScript module.
	TargetTypeScript Target = "ts"
)

// Targets lists every supported target.
func Targets() []Target {
	return []Target{TargetTypeScript}
}

// ParseTarget validates a target name.
func ParseTarget(s string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Targets(), t) {
		return t, nil
	}
	names := make([]string, 0, len(Targets()))
	for _, t := range Targets() {
		names = append(names, string(t))
	}
	return "", &oaserrors.ConfigError{
		Option:  "target",
		Value:   s,
		Message: "valid targets: " + strings.Join(names, ", "),
	}
}

// GenerateResult contains the output of one generation run.
type GenerateResult struct {
	// Source is the generated module.
	Source []byte
	// Target is the language Source is written in.
	Target Target
	// SourcePath is the document's file path, URL, or pseudo-name.
	SourcePath string
	// Version is the document's OpenAPI version.
	Version string
	// Operations is the number of operations written.
	Operations int
	// OperationNames are the keys of the api object in output order.
	OperationNames []string
	// Types is the number of exported type declarations written.
	Types int
	// Skipped lists component schemas that were not exported because their
	// name contains an underscore.
	Skipped []string
	// InternedTypes is the number of distinct types the run created.
	InternedTypes int
	// GenerateTime is the time spent resolving and rendering.
	GenerateTime time.Duration
}

// Generator turns parsed OpenAPI documents into client modules.
type Generator struct {
	// APIPrefix is removed from request paths before operation names are
	// derived. Trailing slashes are ignored.
	APIPrefix string

	// Target is the output language.
	// Default: "ts"
	Target Target

	// Concurrency bounds parallel schema resolution.
	// Default: runtime.GOMAXPROCS(0)
	Concurrency int

	// Logger receives progress and diagnostics. If nil, logging is disabled.
	Logger parser.Logger
}

// New creates a Generator with default settings.
func New() *Generator {
	return &Generator{Target: TargetTypeScript}
}

func (g *Generator) log() parser.Logger {
	return parser.OrNop(g.Logger)
}

// Generate renders doc. Any unsupported construct fails the whole run and
// no partial output is returned.
func (g *Generator) Generate(ctx context.Context, doc *parser.Document) (*GenerateResult, error) {
	target := g.Target
	if target == "" {
		target = TargetTypeScript
	}
	if _, err := ParseTarget(string(target)); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	start := time.Now()
	logger := g.log()
	store := typesys.NewStore()
	r := g.resolver(doc, store)

	ops, err := operations.New(r, operations.WithLogger(logger)).ExtractAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	named, err := nameOperations(ops, g.APIPrefix)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	types, err := r.ResolveAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	var skipped []string
	for _, name := range doc.SchemaNames() {
		if schemautil.IsInlined(name) {
			logger.Info("skipping schema with '_' in its name", "name", name)
			skipped = append(skipped, name)
		}
	}

	buf := getOutputBuffer(estimateOutputSize(len(named), len(types)))
	defer putOutputBuffer(buf)
	if err := writeTS(buf, store, named, types); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}

	logger.Info("wrote operations", "count", len(named))
	logger.Info("wrote types", "count", len(types))

	names := make([]string, len(named))
	for i, n := range named {
		names[i] = n.name
	}
	return &GenerateResult{
		Source:         bytes.Clone(buf.Bytes()),
		Target:         target,
		Operations:     len(named),
		OperationNames: names,
		Types:          len(types),
		Skipped:        skipped,
		InternedTypes:  store.Len(),
		GenerateTime:   time.Since(start),
	}, nil
}

// GenerateParsed renders a parse result and records where it came from.
func (g *Generator) GenerateParsed(ctx context.Context, parsed *parser.ParseResult) (*GenerateResult, error) {
	res, err := g.Generate(ctx, parsed.Document)
	if err != nil {
		return nil, err
	}
	res.SourcePath = parsed.SourcePath
	res.Version = parsed.Version
	return res, nil
}

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

// generateConfig holds configuration for a generate operation
type generateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult

	apiPrefix     string
	target        Target
	concurrency   int
	logger        parser.Logger
	parserOptions []parser.Option
}

// GenerateWithOptions generates a client module using functional options.
// This combines input source selection and configuration in a single call.
//
// Example:
//
//	result, err := generator.GenerateWithOptions(ctx,
//	    generator.WithFilePath("openapi.yaml"),
//	    generator.WithAPIPrefix("/beta/api"),
//	)
func GenerateWithOptions(ctx context.Context, opts ...Option) (*GenerateResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	g := &Generator{
		APIPrefix:   cfg.apiPrefix,
		Target:      cfg.target,
		Concurrency: cfg.concurrency,
		Logger:      cfg.logger,
	}

	parsed := cfg.parsed
	if cfg.filePath != nil {
		popts := append([]parser.Option{parser.WithLogger(cfg.logger)}, cfg.parserOptions...)
		parsed, err = parser.New(popts...).Parse(ctx, *cfg.filePath)
		if err != nil {
			return nil, fmt.Errorf("generator: %w", err)
		}
	}
	return g.GenerateParsed(ctx, parsed)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		target: TargetTypeScript,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ExactlyOne(
		options.Source{Name: "WithFilePath", Set: cfg.filePath != nil},
		options.Source{Name: "WithParsed", Set: cfg.parsed != nil},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path, an http(s) URL, or "-" for standard
// input as the input source.
func WithFilePath(path string) Option {
	return func(cfg *generateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies a parsed ParseResult as the input source
func WithParsed(result *parser.ParseResult) Option {
	return func(cfg *generateConfig) error {
		if result == nil || result.Document == nil {
			return &oaserrors.ConfigError{Option: "parsed", Message: "parse result has no document"}
		}
		cfg.parsed = result
		return nil
	}
}

// WithAPIPrefix sets the path prefix removed before naming operations.
// Default: ""
func WithAPIPrefix(prefix string) Option {
	return func(cfg *generateConfig) error {
		cfg.apiPrefix = prefix
		return nil
	}
}

// WithTarget selects the output language.
// Default: "ts"
func WithTarget(target string) Option {
	return func(cfg *generateConfig) error {
		t, err := ParseTarget(target)
		if err != nil {
			return err
		}
		cfg.target = t
		return nil
	}
}

// WithConcurrency bounds parallel schema resolution.
// Default: runtime.GOMAXPROCS(0)
func WithConcurrency(n int) Option {
	return func(cfg *generateConfig) error {
		if n < 0 {
			return &oaserrors.ConfigError{Option: "concurrency", Value: n, Message: "must not be negative"}
		}
		cfg.concurrency = n
		return nil
	}
}

// WithLogger sets the logger for parsing and generation.
func WithLogger(l parser.Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithParserOptions passes options to the parser used by WithFilePath.
func WithParserOptions(opts ...parser.Option) Option {
	return func(cfg *generateConfig) error {
		cfg.parserOptions = append(cfg.parserOptions, opts...)
		return nil
	}
}

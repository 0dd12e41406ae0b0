package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/oeb25/abeye"
	"github.com/oeb25/abeye/oaserrors"
)

// StdinSource is the source name that selects standard input.
const StdinSource = "-"

// DefaultFetchTimeout bounds a single document fetch over HTTP.
const DefaultFetchTimeout = 30 * time.Second

// SourceFormat represents the format of the source document.
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// Parser loads OpenAPI documents.
type Parser struct {
	// UserAgent is the User-Agent string used when fetching URLs.
	// Default: "abeye/<version>"
	UserAgent string
	// HTTPClient is the HTTP client used for fetching URLs.
	// If nil, a client with FetchTimeout is created.
	HTTPClient *http.Client
	// FetchTimeout bounds URL fetches when HTTPClient is nil.
	// Default: 30s
	FetchTimeout time.Duration
	// Stdin is read when the source is "-" or empty.
	// Default: os.Stdin
	Stdin io.Reader
	// Logger is the structured logger. If nil, logging is disabled.
	Logger Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used while loading documents.
func WithLogger(l Logger) Option {
	return func(p *Parser) { p.Logger = l }
}

// WithHTTPClient sets a custom HTTP client for URL sources.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Parser) { p.HTTPClient = c }
}

// WithUserAgent overrides the User-Agent header sent with URL fetches.
func WithUserAgent(ua string) Option {
	return func(p *Parser) { p.UserAgent = ua }
}

// WithFetchTimeout bounds URL fetches.
// Default: 30s
func WithFetchTimeout(d time.Duration) Option {
	return func(p *Parser) { p.FetchTimeout = d }
}

// WithStdin replaces the reader used for the "-" source.
func WithStdin(r io.Reader) Option {
	return func(p *Parser) { p.Stdin = r }
}

// New creates a Parser with default settings.
func New(opts ...Option) *Parser {
	p := &Parser{
		UserAgent:    abeye.UserAgent(),
		FetchTimeout: DefaultFetchTimeout,
		Stdin:        os.Stdin,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) log() Logger {
	return OrNop(p.Logger)
}

// ParseResult is a decoded document plus facts about where it came from.
type ParseResult struct {
	// Document is the decoded OpenAPI document.
	Document *Document
	// Version is the value of the top-level "openapi" field.
	Version string
	// SourcePath is the file path, URL, or pseudo-name of the source.
	SourcePath string
	// SourceFormat is the detected encoding of the source.
	SourceFormat SourceFormat
	// SourceSize is the size of the raw document in bytes.
	SourceSize int
}

// Parse loads a document from a file path, an http(s) URL, or standard
// input when source is empty or "-".
func (p *Parser) Parse(ctx context.Context, source string) (*ParseResult, error) {
	switch {
	case source == "" || source == StdinSource:
		res, err := p.ParseReader(p.Stdin)
		if err != nil {
			return nil, err
		}
		res.SourcePath = "<stdin>"
		return res, nil
	case isURL(source):
		p.log().Info("fetching schema", "url", source)
		data, err := p.fetchURL(ctx, source)
		if err != nil {
			return nil, err
		}
		return p.parse(data, source)
	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("parser: failed to read file: %w", err)
		}
		return p.parse(data, source)
	}
}

// ParseReader parses a document from an io.Reader.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	return p.ParseBytes(data)
}

// ParseBytes parses a document held in memory.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	name := "ParseBytes.yaml"
	if detectFormatFromContent(data) == SourceFormatJSON {
		name = "ParseBytes.json"
	}
	return p.parse(data, name)
}

func (p *Parser) parse(data []byte, sourcePath string) (*ParseResult, error) {
	format := detectFormatFromContent(data)
	if format == SourceFormatUnknown {
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: "empty document"}
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: "invalid YAML/JSON", Cause: err}
	}
	if doc.OpenAPI == "" {
		return nil, &oaserrors.ParseError{Path: sourcePath, Message: "missing 'openapi' version field"}
	}
	if !strings.HasPrefix(doc.OpenAPI, "3.") {
		return nil, &oaserrors.ParseError{
			Path:    sourcePath,
			Message: fmt.Sprintf("unsupported OpenAPI version %q (want 3.x)", doc.OpenAPI),
		}
	}

	p.log().Debug("parsed document",
		"source", sourcePath,
		"format", string(format),
		"version", doc.OpenAPI,
		"paths", doc.Paths.Len(),
		"schemas", len(doc.SchemaNames()))

	return &ParseResult{
		Document:     &doc,
		Version:      doc.OpenAPI,
		SourcePath:   sourcePath,
		SourceFormat: format,
		SourceSize:   len(data),
	}, nil
}

// detectFormatFromContent reports JSON when the first non-blank byte opens an
// object or array, and YAML otherwise.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// isURL determines if the given path is a URL (http:// or https://)
func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

func (p *Parser) fetchURL(ctx context.Context, urlStr string) ([]byte, error) {
	client := p.HTTPClient
	if client == nil {
		timeout := p.FetchTimeout
		if timeout <= 0 {
			timeout = DefaultFetchTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to create request: %w", err)
	}
	userAgent := p.UserAgent
	if userAgent == "" {
		userAgent = abeye.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req) //nolint:gosec // URL is user-provided input
	if err != nil {
		return nil, fmt.Errorf("parser: failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("parser: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read response body: %w", err)
	}
	return data, nil
}

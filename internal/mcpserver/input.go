package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oeb25/abeye/internal/options"
	"github.com/oeb25/abeye/parser"
)

// specInput represents the three ways an OpenAPI document can be provided
// to a tool. Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI document on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch an OpenAPI document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline OpenAPI document content (JSON or YAML)"`
}

// makeCacheKey creates a cache key for the given spec input.
func makeCacheKey(s specInput) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return fmt.Sprintf("content:%s", hex.EncodeToString(h[:]))
	case s.URL != "":
		return fmt.Sprintf("url:%s", s.URL)
	default:
		return ""
	}
}

// validate checks that exactly one input source is set.
func (s specInput) validate() error {
	return options.ExactlyOne(
		options.Source{Name: "file", Set: s.File != ""},
		options.Source{Name: "url", Set: s.URL != ""},
		options.Source{Name: "content", Set: s.Content != ""},
	)
}

// resolve parses the document from whichever input was provided, using the
// cache for file, URL, and content inputs.
func (s specInput) resolve(ctx context.Context) (*parser.ParseResult, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set ABEYE_MCP_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key = makeCacheKey(s)
		switch {
		case s.File != "":
			ttl = cfg.CacheFileTTL
		case s.URL != "":
			ttl = cfg.CacheURLTTL
		default:
			ttl = cfg.CacheContentTTL
		}
	}

	if key != "" {
		if cached := specCache.get(key); cached != nil {
			return cached, nil
		}
	}

	opts := []parser.Option{parser.WithFetchTimeout(cfg.FetchTimeout)}
	if s.URL != "" && !cfg.AllowPrivateIPs {
		opts = append(opts, parser.WithHTTPClient(newSafeHTTPClient()))
	}
	p := parser.New(opts...)

	var result *parser.ParseResult
	var err error
	switch {
	case s.File != "":
		result, err = p.Parse(ctx, s.File)
	case s.URL != "":
		if !strings.HasPrefix(s.URL, "http://") && !strings.HasPrefix(s.URL, "https://") {
			return nil, fmt.Errorf("url must use http or https: %q", s.URL)
		}
		result, err = p.Parse(ctx, s.URL)
	default:
		result, err = p.ParseBytes([]byte(s.Content))
		if err == nil {
			result.SourcePath = "<content>"
		}
	}
	if err != nil {
		return nil, err
	}

	if key != "" {
		specCache.putWithTTL(key, result, ttl)
	}
	return result, nil
}

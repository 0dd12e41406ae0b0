package mcpserver

import (
	"time"

	"github.com/oeb25/abeye/internal/envconfig"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// list_operations defaults.
	ListLimit int
	MaxLimit  int

	// Input limits.
	MaxInlineSize   int64
	AllowPrivateIPs bool

	// Shared with the CLI.
	Concurrency  int
	FetchTimeout time.Duration
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from ABEYE_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	shared := envconfig.Load()
	return &serverConfig{
		CacheEnabled:       envconfig.Bool("ABEYE_MCP_CACHE_ENABLED", true),
		CacheMaxSize:       envconfig.Int("ABEYE_MCP_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envconfig.Duration("ABEYE_MCP_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envconfig.Duration("ABEYE_MCP_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envconfig.Duration("ABEYE_MCP_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envconfig.Duration("ABEYE_MCP_CACHE_SWEEP_INTERVAL", 60*time.Second),
		ListLimit:          envconfig.Int("ABEYE_MCP_LIST_LIMIT", 100),
		MaxLimit:           envconfig.Int("ABEYE_MCP_MAX_LIMIT", 1000),
		MaxInlineSize:      envconfig.Int64("ABEYE_MCP_MAX_INLINE_SIZE", 10*1024*1024),
		AllowPrivateIPs:    envconfig.Bool("ABEYE_MCP_ALLOW_PRIVATE_IPS", false),
		Concurrency:        shared.Concurrency,
		FetchTimeout:       shared.FetchTimeout,
	}
}

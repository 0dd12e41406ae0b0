// Package envconfig reads ABEYE_* environment variables.
//
// Invalid values never fail startup: they log a warning and fall back to
// the documented default.
package envconfig

import (
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Variable names.
const (
	LogLevelKey     = "ABEYE_LOG_LEVEL"
	ConcurrencyKey  = "ABEYE_CONCURRENCY"
	FetchTimeoutKey = "ABEYE_FETCH_TIMEOUT"
)

// Config holds process-wide defaults shared by the CLI and the MCP server.
type Config struct {
	// LogLevel is the minimum level written to stderr.
	// Default: info
	LogLevel slog.Level
	// Concurrency bounds parallel schema resolution.
	// Default: runtime.GOMAXPROCS(0)
	Concurrency int
	// FetchTimeout bounds a single URL fetch.
	// Default: 30s
	FetchTimeout time.Duration
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		LogLevel:     Level(LogLevelKey, slog.LevelInfo),
		Concurrency:  Int(ConcurrencyKey, runtime.GOMAXPROCS(0)),
		FetchTimeout: Duration(FetchTimeoutKey, 30*time.Second),
	}
}

// Bool reads a boolean variable.
func Bool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

// Int reads a positive integer variable.
func Int(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

// Int64 reads a positive 64-bit integer variable.
func Int64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

// Duration reads a positive duration such as "90s" or "5m".
func Duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

// Level reads a log level: debug, info, warn or error.
func Level(key string, fallback slog.Level) slog.Level {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	l, err := ParseLevel(v)
	if err != nil {
		slog.Warn("invalid log level env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return l
}

// ParseLevel parses a case-insensitive level name. "warning" is accepted
// as an alias of "warn".
func ParseLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "warning") {
		s = "warn"
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, err
	}
	return l, nil
}

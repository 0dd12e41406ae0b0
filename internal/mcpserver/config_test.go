package mcpserver

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearEnv clears all ABEYE_* env vars read by loadConfig to isolate tests
// from the ambient environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ABEYE_MCP_CACHE_ENABLED", "ABEYE_MCP_CACHE_MAX_SIZE",
		"ABEYE_MCP_CACHE_FILE_TTL", "ABEYE_MCP_CACHE_URL_TTL",
		"ABEYE_MCP_CACHE_CONTENT_TTL", "ABEYE_MCP_CACHE_SWEEP_INTERVAL",
		"ABEYE_MCP_LIST_LIMIT", "ABEYE_MCP_MAX_LIMIT",
		"ABEYE_MCP_MAX_INLINE_SIZE", "ABEYE_MCP_ALLOW_PRIVATE_IPS",
		"ABEYE_CONCURRENCY", "ABEYE_FETCH_TIMEOUT", "ABEYE_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 5*time.Minute, c.CacheURLTTL)
	assert.Equal(t, 15*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 100, c.ListLimit)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.False(t, c.AllowPrivateIPs)
	assert.Equal(t, runtime.GOMAXPROCS(0), c.Concurrency)
	assert.Equal(t, 30*time.Second, c.FetchTimeout)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ABEYE_MCP_CACHE_ENABLED", "false")
	t.Setenv("ABEYE_MCP_CACHE_MAX_SIZE", "50")
	t.Setenv("ABEYE_MCP_CACHE_FILE_TTL", "30m")
	t.Setenv("ABEYE_MCP_CACHE_URL_TTL", "2m")
	t.Setenv("ABEYE_MCP_CACHE_CONTENT_TTL", "10m")
	t.Setenv("ABEYE_MCP_CACHE_SWEEP_INTERVAL", "30s")
	t.Setenv("ABEYE_MCP_LIST_LIMIT", "20")
	t.Setenv("ABEYE_MCP_MAX_LIMIT", "500")
	t.Setenv("ABEYE_MCP_MAX_INLINE_SIZE", "5242880")
	t.Setenv("ABEYE_MCP_ALLOW_PRIVATE_IPS", "true")
	t.Setenv("ABEYE_CONCURRENCY", "2")
	t.Setenv("ABEYE_FETCH_TIMEOUT", "5s")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 2*time.Minute, c.CacheURLTTL)
	assert.Equal(t, 10*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 20, c.ListLimit)
	assert.Equal(t, 500, c.MaxLimit)
	assert.Equal(t, int64(5242880), c.MaxInlineSize)
	assert.True(t, c.AllowPrivateIPs)
	assert.Equal(t, 2, c.Concurrency)
	assert.Equal(t, 5*time.Second, c.FetchTimeout)
}

func TestLoadConfig_InvalidValues_UseDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("ABEYE_MCP_CACHE_MAX_SIZE", "banana")
	t.Setenv("ABEYE_MCP_CACHE_FILE_TTL", "not-a-duration")
	t.Setenv("ABEYE_MCP_CACHE_ENABLED", "maybe")
	t.Setenv("ABEYE_MCP_LIST_LIMIT", "-5")
	t.Setenv("ABEYE_MCP_MAX_INLINE_SIZE", "abc")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 100, c.ListLimit)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
}

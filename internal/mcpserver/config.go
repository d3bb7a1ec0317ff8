package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
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

	// list_endpoints defaults.
	ListLimit int
	MaxLimit  int

	// Input limits.
	MaxInlineSize   int64
	AllowPrivateIPs bool

	// extract defaults.
	SortPaths bool
	Verify    bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from SWAGREC_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("SWAGREC_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("SWAGREC_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("SWAGREC_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("SWAGREC_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("SWAGREC_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("SWAGREC_CACHE_SWEEP_INTERVAL", 60*time.Second),
		ListLimit:          envInt("SWAGREC_LIST_LIMIT", 100),
		MaxLimit:           envInt("SWAGREC_MAX_LIMIT", 1000),
		MaxInlineSize:      int64(envInt("SWAGREC_MAX_INLINE_SIZE", 10*1024*1024)),
		AllowPrivateIPs:    envBool("SWAGREC_ALLOW_PRIVATE_IPS", false),
		SortPaths:          envBool("SWAGREC_SORT_PATHS", false),
		Verify:             envBool("SWAGREC_VERIFY", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}

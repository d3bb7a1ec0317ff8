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

	"github.com/erraggy/swagrec/internal/httputil"
	"github.com/erraggy/swagrec/internal/speccache"
	"github.com/erraggy/swagrec/parser"
)

// specInput represents the three ways an OAS spec can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OAS file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch an OAS document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline OAS document content (JSON or YAML)"`
}

// specCache holds parsed documents for the session.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash. URL inputs are keyed by URL string.
var specCache = speccache.New[*parser.ParseResult](cfg.CacheMaxSize)

// makeCacheKey creates a cache key for the given spec input, or "" when the
// input should not be cached.
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
		return "content:" + hex.EncodeToString(h[:])
	case s.URL != "":
		return "url:" + s.URL
	default:
		return ""
	}
}

func (s specInput) ttl() time.Duration {
	switch {
	case s.File != "":
		return cfg.CacheFileTTL
	case s.URL != "":
		return cfg.CacheURLTTL
	default:
		return cfg.CacheContentTTL
	}
}

// sourcePath is the path an output file must never overwrite.
func (s specInput) sourcePath() string {
	return s.File
}

// resolve parses the spec from whichever input was provided, using the cache
// for file, URL, and content inputs.
func (s specInput) resolve(ctx context.Context) (*parser.ParseResult, error) {
	count := 0
	for _, v := range []string{s.File, s.URL, s.Content} {
		if v != "" {
			count++
		}
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}

	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set SWAGREC_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	if cfg.CacheEnabled {
		key = makeCacheKey(s)
	}
	if key != "" {
		if cached, ok := specCache.Get(key); ok {
			return cached, nil
		}
	}

	opts := []parser.Option{parser.WithContext(ctx)}
	switch {
	case s.File != "":
		opts = append(opts, parser.WithFilePath(s.File))
	case s.URL != "":
		if !parser.IsURL(s.URL) {
			return nil, fmt.Errorf("url must start with http:// or https://: %q", s.URL)
		}
		opts = append(opts, parser.WithFilePath(s.URL))
		// SSRF-safe client unless private IPs are allowed.
		if !cfg.AllowPrivateIPs {
			opts = append(opts, parser.WithHTTPClient(httputil.NewSafeClient()))
		}
	case s.Content != "":
		opts = append(opts, parser.WithReader(strings.NewReader(s.Content)), parser.WithSourceName("content"))
	}

	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	if key != "" {
		specCache.Put(key, result, s.ttl())
	}
	return result, nil
}

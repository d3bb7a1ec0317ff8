package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-cleanhttp"

	"github.com/erraggy/swagrec"
	"github.com/erraggy/swagrec/internal/httputil"
	"github.com/erraggy/swagrec/oaserrors"
)

// FormatBytes formats a byte count using binary units (KiB, MiB, etc.)
func FormatBytes(size int64) string {
	if size < 0 {
		return fmt.Sprintf("%d B", size)
	}
	return humanize.IBytes(uint64(size))
}

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent guesses the format from the first non-blank byte:
// JSON documents start with '{' or '['.
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

// IsURL reports whether path will be fetched over HTTP rather than read from disk.
func IsURL(path string) bool { return isURL(path) }

func (p *Parser) httpClient() *http.Client {
	if p.HTTPClient != nil {
		return p.HTTPClient
	}
	client := cleanhttp.DefaultClient()
	client.Timeout = DefaultTimeout
	return client
}

// fetchURL fetches content from a URL and returns the bytes and Content-Type header
func (p *Parser) fetchURL(ctx context.Context, urlStr string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to create request: %w", err)
	}

	userAgent := p.UserAgent
	if userAgent == "" {
		userAgent = swagrec.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	resp, err := p.httpClient().Do(req) //nolint:gosec // URL is user-provided input
	if err != nil {
		return nil, "", fmt.Errorf("parser: %w", &oaserrors.FetchError{URL: urlStr, Message: "request failed", Cause: err})
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("parser: %w", &oaserrors.FetchError{
			URL:        urlStr,
			StatusCode: resp.StatusCode,
			Message:    "unexpected status " + resp.Status,
		})
	}
	if p.RequireJSON && !httputil.IsJSONMediaType(contentType) {
		return nil, "", fmt.Errorf("parser: %w", &oaserrors.FetchError{
			URL:         urlStr,
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
			Message:     fmt.Sprintf("URL isn't returning JSON (Content-Type %q)", contentType),
		})
	}

	limit := p.maxFileSize()
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, "", fmt.Errorf("parser: %w", &oaserrors.FetchError{URL: urlStr, Message: "failed to read response body", Cause: err})
	}
	if int64(len(data)) > limit {
		return nil, "", fmt.Errorf("parser: %w", &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Message:      urlStr,
		})
	}
	p.log().Debug("fetched document", "url", urlStr, "status", resp.StatusCode, "bytes", len(data))
	return data, contentType, nil
}

// detectFormatFromURL attempts to detect the format from a URL path and Content-Type header
func detectFormatFromURL(urlStr string, contentType string) SourceFormat {
	if parsedURL, err := url.Parse(urlStr); err == nil && parsedURL.Path != "" {
		if format := detectFormatFromPath(parsedURL.Path); format != SourceFormatUnknown {
			return format
		}
	}
	switch {
	case httputil.IsJSONMediaType(contentType):
		return SourceFormatJSON
	case httputil.IsYAMLMediaType(contentType):
		return SourceFormatYAML
	}
	return SourceFormatUnknown
}

package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/erraggy/swagrec"
	"github.com/erraggy/swagrec/internal/options"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	ctx            context.Context
	userAgent      string
	httpClient     *http.Client
	logger         Logger
	maxFileSize    int64
	strictInfo     bool
	requireJSON    bool
	skipValidation bool

	// sourceName overrides SourcePath in the result
	sourceName *string
}

// ParseWithOptions parses an OpenAPI document using functional options.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("openapi.yaml"),
//	    parser.WithStrictInfo(true),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	p := &Parser{
		UserAgent:      cfg.userAgent,
		HTTPClient:     cfg.httpClient,
		Logger:         cfg.logger,
		MaxFileSize:    cfg.maxFileSize,
		StrictInfo:     cfg.strictInfo,
		RequireJSON:    cfg.requireJSON,
		SkipValidation: cfg.skipValidation,
	}

	var result *ParseResult
	switch {
	case cfg.filePath != nil:
		result, err = p.ParseContext(cfg.ctx, *cfg.filePath)
	case cfg.reader != nil:
		result, err = p.ParseReader(cfg.reader)
	case cfg.bytes != nil:
		result, err = p.ParseBytes(cfg.bytes)
	}
	if err != nil {
		return nil, err
	}

	if cfg.sourceName != nil {
		result.SourcePath = *cfg.sourceName
	}
	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{
		ctx:       context.Background(),
		userAgent: swagrec.UserAgent(),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"parser: must specify an input source (use WithFilePath, WithReader, or WithBytes)",
		"parser: must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return errors.New("parser: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return errors.New("parser: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithContext bounds URL fetches made for WithFilePath.
func WithContext(ctx context.Context) Option {
	return func(cfg *parseConfig) error {
		if ctx == nil {
			return errors.New("parser: context cannot be nil")
		}
		cfg.ctx = ctx
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "swagrec/vX.Y.Z"
func WithUserAgent(ua string) Option {
	return func(cfg *parseConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithHTTPClient sets the client used to fetch URLs.
// If the client is nil, the default go-cleanhttp client is used.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *parseConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithLogger sets a structured logger for debug output during parsing.
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxFileSize limits the input size in bytes. 0 uses DefaultMaxFileSize.
func WithMaxFileSize(n int64) Option {
	return func(cfg *parseConfig) error {
		if n < 0 {
			return fmt.Errorf("parser: max file size cannot be negative: %d", n)
		}
		cfg.maxFileSize = n
		return nil
	}
}

// WithStrictInfo additionally requires a non-empty info.description.
// Default: false
func WithStrictInfo(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.strictInfo = enabled
		return nil
	}
}

// WithRequireJSON rejects URL responses that are not served as JSON.
// Default: false
func WithRequireJSON(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.requireJSON = enabled
		return nil
	}
}

// WithSkipValidation disables the minimal shape check. The document root
// must still be an object.
// Default: false
func WithSkipValidation(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.skipValidation = enabled
		return nil
	}
}

// WithSourceName overrides the SourcePath reported in the result, which is
// useful for reader and byte inputs.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}

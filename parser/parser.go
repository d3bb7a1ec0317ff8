package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/erraggy/swagrec"
	"github.com/erraggy/swagrec/jsonvalue"
	"github.com/erraggy/swagrec/oaserrors"
)

// SourceFormat represents the format of the source document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

const (
	// DefaultMaxFileSize bounds documents read from disk, readers or URLs.
	DefaultMaxFileSize int64 = 100 * 1024 * 1024
	// DefaultTimeout bounds URL fetches made with the default client.
	DefaultTimeout = 30 * time.Second
)

// Parser loads OpenAPI documents.
//
// The zero value is usable; New returns a Parser with defaults filled in.
type Parser struct {
	// UserAgent is sent with URL requests. Defaults to swagrec.UserAgent().
	UserAgent string
	// HTTPClient fetches URLs. Defaults to a go-cleanhttp client with DefaultTimeout.
	HTTPClient *http.Client
	// Logger receives debug output. Defaults to NopLogger.
	Logger Logger
	// MaxFileSize limits the document size in bytes. 0 means DefaultMaxFileSize.
	MaxFileSize int64
	// StrictInfo additionally requires info.description.
	StrictInfo bool
	// RequireJSON rejects URL responses whose Content-Type is not JSON.
	RequireJSON bool
	// SkipValidation disables the minimal shape check.
	SkipValidation bool
}

// New creates a new Parser with default settings
func New() *Parser {
	return &Parser{
		UserAgent:   swagrec.UserAgent(),
		MaxFileSize: DefaultMaxFileSize,
	}
}

func (p *Parser) log() Logger {
	if p.Logger == nil {
		return NopLogger{}
	}
	return p.Logger
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize <= 0 {
		return DefaultMaxFileSize
	}
	return p.MaxFileSize
}

// ParseResult contains a decoded document and information about its source.
type ParseResult struct {
	// Document is the decoded document root
	Document jsonvalue.Value
	// Version is the raw "openapi" or "swagger" value
	Version string
	// OASVersion is the detected specification series
	OASVersion OASVersion
	// SourcePath is the file path, URL, or "ParseReader.yaml"/"ParseBytes.yaml"
	SourcePath string
	// SourceFormat is the detected input format
	SourceFormat SourceFormat
	// ContentType is the Content-Type of a URL response, if any
	ContentType string
	// SourceSize is the size of the input in bytes
	SourceSize int64
	// LoadTime is the time spent reading and decoding
	LoadTime time.Duration
	// Stats holds path, operation and schema counts
	Stats DocumentStats
}

// IsOAS2 reports whether the document is Swagger 2.0.
func (pr *ParseResult) IsOAS2() bool { return pr.OASVersion.IsOAS2() }

// IsOAS3 reports whether the document is OAS 3.x.
func (pr *ParseResult) IsOAS3() bool { return pr.OASVersion.IsOAS3() }

// Parse loads a document from a file path or an http(s) URL.
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	return p.ParseContext(context.Background(), specPath)
}

// ParseContext is like Parse; ctx bounds URL fetches.
func (p *Parser) ParseContext(ctx context.Context, specPath string) (*ParseResult, error) {
	start := time.Now()

	var (
		data        []byte
		format      SourceFormat
		contentType string
		err         error
	)
	if isURL(specPath) {
		p.log().Debug("fetching document", "url", specPath)
		data, contentType, err = p.fetchURL(ctx, specPath)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromURL(specPath, contentType)
	} else {
		p.log().Debug("reading document", "path", specPath)
		data, err = p.readFile(specPath)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromPath(specPath)
	}

	result, err := p.parseBytes(data, specPath, format)
	if err != nil {
		return nil, err
	}
	result.ContentType = contentType
	result.LoadTime = time.Since(start)
	return result, nil
}

// ParseReader loads a document from r. The source path is "ParseReader.yaml".
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	start := time.Now()
	limit := p.maxFileSize()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read input: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("parser: %w", &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Message:      "input too large",
		})
	}
	result, err := p.parseBytes(data, "ParseReader.yaml", SourceFormatUnknown)
	if err != nil {
		return nil, err
	}
	result.LoadTime = time.Since(start)
	return result, nil
}

// ParseBytes loads a document from data. The source path is "ParseBytes.yaml".
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	start := time.Now()
	if limit := p.maxFileSize(); int64(len(data)) > limit {
		return nil, fmt.Errorf("parser: %w", &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Actual:       int64(len(data)),
		})
	}
	result, err := p.parseBytes(data, "ParseBytes.yaml", SourceFormatUnknown)
	if err != nil {
		return nil, err
	}
	result.LoadTime = time.Since(start)
	return result, nil
}

func (p *Parser) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("parser: %s is a directory", path)
	}
	if limit := p.maxFileSize(); info.Size() > limit {
		return nil, fmt.Errorf("parser: %w", &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        limit,
			Actual:       info.Size(),
			Message:      path,
		})
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided input (CLI)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	return data, nil
}

func (p *Parser) parseBytes(data []byte, source string, format SourceFormat) (*ParseResult, error) {
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}

	doc, err := jsonvalue.Parse(data)
	if err != nil {
		msg := "failed to decode document"
		if errors.Is(err, jsonvalue.ErrEmpty) {
			msg = "document is empty"
		}
		return nil, fmt.Errorf("parser: %w", &oaserrors.ParseError{Path: source, Message: msg, Cause: err})
	}

	if !p.SkipValidation {
		if err := ValidateShape(doc, p.StrictInfo); err != nil {
			return nil, fmt.Errorf("parser: %s: %w", source, err)
		}
	} else if doc.Kind() != jsonvalue.KindObject {
		return nil, fmt.Errorf("parser: %w", &oaserrors.ParseError{
			Path:    source,
			Message: "document root must be an object",
		})
	}

	raw, version := DetectVersion(doc)
	result := &ParseResult{
		Document:     doc,
		Version:      raw,
		OASVersion:   version,
		SourcePath:   source,
		SourceFormat: format,
		SourceSize:   int64(len(data)),
		Stats:        GetDocumentStats(doc),
	}
	p.log().Debug("parsed document",
		"source", source,
		"version", raw,
		"format", format,
		"paths", result.Stats.PathCount,
		"operations", result.Stats.OperationCount,
		"schemas", result.Stats.SchemaCount,
	)
	return result, nil
}

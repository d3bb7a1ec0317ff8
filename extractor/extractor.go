package extractor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/erraggy/swagrec"
	"github.com/erraggy/swagrec/internal/options"
	"github.com/erraggy/swagrec/jsonvalue"
	"github.com/erraggy/swagrec/oaserrors"
	"github.com/erraggy/swagrec/parser"
)

// ExtractResult contains the trimmed document and details about how it was
// produced.
type ExtractResult struct {
	// Document is the assembled output document
	Document jsonvalue.Value
	// Paths is the projected paths object
	Paths *jsonvalue.Object
	// Schemas is the resolved schema closure, in container order
	Schemas *jsonvalue.Object
	// Container is where the document keeps its schemas
	Container ContainerKind
	// Matched lists the endpoints found in the document
	Matched []Endpoint
	// Skipped lists selected endpoints that do not exist in the document
	Skipped []Endpoint
	// Issues lists reference problems found during resolution
	Issues []Issue
	// Components lists the other local components the kept operations and
	// schemas reference, e.g. "#/components/responses/Problem"
	Components []string
	// Rounds holds the resolved set size after each resolution round
	Rounds []int
	// SourceVersion is the "openapi" or "swagger" value of the input
	SourceVersion string
	// SourceOASVersion is the detected series of the input
	SourceOASVersion parser.OASVersion
	// SourceFormat is the format of the input document
	SourceFormat parser.SourceFormat
	// SourcePath is the input path or URL
	SourcePath string
	// Stats describes the input document
	Stats parser.DocumentStats
	// OutputStats describes the output document
	OutputStats parser.DocumentStats
	// ExtractTime is the time spent projecting, resolving and assembling
	ExtractTime time.Duration
}

// HasIssues reports whether resolution found any reference problems.
func (r *ExtractResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// Extractor trims documents to selected endpoints.
type Extractor struct {
	// SortPaths orders the output paths case-insensitively
	SortPaths bool
	// IncludePathItemFields keeps path-level fields such as shared parameters
	IncludePathItemFields bool
	// PruneComponents drops entries of the other component sections that
	// nothing kept references
	PruneComponents bool
	// StrictRefs makes extraction fail when resolution reports issues
	StrictRefs bool
	// StrictInfo additionally requires info.description when loading
	StrictInfo bool
	// UserAgent is sent when loading documents from URLs
	UserAgent string
	// Logger receives debug output. Defaults to parser.NopLogger.
	Logger parser.Logger
}

// New creates a new Extractor with default settings
func New() *Extractor {
	return &Extractor{
		UserAgent: swagrec.UserAgent(),
	}
}

func (e *Extractor) log() parser.Logger {
	if e.Logger == nil {
		return parser.NopLogger{}
	}
	return e.Logger
}

// Extract loads the document at specPath (file or URL) and trims it to
// endpoints.
func (e *Extractor) Extract(specPath string, endpoints []Endpoint) (*ExtractResult, error) {
	parseResult, err := parser.ParseWithOptions(
		parser.WithFilePath(specPath),
		parser.WithUserAgent(e.UserAgent),
		parser.WithStrictInfo(e.StrictInfo),
		parser.WithLogger(e.Logger),
	)
	if err != nil {
		return nil, fmt.Errorf("extractor: failed to parse specification: %w", err)
	}
	return e.ExtractParsed(*parseResult, endpoints)
}

// ExtractParsed trims an already parsed document to endpoints.
func (e *Extractor) ExtractParsed(parseResult parser.ParseResult, endpoints []Endpoint) (*ExtractResult, error) {
	doc := parseResult.Document
	if doc.Kind() != jsonvalue.KindObject {
		return nil, fmt.Errorf("extractor: document root must be an object, got %s", doc.Kind())
	}
	start := time.Now()

	projected := Projector{IncludePathItemFields: e.IncludePathItemFields}.Project(doc, endpoints)
	for _, ep := range projected.Skipped {
		e.log().Warn("selected endpoint not found", "endpoint", ep.String())
	}

	resolved := NewResolver(doc, WithResolverLogger(e.log())).ResolveAt(
		jsonvalue.ObjectValue(projected.Paths), "#/paths")
	if e.StrictRefs && len(resolved.Issues) > 0 {
		return nil, fmt.Errorf("extractor: %w", referenceIssuesError(resolved.Issues))
	}

	if e.SortPaths {
		SortPathKeys(projected.Paths)
	}
	out := Assemble(doc, projected.Paths, resolved.Schemas, resolved.Container)
	if e.PruneComponents {
		out = PruneComponents(out, resolved.Components)
	}

	result := &ExtractResult{
		Document:         out,
		Paths:            projected.Paths,
		Schemas:          resolved.Schemas,
		Container:        resolved.Container,
		Matched:          projected.Matched,
		Skipped:          projected.Skipped,
		Issues:           resolved.Issues,
		Components:       resolved.Components,
		Rounds:           resolved.Rounds,
		SourceVersion:    parseResult.Version,
		SourceOASVersion: parseResult.OASVersion,
		SourceFormat:     parseResult.SourceFormat,
		SourcePath:       parseResult.SourcePath,
		Stats:            parseResult.Stats,
		OutputStats:      parser.GetDocumentStats(out),
		ExtractTime:      time.Since(start),
	}
	e.log().Debug("extracted document",
		"source", result.SourcePath,
		"matched", len(result.Matched),
		"skipped", len(result.Skipped),
		"schemas", result.Schemas.Len(),
		"container", result.Container.String(),
		"issues", len(result.Issues),
	)
	return result, nil
}

// referenceIssuesError converts resolver issues into a single error that
// matches oaserrors.ErrReference.
func referenceIssuesError(list []Issue) error {
	var errs *multierror.Error
	for _, issue := range list {
		errs = multierror.Append(errs, &oaserrors.ReferenceError{
			Ref:        issue.Ref,
			Location:   issue.Path,
			IsExternal: issue.Code == IssueExternalReference,
			Message:    issue.Message,
		})
	}
	return errs.ErrorOrNil()
}

// Option is a function that configures an extract operation
type Option func(*extractConfig) error

// extractConfig holds configuration for an extract operation
type extractConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult
	document *jsonvalue.Value

	ctx        context.Context
	endpoints  []Endpoint
	patterns   []string
	sortPaths  bool
	itemFields bool
	prune      bool
	strictRefs bool
	strictInfo bool
	userAgent  string
	logger     parser.Logger
}

// ExtractWithOptions trims a document using functional options.
//
// Example:
//
//	result, err := extractor.ExtractWithOptions(
//	    extractor.WithFilePath("openapi.yaml"),
//	    extractor.WithMatch("GET /pets*"),
//	    extractor.WithSortPaths(true),
//	)
func ExtractWithOptions(opts ...Option) (*ExtractResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("extractor: invalid options: %w", err)
	}

	e := &Extractor{
		SortPaths:             cfg.sortPaths,
		IncludePathItemFields: cfg.itemFields,
		PruneComponents:       cfg.prune,
		StrictRefs:            cfg.strictRefs,
		StrictInfo:            cfg.strictInfo,
		UserAgent:             cfg.userAgent,
		Logger:                cfg.logger,
	}

	var parseResult parser.ParseResult
	switch {
	case cfg.filePath != nil:
		loaded, err := parser.ParseWithOptions(
			parser.WithFilePath(*cfg.filePath),
			parser.WithContext(cfg.ctx),
			parser.WithUserAgent(cfg.userAgent),
			parser.WithStrictInfo(cfg.strictInfo),
			parser.WithLogger(cfg.logger),
		)
		if err != nil {
			return nil, fmt.Errorf("extractor: failed to parse specification: %w", err)
		}
		parseResult = *loaded
	case cfg.parsed != nil:
		parseResult = *cfg.parsed
	case cfg.document != nil:
		raw, version := parser.DetectVersion(*cfg.document)
		parseResult = parser.ParseResult{
			Document:     *cfg.document,
			Version:      raw,
			OASVersion:   version,
			SourceFormat: parser.SourceFormatUnknown,
			Stats:        parser.GetDocumentStats(*cfg.document),
		}
	}

	endpoints := cfg.endpoints
	if len(cfg.patterns) > 0 {
		matched, err := MatchEndpoints(parseResult.Document, cfg.patterns...)
		if err != nil {
			return nil, err
		}
		endpoints = append(endpoints, matched...)
	}
	return e.ExtractParsed(parseResult, endpoints)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*extractConfig, error) {
	cfg := &extractConfig{
		ctx:       context.Background(),
		userAgent: swagrec.UserAgent(),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"extractor: must specify an input source (use WithFilePath, WithParsed, or WithDocument)",
		"extractor: must specify exactly one input source",
		cfg.filePath != nil, cfg.parsed != nil, cfg.document != nil,
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *extractConfig) error {
		if path == "" {
			return errors.New("extractor: file path cannot be empty")
		}
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies a parsed ParseResult as the input source
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *extractConfig) error {
		cfg.parsed = &result
		return nil
	}
}

// WithDocument specifies a decoded document as the input source
func WithDocument(doc jsonvalue.Value) Option {
	return func(cfg *extractConfig) error {
		cfg.document = &doc
		return nil
	}
}

// WithContext bounds URL fetches made for WithFilePath.
func WithContext(ctx context.Context) Option {
	return func(cfg *extractConfig) error {
		if ctx == nil {
			return errors.New("extractor: context cannot be nil")
		}
		cfg.ctx = ctx
		return nil
	}
}

// WithEndpoints adds endpoints to the selection
func WithEndpoints(endpoints ...Endpoint) Option {
	return func(cfg *extractConfig) error {
		cfg.endpoints = append(cfg.endpoints, endpoints...)
		return nil
	}
}

// WithMatch adds every endpoint matching the glob patterns to the selection.
// See MatchEndpoints for the pattern syntax.
func WithMatch(patterns ...string) Option {
	return func(cfg *extractConfig) error {
		cfg.patterns = append(cfg.patterns, patterns...)
		return nil
	}
}

// WithSortPaths orders the output paths case-insensitively
// Default: false
func WithSortPaths(enabled bool) Option {
	return func(cfg *extractConfig) error {
		cfg.sortPaths = enabled
		return nil
	}
}

// WithPathItemFields keeps path-level fields such as shared parameters
// Default: false
func WithPathItemFields(enabled bool) Option {
	return func(cfg *extractConfig) error {
		cfg.itemFields = enabled
		return nil
	}
}

// WithPruneComponents drops the entries of the other component sections
// (responses, parameters, request bodies, ...) that no kept operation or
// schema references, so the output holds no references to dropped schemas.
func WithPruneComponents(enabled bool) Option {
	return func(cfg *extractConfig) error {
		cfg.prune = enabled
		return nil
	}
}

// WithStrictRefs fails the extraction when any reference is malformed,
// external, or dangling. The error matches oaserrors.ErrReference.
// Default: false
func WithStrictRefs(enabled bool) Option {
	return func(cfg *extractConfig) error {
		cfg.strictRefs = enabled
		return nil
	}
}

// WithStrictInfo additionally requires info.description when loading
// Default: false
func WithStrictInfo(enabled bool) Option {
	return func(cfg *extractConfig) error {
		cfg.strictInfo = enabled
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
func WithUserAgent(ua string) Option {
	return func(cfg *extractConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithLogger sets a structured logger for debug output
func WithLogger(l parser.Logger) Option {
	return func(cfg *extractConfig) error {
		cfg.logger = l
		return nil
	}
}

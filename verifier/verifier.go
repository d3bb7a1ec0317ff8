// Package verifier checks extracted documents with an independent OpenAPI
// implementation.
//
// The output of an extraction is loaded with libopenapi. Building the model
// catches references that do not resolve, which are errors; circular
// references are legal and only reported as warnings. For OAS 3.x documents
// the whole document is additionally validated against the OpenAPI schema
// with libopenapi-validator. Problems are returned as findings rather than
// errors so callers can decide how strict to be.
package verifier

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pb33f/libopenapi"
	"github.com/pb33f/libopenapi/datamodel"
	"github.com/pb33f/libopenapi/index"
	validator "github.com/pb33f/libopenapi-validator"
	validatorErrors "github.com/pb33f/libopenapi-validator/errors"

	"github.com/erraggy/swagrec/internal/issues"
	"github.com/erraggy/swagrec/internal/severity"
	"github.com/erraggy/swagrec/jsonvalue"
	"github.com/erraggy/swagrec/oaserrors"
)

// Result holds the outcome of a verification.
type Result struct {
	// Version is the OpenAPI version reported by libopenapi
	Version string
	// Valid is true when no finding has error severity
	Valid bool
	// Findings lists every problem found
	Findings []issues.Issue
}

// ErrorCount returns the number of error findings.
func (r *Result) ErrorCount() int {
	return issues.Count(r.Findings, severity.SeverityError)
}

// WarningCount returns the number of warning findings.
func (r *Result) WarningCount() int {
	return issues.Count(r.Findings, severity.SeverityWarning)
}

// Option configures a verification.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sets the logger libopenapi writes its own diagnostics to. By
// default they are discarded; everything relevant is returned as findings.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Verify loads data (JSON or YAML) and reports what is wrong with it. An
// error is returned only when data is not an OpenAPI document at all.
func Verify(data []byte, opts ...Option) (*Result, error) {
	cfg := &config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(cfg)
	}

	docConfig := datamodel.NewDocumentConfiguration()
	docConfig.Logger = cfg.logger
	doc, err := libopenapi.NewDocumentWithConfiguration(data, docConfig)
	if err != nil {
		return nil, fmt.Errorf("verifier: %w", &oaserrors.ParseError{
			Path:    "output",
			Message: "libopenapi could not load the document",
			Cause:   err,
		})
	}

	result := &Result{Version: doc.GetVersion()}
	switch {
	case strings.HasPrefix(result.Version, "2."):
		if _, err := doc.BuildV2Model(); err != nil {
			result.addBuildErrors(err)
		}
	case strings.HasPrefix(result.Version, "3."):
		if _, err := doc.BuildV3Model(); err != nil {
			result.addBuildErrors(err)
		}
		result.validate(doc)
	default:
		result.add(issues.Issue{
			Code:     issues.CodeVerification,
			Message:  fmt.Sprintf("unsupported OpenAPI version %q", result.Version),
			Severity: severity.SeverityError,
		})
	}

	result.Valid = result.ErrorCount() == 0
	return result, nil
}

// VerifyDocument is like Verify for a decoded document.
func VerifyDocument(doc jsonvalue.Value, opts ...Option) (*Result, error) {
	data, err := jsonvalue.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("verifier: failed to marshal document: %w", err)
	}
	return Verify(data, opts...)
}

func (r *Result) add(issue issues.Issue) {
	r.Findings = append(r.Findings, issue)
}

// addBuildErrors records model building problems. libopenapi reports
// circular references here too; those are legal and become warnings.
func (r *Result) addBuildErrors(err error) {
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}
	for _, e := range errs {
		if e == nil {
			continue
		}
		r.add(buildFinding(e))
	}
}

func buildFinding(err error) issues.Issue {
	issue := issues.Issue{
		Code:     issues.CodeVerification,
		Message:  err.Error(),
		Severity: severity.SeverityError,
	}
	var resolving *index.ResolvingError
	var indexing *index.IndexingError
	switch {
	case errors.As(err, &resolving):
		issue.Path = resolving.Path
		if resolving.CircularReference != nil {
			issue.Severity = severity.SeverityWarning
		}
	case errors.As(err, &indexing):
		issue.Path = indexing.Path
	}
	return issue
}

// validate checks an OAS 3.x document against the OpenAPI schema.
func (r *Result) validate(doc libopenapi.Document) {
	v, errs := validator.NewValidator(doc)
	if len(errs) > 0 {
		r.add(issues.Issue{
			Code:     issues.CodeVerification,
			Message:  "could not build validator: " + errors.Join(errs...).Error(),
			Severity: severity.SeverityWarning,
		})
		return
	}
	if ok, verrs := v.ValidateDocument(); !ok {
		for _, ve := range verrs {
			r.add(validationFinding(ve))
		}
	}
}

func validationFinding(ve *validatorErrors.ValidationError) issues.Issue {
	msg := ve.Message
	if ve.Reason != "" {
		msg += ": " + ve.Reason
	}
	issue := issues.Issue{
		Code:     issues.CodeVerification,
		Message:  msg,
		Severity: severity.SeverityError,
	}
	if ve.SpecLine > 0 {
		issue.Path = fmt.Sprintf("line %d", ve.SpecLine)
	}
	return issue
}

package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/erraggy/swagrec/jsonvalue"
	"github.com/erraggy/swagrec/oaserrors"
)

// ErrInvalidDefinition prefixes every shape validation failure.
var ErrInvalidDefinition = errors.New("invalid OpenAPI definition")

// ValidateShape checks that doc has the minimal shape every OpenAPI document
// shares: a version field ("openapi" or "swagger") and an info object with a
// non-empty title and version. With strict set, info.description is required
// too.
//
// All violations are reported together. The returned error matches both
// ErrInvalidDefinition and oaserrors.ErrValidation.
func ValidateShape(doc jsonvalue.Value, strict bool) error {
	root, ok := doc.AsObject()
	if !ok {
		return invalidDefinition(&oaserrors.ValidationError{
			Message: "document root must be an object, got " + doc.Kind().String(),
		})
	}

	var errs *multierror.Error

	raw, version := DetectVersion(doc)
	switch {
	case !root.Has("openapi") && !root.Has("swagger"):
		errs = multierror.Append(errs, &oaserrors.ValidationError{
			Path:    "openapi",
			Message: "missing \"openapi\" or \"swagger\" version field",
		})
	case version == Unknown:
		errs = multierror.Append(errs, &oaserrors.ValidationError{
			Path:    versionField(root),
			Message: fmt.Sprintf("unsupported version %q", raw),
		})
	}

	info, ok := root.Get("info")
	infoObj, isObj := info.AsObject()
	switch {
	case !ok:
		errs = multierror.Append(errs, &oaserrors.ValidationError{Path: "info", Message: "is required"})
	case !isObj:
		errs = multierror.Append(errs, &oaserrors.ValidationError{Path: "info", Message: "must be an object"})
	default:
		required := []string{"title", "version"}
		if strict {
			required = append(required, "description")
		}
		for _, field := range required {
			if !nonEmptyText(infoObj, field) {
				errs = multierror.Append(errs, &oaserrors.ValidationError{
					Path:    "info." + field,
					Message: "is required",
				})
			}
		}
	}

	if errs.ErrorOrNil() == nil {
		return nil
	}
	errs.ErrorFormat = joinErrors
	return invalidDefinition(errs)
}

// versionField returns whichever version key the document uses.
func versionField(root *jsonvalue.Object) string {
	if root.Has("openapi") {
		return "openapi"
	}
	return "swagger"
}

// nonEmptyText reports whether obj[field] is a non-blank string. Numbers are
// accepted because unquoted YAML versions ("version: 1.0") decode as numbers.
func nonEmptyText(obj *jsonvalue.Object, field string) bool {
	v, ok := obj.Get(field)
	if !ok {
		return false
	}
	if s, ok := v.AsString(); ok {
		return strings.TrimSpace(s) != ""
	}
	_, isNum := v.AsNumber()
	return isNum
}

func joinErrors(es []error) string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

type definitionError struct {
	cause error
}

func (e *definitionError) Error() string {
	return ErrInvalidDefinition.Error() + ": " + e.cause.Error()
}

func (e *definitionError) Unwrap() []error {
	return []error{ErrInvalidDefinition, e.cause}
}

func invalidDefinition(cause error) error {
	return &definitionError{cause: cause}
}

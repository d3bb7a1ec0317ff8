// Package issues provides the issue type reported by reference resolution
// and output verification.
package issues

import (
	"fmt"

	"github.com/erraggy/swagrec/internal/severity"
)

// Code classifies an issue.
type Code string

const (
	// CodeMalformedReference marks a $ref that is not a parseable local pointer.
	CodeMalformedReference Code = "malformed-reference"
	// CodeExternalReference marks a $ref into another document or URL.
	CodeExternalReference Code = "external-reference"
	// CodeUnresolvedReference marks a $ref whose target does not exist.
	CodeUnresolvedReference Code = "unresolved-reference"
	// CodeNoSchemaContainer marks schema refs in a document with neither
	// components.schemas nor definitions.
	CodeNoSchemaContainer Code = "no-schema-container"
	// CodeVerification marks a finding reported by output verification.
	CodeVerification Code = "verification"
)

// Issue represents a single problem found while processing a document.
type Issue struct {
	// Code classifies the issue
	Code Code
	// Path is the JSON pointer of the offending object (e.g. "#/paths/~1pets/get")
	Path string
	// Ref is the reference string involved, if any
	Ref string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
}

// String returns a one-line representation prefixed with the severity symbol.
func (i Issue) String() string {
	where := i.Path
	if where == "" {
		where = "#"
	}
	if i.Ref != "" {
		return fmt.Sprintf("%s %s: %s (%s)", i.Severity.Symbol(), where, i.Message, i.Ref)
	}
	return fmt.Sprintf("%s %s: %s", i.Severity.Symbol(), where, i.Message)
}

// Count returns how many issues have severity s.
func Count(list []Issue, s severity.Severity) int {
	n := 0
	for _, i := range list {
		if i.Severity == s {
			n++
		}
	}
	return n
}

// Package severity provides severity levels for issues reported while
// resolving references and verifying extracted documents.
package severity

// Severity indicates how serious an issue is.
type Severity int

const (
	// SeverityError indicates the extracted document is likely incomplete,
	// e.g. a reference to a schema that does not exist.
	SeverityError Severity = iota

	// SeverityWarning indicates something the extractor skipped on purpose,
	// e.g. an external reference it does not follow.
	SeverityWarning

	// SeverityInfo indicates an informational notice.
	SeverityInfo
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Symbol returns the single character marker used in CLI output.
func (s Severity) Symbol() string {
	switch s {
	case SeverityError:
		return "✗"
	case SeverityWarning:
		return "⚠"
	case SeverityInfo:
		return "ℹ"
	default:
		return "?"
	}
}

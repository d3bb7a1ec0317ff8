package parser

import (
	"strings"

	"github.com/erraggy/swagrec/jsonvalue"
)

// OASVersion identifies the OpenAPI Specification series of a document.
// Patch releases within a series are treated alike.
type OASVersion int

const (
	// Unknown represents an unknown or invalid OAS version
	Unknown OASVersion = iota
	// OASVersion20 OpenAPI Specification Version 2.0 (Swagger)
	OASVersion20
	// OASVersion30 OpenAPI Specification 3.0.x
	OASVersion30
	// OASVersion31 OpenAPI Specification 3.1.x
	OASVersion31
	// OASVersion32 OpenAPI Specification 3.2.x
	OASVersion32
)

var versionSeries = map[OASVersion]string{
	OASVersion20: "2.0",
	OASVersion30: "3.0",
	OASVersion31: "3.1",
	OASVersion32: "3.2",
}

func (v OASVersion) String() string {
	if s, ok := versionSeries[v]; ok {
		return s
	}
	return "unknown"
}

// IsValid returns true if this is a known version series.
func (v OASVersion) IsValid() bool {
	_, ok := versionSeries[v]
	return ok
}

// IsOAS2 reports whether v is Swagger 2.0.
func (v OASVersion) IsOAS2() bool { return v == OASVersion20 }

// IsOAS3 reports whether v is any 3.x series.
func (v OASVersion) IsOAS3() bool { return v >= OASVersion30 && v <= OASVersion32 }

// ParseVersion maps a version string such as "3.0.3", "3.1" or "2.0" onto
// its series. Pre-release suffixes ("3.1.0-rc1") are accepted.
func ParseVersion(s string) (OASVersion, bool) {
	s = strings.TrimSpace(s)
	for v, series := range versionSeries {
		if s == series || strings.HasPrefix(s, series+".") || strings.HasPrefix(s, series+"-") {
			return v, true
		}
	}
	return Unknown, false
}

// DetectVersion reads the "openapi" field, falling back to "swagger". The
// raw version text is returned alongside the parsed series. YAML documents
// often carry an unquoted "swagger: 2.0", so numbers are accepted too.
func DetectVersion(doc jsonvalue.Value) (string, OASVersion) {
	for _, key := range []string{"openapi", "swagger"} {
		raw, ok := versionText(doc, key)
		if !ok {
			continue
		}
		v, _ := ParseVersion(raw)
		return raw, v
	}
	return "", Unknown
}

func versionText(doc jsonvalue.Value, key string) (string, bool) {
	v, ok := doc.Lookup(key)
	if !ok {
		return "", false
	}
	if s, ok := v.AsString(); ok {
		return s, true
	}
	return v.AsNumber()
}

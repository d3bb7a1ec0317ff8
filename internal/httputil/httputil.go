// Package httputil provides HTTP method and media type helpers shared by the
// extractor, the parser and the front-ends, and the HTTP client used for
// URLs supplied by remote callers.
package httputil

import (
	"mime"
	"strings"
)

// HTTP Method Constants
//
// Path item keys in OpenAPI documents are lower case; all helpers in this
// package compare against these forms.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace" // OAS 3.0+ only
	MethodQuery   = "query" // OAS 3.2+ only
)

// MethodOrder lists the operation keys of a path item in display order:
// the common CRUD verbs first, then the rest.
var MethodOrder = []string{
	MethodGet,
	MethodPost,
	MethodPut,
	MethodPatch,
	MethodDelete,
	MethodOptions,
	MethodHead,
	MethodTrace,
	MethodQuery,
}

var methodRank = func() map[string]int {
	m := make(map[string]int, len(MethodOrder))
	for i, method := range MethodOrder {
		m[method] = i
	}
	return m
}()

// NormalizeMethod lower-cases and trims a method name.
func NormalizeMethod(method string) string {
	return strings.ToLower(strings.TrimSpace(method))
}

// IsHTTPMethod reports whether method (already normalized) names an
// operation key of a path item.
func IsHTTPMethod(method string) bool {
	_, ok := methodRank[method]
	return ok
}

// MethodRank returns the position of method in MethodOrder, or
// len(MethodOrder) for unknown methods so they sort last.
func MethodRank(method string) int {
	if r, ok := methodRank[method]; ok {
		return r
	}
	return len(MethodOrder)
}

// IsJSONMediaType reports whether a Content-Type header value denotes JSON:
// application/json or any +json structured syntax suffix
// (e.g. application/vnd.oai.openapi+json).
func IsJSONMediaType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// IsYAMLMediaType reports whether a Content-Type header value denotes YAML.
func IsYAMLMediaType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return true
	}
	return strings.HasSuffix(mediaType, "+yaml")
}

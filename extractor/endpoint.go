package extractor

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/ryanuber/go-glob"

	"github.com/erraggy/swagrec/internal/httputil"
	"github.com/erraggy/swagrec/jsonvalue"
)

// Endpoint identifies one operation of a document.
type Endpoint struct {
	Method string `json:"method" yaml:"method"`
	Path   string `json:"path" yaml:"path"`
}

// Normalize returns e with the method lower-cased and trimmed.
func (e Endpoint) Normalize() Endpoint {
	return Endpoint{Method: httputil.NormalizeMethod(e.Method), Path: e.Path}
}

// String renders e as "GET /pets".
func (e Endpoint) String() string {
	return strings.ToUpper(httputil.NormalizeMethod(e.Method)) + " " + e.Path
}

// ParseEndpoint parses an endpoint identifier. Accepted forms:
//
//	GET /pets
//	[GET] /pets
//	get:/pets
func ParseEndpoint(s string) (Endpoint, error) {
	s = strings.TrimSpace(s)
	var method, path string

	switch {
	case strings.HasPrefix(s, "["):
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return Endpoint{}, fmt.Errorf("extractor: invalid endpoint %q: missing ']'", s)
		}
		method, path = s[1:end], strings.TrimSpace(s[end+1:])
	case strings.ContainsAny(s, " \t"):
		i := strings.IndexAny(s, " \t")
		method, path = s[:i], strings.TrimSpace(s[i+1:])
	default:
		// "get:/pets" only; a colon inside a path such as "/v1/{name}:cancel"
		// is not a separator.
		m, p, ok := strings.Cut(s, ":")
		if !ok || !httputil.IsHTTPMethod(httputil.NormalizeMethod(m)) {
			return Endpoint{}, fmt.Errorf("extractor: invalid endpoint %q: expected \"METHOD /path\"", s)
		}
		method, path = m, p
	}

	method = httputil.NormalizeMethod(method)
	if !httputil.IsHTTPMethod(method) {
		return Endpoint{}, fmt.Errorf("extractor: invalid endpoint %q: unknown method %q", s, method)
	}
	if !strings.HasPrefix(path, "/") {
		return Endpoint{}, fmt.Errorf("extractor: invalid endpoint %q: path must start with '/'", s)
	}
	return Endpoint{Method: method, Path: path}, nil
}

// EndpointInfo describes an operation available for selection.
type EndpointInfo struct {
	Method      string   `json:"method"`
	Path        string   `json:"path"`
	OperationID string   `json:"operationId,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Deprecated  bool     `json:"deprecated,omitempty"`
}

// Endpoint returns the identifier of the operation.
func (i EndpointInfo) Endpoint() Endpoint {
	return Endpoint{Method: i.Method, Path: i.Path}
}

// ListEndpoints enumerates every operation of doc. Operations are ordered by
// method priority (GET, POST, PUT, PATCH, DELETE, OPTIONS, HEAD, TRACE,
// QUERY); operations with the same method keep their document order.
func ListEndpoints(doc jsonvalue.Value) []EndpointInfo {
	paths, ok := doc.LookupObject("paths")
	if !ok {
		return nil
	}

	var out []EndpointInfo
	for path, item := range paths.All() {
		itemObj, ok := item.AsObject()
		if !ok {
			continue
		}
		for method, op := range itemObj.All() {
			if !httputil.IsHTTPMethod(method) {
				continue
			}
			out = append(out, describeOperation(method, path, op))
		}
	}

	slices.SortStableFunc(out, func(a, b EndpointInfo) int {
		return cmp.Compare(httputil.MethodRank(a.Method), httputil.MethodRank(b.Method))
	})
	return out
}

func describeOperation(method, path string, op jsonvalue.Value) EndpointInfo {
	info := EndpointInfo{Method: method, Path: path}
	obj, ok := op.AsObject()
	if !ok {
		return info
	}
	if v, ok := obj.Get("operationId"); ok {
		info.OperationID, _ = v.AsString()
	}
	if v, ok := obj.Get("summary"); ok {
		info.Summary, _ = v.AsString()
	}
	if v, ok := obj.Get("deprecated"); ok {
		info.Deprecated, _ = v.AsBool()
	}
	if v, ok := obj.Get("tags"); ok {
		items, _ := v.AsArray()
		for _, tag := range items {
			if s, ok := tag.AsString(); ok {
				info.Tags = append(info.Tags, s)
			}
		}
	}
	return info
}

// MatchEndpoints returns the operations of doc matching any of patterns, in
// ListEndpoints order.
//
// A pattern is "METHOD PATH" where both parts may use '*' wildcards, e.g.
// "GET /pets/*" or "* /users*". A pattern without a space matches paths for
// every method.
func MatchEndpoints(doc jsonvalue.Value, patterns ...string) ([]Endpoint, error) {
	type matcher struct{ method, path string }
	matchers := make([]matcher, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("extractor: empty match pattern")
		}
		method, path, ok := strings.Cut(p, " ")
		if !ok {
			method, path = "*", p
		}
		matchers = append(matchers, matcher{
			method: httputil.NormalizeMethod(method),
			path:   strings.TrimSpace(path),
		})
	}

	var out []Endpoint
	for _, info := range ListEndpoints(doc) {
		for _, m := range matchers {
			if glob.Glob(m.method, info.Method) && glob.Glob(m.path, info.Path) {
				out = append(out, info.Endpoint())
				break
			}
		}
	}
	return out, nil
}

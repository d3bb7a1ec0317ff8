package extractor

import (
	"github.com/erraggy/swagrec/internal/httputil"
	"github.com/erraggy/swagrec/jsonvalue"
)

// ProjectResult is the outcome of a projection.
type ProjectResult struct {
	// Paths holds the selected operations keyed by path, then by lower-case
	// method. Paths appear in the order they were first selected.
	Paths *jsonvalue.Object
	// Matched lists the selected endpoints that exist, without duplicates.
	Matched []Endpoint
	// Skipped lists the selected endpoints that do not exist in the document
	// or do not name an HTTP method.
	Skipped []Endpoint
}

// Projector selects operations from a document.
type Projector struct {
	// IncludePathItemFields carries the non-operation fields of each selected
	// path item (parameters, summary, description, servers, ...) into the
	// projection.
	IncludePathItemFields bool
}

// Project returns the operations of doc named by selected.
//
// Every projected path item is a new object, so the result never aliases the
// path item maps of doc; operations themselves are shared.
func (p Projector) Project(doc jsonvalue.Value, selected []Endpoint) *ProjectResult {
	result := &ProjectResult{Paths: jsonvalue.NewObject()}
	if len(selected) == 0 {
		return result
	}
	paths, hasPaths := doc.LookupObject("paths")

	seen := make(map[Endpoint]bool, len(selected))
	for _, raw := range selected {
		ep := raw.Normalize()
		if seen[ep] {
			continue
		}
		seen[ep] = true

		op, ok := lookupOperation(paths, hasPaths, ep)
		if !ok {
			result.Skipped = append(result.Skipped, ep)
			continue
		}

		itemValue, exists := result.Paths.Get(ep.Path)
		item, _ := itemValue.AsObject()
		if !exists {
			item = jsonvalue.NewObject()
			if p.IncludePathItemFields {
				copyPathItemFields(item, paths, ep.Path)
			}
			result.Paths.Set(ep.Path, jsonvalue.ObjectValue(item))
		}
		item.Set(ep.Method, op)
		result.Matched = append(result.Matched, ep)
	}
	return result
}

func lookupOperation(paths *jsonvalue.Object, hasPaths bool, ep Endpoint) (jsonvalue.Value, bool) {
	if !hasPaths || !httputil.IsHTTPMethod(ep.Method) {
		return jsonvalue.Value{}, false
	}
	itemValue, ok := paths.Get(ep.Path)
	if !ok {
		return jsonvalue.Value{}, false
	}
	item, ok := itemValue.AsObject()
	if !ok {
		return jsonvalue.Value{}, false
	}
	return item.Get(ep.Method)
}

func copyPathItemFields(dst *jsonvalue.Object, paths *jsonvalue.Object, path string) {
	itemValue, _ := paths.Get(path)
	item, ok := itemValue.AsObject()
	if !ok {
		return
	}
	for key, v := range item.All() {
		if !httputil.IsHTTPMethod(key) {
			dst.Set(key, v)
		}
	}
}

// ProjectPaths returns the paths object holding only the selected
// operations of doc. Unknown endpoints are skipped.
func ProjectPaths(doc jsonvalue.Value, selected []Endpoint) *jsonvalue.Object {
	return Projector{}.Project(doc, selected).Paths
}

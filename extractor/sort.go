package extractor

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/erraggy/swagrec/jsonvalue"
)

// SortPathKeys orders the keys of paths case-insensitively, using Unicode
// case folding. Keys that fold to the same string are ordered by their raw
// form.
func SortPathKeys(paths *jsonvalue.Object) {
	if paths.Len() < 2 {
		return
	}
	fold := cases.Fold()
	folded := make(map[string]string, paths.Len())
	for _, k := range paths.Keys() {
		folded[k] = fold.String(k)
	}
	paths.SortKeys(func(a, b string) int {
		if c := strings.Compare(folded[a], folded[b]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
}

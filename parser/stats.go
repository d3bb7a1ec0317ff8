package parser

import (
	"github.com/erraggy/swagrec/internal/httputil"
	"github.com/erraggy/swagrec/jsonvalue"
)

// DocumentStats contains statistical information about an OAS document
type DocumentStats struct {
	PathCount      int // Number of paths defined
	OperationCount int // Total number of operations across all paths
	SchemaCount    int // Number of schemas/definitions
}

// GetDocumentStats returns statistics for a decoded OAS document.
// Documents of either version are handled; missing sections count as zero.
func GetDocumentStats(doc jsonvalue.Value) DocumentStats {
	var stats DocumentStats

	if paths, ok := doc.LookupObject("paths"); ok {
		stats.PathCount = paths.Len()
		for _, item := range paths.All() {
			stats.OperationCount += countOperations(item)
		}
	}

	if schemas, ok := doc.LookupObject("components", "schemas"); ok {
		stats.SchemaCount = schemas.Len()
	} else if defs, ok := doc.LookupObject("definitions"); ok {
		stats.SchemaCount = defs.Len()
	}

	return stats
}

// countOperations counts the HTTP method keys of a single path item
func countOperations(item jsonvalue.Value) int {
	obj, ok := item.AsObject()
	if !ok {
		return 0
	}
	count := 0
	for key, op := range obj.All() {
		if op.Kind() == jsonvalue.KindObject && httputil.IsHTTPMethod(key) {
			count++
		}
	}
	return count
}

// Package pathutil provides location and reference helpers for walking
// OpenAPI documents.
//
// [PathBuilder] records the steps taken from the document root and renders
// them on demand, either in dotted form ("paths./pets.get") for log output or
// as a JSON Pointer fragment ("#/paths/~1pets/get") for issue reports:
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("paths")
//	path.Push("/pets")
//	path.Pointer() // "#/paths/~1pets"
//
// The package also builds schema references for both container layouts, and
// [SanitizeOutputPath] / [EnsureExtension] prepare user supplied output paths.
package pathutil

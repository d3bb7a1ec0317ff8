// Package extractor trims an OpenAPI document down to a chosen set of
// endpoints and the schemas they transitively reference.
//
// Extraction runs in two pure stages over a decoded document
// (see package jsonvalue):
//
//   - ProjectPaths keeps only the selected (method, path) operations. Several
//     methods selected on one path accumulate into a single path item.
//   - Resolve computes the closure of every schema reachable through $ref
//     pointers, repeating rounds until no new schema appears. Both the OAS 3.x
//     components.schemas and the Swagger 2.0 definitions layouts are supported.
//
// Assemble combines both results with the rest of the document. Extract and
// ExtractWithOptions run the whole pipeline, including loading the document.
//
// # Quick Start
//
//	result, err := extractor.ExtractWithOptions(
//	    extractor.WithFilePath("openapi.yaml"),
//	    extractor.WithEndpoints(extractor.Endpoint{Method: "get", Path: "/pets"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, _ := extractor.MarshalDocument(result.Document, extractor.FormatJSON)
//
// # Leniency
//
// The core never fails on data-shape anomalies. Selected endpoints that do
// not exist are reported in ExtractResult.Skipped, and references that are
// malformed, external, or dangling are reported as issues while the
// referenced schema is simply left out. Use WithStrictRefs to turn reference
// issues into an error.
package extractor

// Package swagrec extracts a subset of endpoints from an OpenAPI or Swagger
// document together with every schema those endpoints reference.
//
// Given a full document and a list of selected (method, path) pairs, swagrec
// produces a smaller document that keeps only the selected operations and the
// transitive closure of the schemas they reach through "$ref" pointers, in
// either the OAS 3.x "components.schemas" layout or the OAS 2.0
// "definitions" layout. Everything else in the document passes through
// unchanged.
//
// # Packages
//
//   - jsonvalue: ordered, tagged-union JSON model decoded from JSON or YAML
//   - parser: load documents from files, URLs, readers or bytes and check the
//     minimal OpenAPI shape
//   - extractor: path projection, fixed-point schema resolution and assembly
//   - verifier: re-parse an extracted document with libopenapi and report
//     findings
//   - oaserrors: structured error types
//
// # Quick Start
//
//	result, err := extractor.ExtractWithOptions(
//	    extractor.WithFilePath("petstore.yaml"),
//	    extractor.WithEndpoints(
//	        extractor.Endpoint{Method: "get", Path: "/pets"},
//	    ),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, _ := extractor.MarshalDocument(result.Document, extractor.FormatJSON)
//	os.Stdout.Write(out)
//
// The command line tool lives in cmd/swagrec; "swagrec list" prints the
// endpoints of a document and "swagrec extract" writes the trimmed document.
package swagrec

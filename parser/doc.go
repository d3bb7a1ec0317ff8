// Package parser loads OpenAPI documents for swagrec.
//
// A document is read from a file path, an http(s) URL, an io.Reader or a byte
// slice, decoded from JSON or YAML into a [jsonvalue.Value], and checked for
// the minimal OpenAPI shape: an "openapi" or "swagger" version field plus
// "info.title" and "info.version" (and "info.description" in strict mode).
// Nothing beyond that shape is validated; the extractor works on any document
// that passes this check.
//
// # Basic usage
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("https://petstore.swagger.io/v2/swagger.json"),
//	    parser.WithRequireJSON(true),
//	)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.OASVersion, result.Stats.OperationCount)
//
// URLs are fetched with a go-cleanhttp client unless one is supplied with
// [WithHTTPClient]. Non-2xx responses become [oaserrors.FetchError];
// documents that fail the shape check return an error matching
// [oaserrors.ErrValidation] whose message begins with
// "invalid OpenAPI definition".
package parser

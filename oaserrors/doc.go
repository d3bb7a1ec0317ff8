// Package oaserrors provides structured error types for swagrec.
//
// Callers distinguish failure categories with [errors.Is] against the
// sentinels, or inspect details with [errors.As]:
//
//   - [ParseError] ([ErrParse]): the input is not JSON or YAML
//   - [FetchError] ([ErrFetch]): a URL could not be retrieved, returned a
//     non-2xx status, or did not serve the expected content type
//   - [ValidationError] ([ErrValidation]): the document lacks the minimal
//     OpenAPI shape (openapi/swagger, info.title, info.version)
//   - [ReferenceError] ([ErrReference]): a $ref could not be followed; only
//     raised when the caller asks for strict reference handling
//   - [ResourceLimitError] ([ErrResourceLimit]): input exceeded a size limit
//   - [ConfigError] ([ErrConfig]): invalid options or configuration
//
// Example:
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath(uri))
//	var fetchErr *oaserrors.FetchError
//	if errors.As(err, &fetchErr) && fetchErr.StatusCode == http.StatusNotFound {
//	    // ...
//	}
//
// The reference resolver itself never fails on malformed or dangling
// references; it reports them as issues on the result instead.
package oaserrors

package mcpserver

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ryanuber/go-glob"

	"github.com/erraggy/swagrec/extractor"
	"github.com/erraggy/swagrec/internal/httputil"
)

type listEndpointsInput struct {
	Spec   specInput `json:"spec"             jsonschema:"The OAS document to list"`
	Method string    `json:"method,omitempty" jsonschema:"Only list operations with this HTTP method"`
	Path   string    `json:"path,omitempty"   jsonschema:"Only list paths matching this glob (* matches any run of characters)"`
	Tag    string    `json:"tag,omitempty"    jsonschema:"Only list operations carrying this tag"`
	Offset int       `json:"offset,omitempty" jsonschema:"Number of results to skip"`
	Limit  int       `json:"limit,omitempty"  jsonschema:"Maximum number of results to return"`
}

type listEndpointsOutput struct {
	Version   string                   `json:"version"`
	Total     int                      `json:"total"`
	Returned  int                      `json:"returned"`
	Endpoints []extractor.EndpointInfo `json:"endpoints,omitempty"`
}

func handleListEndpoints(ctx context.Context, _ *mcp.CallToolRequest, input listEndpointsInput) (*mcp.CallToolResult, listEndpointsOutput, error) {
	method := ""
	if input.Method != "" {
		method = httputil.NormalizeMethod(input.Method)
		if !httputil.IsHTTPMethod(method) {
			return errResult(fmt.Errorf("invalid method %q", input.Method)), listEndpointsOutput{}, nil
		}
	}

	parsed, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), listEndpointsOutput{}, nil
	}

	all := extractor.ListEndpoints(parsed.Document)
	filtered := make([]extractor.EndpointInfo, 0, len(all))
	for _, info := range all {
		if method != "" && info.Method != method {
			continue
		}
		if input.Path != "" && !glob.Glob(input.Path, info.Path) {
			continue
		}
		if input.Tag != "" && !slices.ContainsFunc(info.Tags, func(tag string) bool {
			return strings.EqualFold(tag, input.Tag)
		}) {
			continue
		}
		filtered = append(filtered, info)
	}

	page := paginate(filtered, input.Offset, input.Limit)
	return nil, listEndpointsOutput{
		Version:   parsed.Version,
		Total:     len(filtered),
		Returned:  len(page),
		Endpoints: page,
	}, nil
}

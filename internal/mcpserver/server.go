// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes swagrec endpoint extraction as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/swagrec"
)

const serverInstructions = `swagrec MCP server. Lists the endpoints of an OpenAPI document and extracts a smaller document holding only selected endpoints plus every schema they reference.

Configuration: defaults are configurable via SWAGREC_* environment variables set in your MCP client config.

Key settings:
- SWAGREC_CACHE_FILE_TTL (default: 15m): cache TTL for local file specs
- SWAGREC_CACHE_URL_TTL (default: 5m): cache TTL for URL-fetched specs
- SWAGREC_CACHE_ENABLED (default: true): disable spec caching entirely
- SWAGREC_LIST_LIMIT (default: 100): default result limit for list_endpoints
- SWAGREC_SORT_PATHS (default: false): sort extracted paths by default
- SWAGREC_VERIFY (default: false): verify extracted documents by default

Workflow: call list_endpoints first, then extract with the endpoints you need. Large results can be written to a file with output.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.StartSweeper(ctx, cfg.CacheSweepInterval)
	}
	return newServer().Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "swagrec", Version: swagrec.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_endpoints",
		Description: "List the operations of an OpenAPI 2.0 or 3.x document as method, path, operationId, summary and tags. Filter by method, path glob (e.g. /pets/*) or tag. Use offset/limit to page through large APIs. Default limit is configurable via SWAGREC_LIST_LIMIT.",
	}, handleListEndpoints)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract",
		Description: "Extract a self-contained OpenAPI document holding only the selected endpoints and the transitive closure of schemas they reference. Select with endpoints (e.g. \"GET /pets\") and/or match glob patterns (e.g. \"* /pets*\"). Returns matched and skipped endpoints, the kept schema names, reference issues, and the document inline or written to output. Set verify=true to check the result with libopenapi.",
	}, handleExtract)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// pathPattern matches absolute filesystem paths so they can be stripped from
// error messages returned to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/swagrec/extractor"
	"github.com/erraggy/swagrec/internal/fileutil"
	"github.com/erraggy/swagrec/internal/issues"
	"github.com/erraggy/swagrec/verifier"
)

type extractInput struct {
	Spec            specInput `json:"spec"                       jsonschema:"The OAS document to extract from"`
	Endpoints       []string  `json:"endpoints,omitempty"        jsonschema:"Endpoints to keep, e.g. \"GET /pets\" or \"post:/pets\""`
	Match           []string  `json:"match,omitempty"            jsonschema:"Glob patterns selecting endpoints, e.g. \"GET /pets*\" or \"/users/*\""`
	SortPaths       *bool     `json:"sort_paths,omitempty"       jsonschema:"Sort output paths case-insensitively"`
	PathItemFields  bool      `json:"path_item_fields,omitempty" jsonschema:"Keep path-level fields such as shared parameters"`
	PruneComponents bool      `json:"prune_components,omitempty" jsonschema:"Drop responses, parameters and other components nothing kept references"`
	Format          string    `json:"format,omitempty"           jsonschema:"Output format: json (default) or yaml"`
	Output          string    `json:"output,omitempty"           jsonschema:"Write the document to this file instead of returning it inline"`
	Verify          *bool     `json:"verify,omitempty"           jsonschema:"Check the extracted document with libopenapi"`
}

type issueOutput struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Path     string `json:"path,omitempty"`
	Ref      string `json:"ref,omitempty"`
	Message  string `json:"message"`
}

type verificationOutput struct {
	Valid    bool          `json:"valid"`
	Version  string        `json:"version,omitempty"`
	Findings []issueOutput `json:"findings,omitempty"`
}

type extractOutput struct {
	Matched      []string            `json:"matched,omitempty"`
	Skipped      []string            `json:"skipped,omitempty"`
	Container    string              `json:"container"`
	Schemas      []string            `json:"schemas,omitempty"`
	Rounds       []int               `json:"rounds,omitempty"`
	Issues       []issueOutput       `json:"issues,omitempty"`
	Document     string              `json:"document,omitempty"`
	WrittenTo    string              `json:"written_to,omitempty"`
	Verification *verificationOutput `json:"verification,omitempty"`
}

func handleExtract(ctx context.Context, _ *mcp.CallToolRequest, input extractInput) (*mcp.CallToolResult, extractOutput, error) {
	if len(input.Endpoints) == 0 && len(input.Match) == 0 {
		return errResult(fmt.Errorf("at least one of endpoints or match must be provided")), extractOutput{}, nil
	}

	format := extractor.FormatJSON
	if input.Format != "" {
		f, err := extractor.ParseFormat(input.Format)
		if err != nil {
			return errResult(err), extractOutput{}, nil
		}
		format = f
	}

	endpoints := make([]extractor.Endpoint, 0, len(input.Endpoints))
	for _, s := range input.Endpoints {
		ep, err := extractor.ParseEndpoint(s)
		if err != nil {
			return errResult(err), extractOutput{}, nil
		}
		endpoints = append(endpoints, ep)
	}

	parsed, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), extractOutput{}, nil
	}

	sortPaths := cfg.SortPaths
	if input.SortPaths != nil {
		sortPaths = *input.SortPaths
	}
	opts := []extractor.Option{
		extractor.WithParsed(*parsed),
		extractor.WithContext(ctx),
		extractor.WithEndpoints(endpoints...),
		extractor.WithSortPaths(sortPaths),
		extractor.WithPathItemFields(input.PathItemFields),
		extractor.WithPruneComponents(input.PruneComponents),
	}
	if len(input.Match) > 0 {
		opts = append(opts, extractor.WithMatch(input.Match...))
	}
	result, err := extractor.ExtractWithOptions(opts...)
	if err != nil {
		return errResult(err), extractOutput{}, nil
	}

	data, err := extractor.MarshalDocument(result.Document, format)
	if err != nil {
		return errResult(err), extractOutput{}, nil
	}

	output := extractOutput{
		Matched:   endpointStrings(result.Matched),
		Skipped:   endpointStrings(result.Skipped),
		Container: result.Container.String(),
		Schemas:   result.Schemas.Keys(),
		Rounds:    result.Rounds,
		Issues:    issueOutputs(result.Issues),
	}

	verify := cfg.Verify
	if input.Verify != nil {
		verify = *input.Verify
	}
	if verify {
		vr, err := verifier.Verify(data)
		if err != nil {
			return errResult(err), extractOutput{}, nil
		}
		output.Verification = &verificationOutput{
			Valid:    vr.Valid,
			Version:  vr.Version,
			Findings: issueOutputs(vr.Findings),
		}
	}

	if input.Output != "" {
		written, err := fileutil.WriteSpec(input.Output, format.Extension(), data, input.Spec.sourcePath())
		if err != nil {
			return errResult(err), extractOutput{}, nil
		}
		output.WrittenTo = written
		return nil, output, nil
	}

	output.Document = string(data)
	return nil, output, nil
}

func endpointStrings(eps []extractor.Endpoint) []string {
	if len(eps) == 0 {
		return nil
	}
	out := make([]string, len(eps))
	for i, ep := range eps {
		out[i] = ep.String()
	}
	return out
}

func issueOutputs(list []issues.Issue) []issueOutput {
	if len(list) == 0 {
		return nil
	}
	out := make([]issueOutput, len(list))
	for i, issue := range list {
		out[i] = issueOutput{
			Code:     string(issue.Code),
			Severity: issue.Severity.String(),
			Path:     issue.Path,
			Ref:      issue.Ref,
			Message:  issue.Message,
		}
	}
	return out
}

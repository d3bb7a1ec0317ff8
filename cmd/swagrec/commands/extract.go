package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erraggy/swagrec/extractor"
	"github.com/erraggy/swagrec/internal/cliutil"
	"github.com/erraggy/swagrec/internal/config"
	"github.com/erraggy/swagrec/internal/fileutil"
	"github.com/erraggy/swagrec/parser"
	"github.com/erraggy/swagrec/verifier"
)

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <file|url|->",
		Short: "Write a document holding only the selected endpoints and the schemas they use",
		Example: `  swagrec extract openapi.yaml -e "GET /pets" -e "POST /pets" -o pets.json
  swagrec extract openapi.yaml --match "* /users*" --format yaml
  cat openapi.json | swagrec extract - -e "get:/health" -q > health.json`,
		Long: `Write a document holding only the selected endpoints and the schemas they use.

Other component sections (responses, parameters, request bodies, ...) are
copied unchanged, so an entry nothing selected uses may still reference a
schema that was dropped. Use --prune-components to remove such entries,
which also keeps --verify from reporting them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExtract,
	}

	flags := cmd.Flags()
	flags.StringArrayP("endpoint", "e", nil, "Endpoint to keep, e.g. \"GET /pets\" (repeatable)")
	flags.StringArray("match", nil, "Keep endpoints matching a pattern such as \"GET /pets/*\" (repeatable)")
	flags.StringP("output", "o", "", "Output file; .json or .yaml is appended when missing (default: stdout)")
	flags.String("format", "", "Output format: json or yaml (default: from the output extension, else json)")
	flags.Bool("sort-paths", false, "Sort output paths case-insensitively")
	flags.Bool("path-item-fields", false, "Keep path-level fields such as shared parameters")
	flags.Bool("prune-components", false, "Drop responses, parameters and other components nothing kept references")
	flags.Bool("strict-refs", false, "Fail when a reference cannot be resolved")
	flags.Bool("strict-info", false, "Also require info.description")
	flags.Bool("verify", false, "Check the output with libopenapi and fail on errors")
	flags.String("user-agent", "", "User-Agent for URL requests")
	flags.Duration("timeout", 0, "Abort after this long (e.g. 30s)")
	flags.BoolP("quiet", "q", false, "Only write the document, no diagnostics")
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd, args)
	if err != nil {
		return err
	}
	if !cfg.HasSelection() {
		return errors.New("select at least one endpoint with --endpoint or --match")
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	stderr := cmd.ErrOrStderr()

	format, err := outputFormat(cfg)
	if err != nil {
		return err
	}

	endpoints := make([]extractor.Endpoint, 0, len(cfg.Endpoints))
	for _, s := range cfg.Endpoints {
		ep, err := extractor.ParseEndpoint(s)
		if err != nil {
			return err
		}
		endpoints = append(endpoints, ep)
	}

	ctx, cancel := commandContext(cmd, cfg)
	defer cancel()
	parsed, err := loadSpec(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	opts := []extractor.Option{
		extractor.WithParsed(*parsed),
		extractor.WithContext(ctx),
		extractor.WithEndpoints(endpoints...),
		extractor.WithSortPaths(cfg.SortPaths),
		extractor.WithPathItemFields(cfg.PathItemFields),
		extractor.WithPruneComponents(cfg.PruneComponents),
		extractor.WithStrictRefs(cfg.StrictRefs),
		extractor.WithLogger(parserLogger(cmd)),
	}
	if len(cfg.Match) > 0 {
		opts = append(opts, extractor.WithMatch(cfg.Match...))
	}
	result, err := extractor.ExtractWithOptions(opts...)
	if err != nil {
		return err
	}
	if len(result.Matched) == 0 {
		return errors.New("no selected endpoint exists in the document")
	}

	data, err := extractor.MarshalDocument(result.Document, format)
	if err != nil {
		return err
	}

	if !quiet {
		printExtractSummary(stderr, parsed, result)
	}

	var verifyErr error
	if cfg.Verify {
		verifyErr = runVerify(cmd, data, quiet)
	}

	if cfg.Output == "" {
		cliutil.Writef(cmd.OutOrStdout(), "%s", data)
		return verifyErr
	}

	inputPath := ""
	if cfg.Spec != StdinFilePath && !parser.IsURL(cfg.Spec) {
		inputPath = cfg.Spec
	}
	written, err := fileutil.WriteSpec(cfg.Output, format.Extension(), data, inputPath)
	if err != nil {
		return err
	}
	if !quiet {
		cliutil.Successf(stderr, "Wrote %s (%s)\n", written, parser.FormatBytes(int64(len(data))))
	}
	return verifyErr
}

// outputFormat picks the --format value, else the output extension, else JSON.
func outputFormat(cfg *config.Config) (extractor.Format, error) {
	if cfg.Format != "" {
		return extractor.ParseFormat(cfg.Format)
	}
	switch strings.ToLower(filepath.Ext(cfg.Output)) {
	case ".yaml", ".yml":
		return extractor.FormatYAML, nil
	default:
		return extractor.FormatJSON, nil
	}
}

func printExtractSummary(w io.Writer, parsed *parser.ParseResult, result *extractor.ExtractResult) {
	cliutil.Dimf(w, "Source: %s (OAS %s, %s, %d operations, %d schemas)\n",
		parsed.SourcePath, parsed.Version, parser.FormatBytes(parsed.SourceSize),
		result.Stats.OperationCount, result.Stats.SchemaCount)

	for _, ep := range result.Skipped {
		cliutil.Warnf(w, "Skipped %s: not in the document\n", ep)
	}
	for _, issue := range result.Issues {
		cliutil.Warnf(w, "%s\n", issue)
	}
	cliutil.Writef(w, "Kept %d of %d operations and %d of %d schemas (%s) in %v\n",
		result.OutputStats.OperationCount, result.Stats.OperationCount,
		result.Schemas.Len(), result.Stats.SchemaCount,
		result.Container, result.ExtractTime)
}

func runVerify(cmd *cobra.Command, data []byte, quiet bool) error {
	w := cmd.ErrOrStderr()
	var opts []verifier.Option
	if verbose(cmd) && !quiet {
		opts = append(opts, verifier.WithLogger(newLogger(cmd)))
	}
	vr, err := verifier.Verify(data, opts...)
	if err != nil {
		return fmt.Errorf("verifying output: %w", err)
	}
	if !quiet {
		for _, finding := range vr.Findings {
			cliutil.Warnf(w, "%s\n", finding)
		}
	}
	if !vr.Valid {
		return fmt.Errorf("output failed verification with %d error(s)", vr.ErrorCount())
	}
	if !quiet {
		cliutil.Successf(w, "Output verified as OpenAPI %s\n", vr.Version)
	}
	return nil
}

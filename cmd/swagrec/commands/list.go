package commands

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-set/v3"
	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"

	"github.com/erraggy/swagrec/extractor"
	"github.com/erraggy/swagrec/internal/cliutil"
	"github.com/erraggy/swagrec/internal/config"
	"github.com/erraggy/swagrec/jsonvalue"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <file|url|->",
		Short: "List the endpoints of an OpenAPI document",
		Example: `  swagrec list openapi.yaml
  swagrec list --format json https://example.com/openapi.json | jq '.[].path'
  cat openapi.yaml | swagrec list -`,
		Args: cobra.MaximumNArgs(1),
		RunE: runList,
	}

	flags := cmd.Flags()
	flags.String("format", FormatText, "Output format: text, json, or yaml")
	flags.StringArray("match", nil, "Only list endpoints matching a pattern such as \"GET /pets*\" (repeatable)")
	flags.Bool("strict-info", false, "Also require info.description")
	flags.String("user-agent", "", "User-Agent for URL requests")
	flags.Duration("timeout", 0, "Abort after this long (e.g. 30s)")
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd, args)
	if err != nil {
		return err
	}
	format := normalizeFormat(cfg.Format)
	if format == "" {
		format = FormatText
	}

	ctx, cancel := commandContext(cmd, cfg)
	defer cancel()
	parsed, err := loadSpec(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	list := extractor.ListEndpoints(parsed.Document)
	if len(cfg.Match) > 0 {
		list, err = filterEndpoints(parsed.Document, list, cfg.Match)
		if err != nil {
			return err
		}
	}

	if format != FormatText {
		if list == nil {
			list = []extractor.EndpointInfo{}
		}
		return OutputStructured(cmd.OutOrStdout(), list, format)
	}

	rows := make([]string, 0, len(list)+1)
	rows = append(rows, "METHOD | PATH | OPERATION | SUMMARY")
	for _, info := range list {
		op := info.OperationID
		if info.Deprecated {
			op += " (deprecated)"
		}
		rows = append(rows, fmt.Sprintf("%s | %s | %s | %s",
			strings.ToUpper(info.Method), info.Path, op, columnSafe(info.Summary)))
	}
	cliutil.Writef(cmd.OutOrStdout(), "%s\n", columnize.SimpleFormat(rows))
	return nil
}

// filterEndpoints keeps the entries of list selected by patterns.
func filterEndpoints(doc jsonvalue.Value, list []extractor.EndpointInfo, patterns []string) ([]extractor.EndpointInfo, error) {
	matched, err := extractor.MatchEndpoints(doc, patterns...)
	if err != nil {
		return nil, err
	}
	keep := set.From(matched)
	out := make([]extractor.EndpointInfo, 0, keep.Size())
	for _, info := range list {
		if keep.Contains(info.Endpoint()) {
			out = append(out, info)
		}
	}
	return out, nil
}

// columnSafe keeps a summary on one row and out of the column separator.
func columnSafe(s string) string {
	s = strings.ReplaceAll(s, "|", "/")
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	return s
}

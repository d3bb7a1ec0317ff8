package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erraggy/swagrec/internal/cliutil"
	"github.com/erraggy/swagrec/internal/config"
	"github.com/erraggy/swagrec/jsonvalue"
	"github.com/erraggy/swagrec/parser"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// commandContext bounds a command by cfg.Timeout, if set.
func commandContext(cmd *cobra.Command, cfg *config.Config) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout > 0 {
		return context.WithTimeout(ctx, cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

// loadSpec reads cfg.Spec from a file, URL or stdin.
func loadSpec(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (*parser.ParseResult, error) {
	if cfg.Spec == "" {
		return nil, fmt.Errorf("a file path, URL, or '-' for stdin is required")
	}

	opts := []parser.Option{
		parser.WithContext(ctx),
		parser.WithLogger(parserLogger(cmd)),
		parser.WithStrictInfo(cfg.StrictInfo),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, parser.WithUserAgent(cfg.UserAgent))
	}
	if cfg.Spec == StdinFilePath {
		opts = append(opts, parser.WithReader(cmd.InOrStdin()), parser.WithSourceName("stdin"))
	} else {
		opts = append(opts, parser.WithFilePath(cfg.Spec))
	}

	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", cfg.Spec, err)
	}
	return result, nil
}

// OutputStructured writes data as indented JSON or as YAML to w. Both
// formats use the JSON field names of data.
func OutputStructured(w io.Writer, data any, format string) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}
	v, err := jsonvalue.ParseJSON(raw)
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	var out []byte
	switch format {
	case FormatJSON:
		out, err = jsonvalue.MarshalIndent(v, "", "  ")
		out = append(out, '\n')
	case FormatYAML:
		out, err = jsonvalue.MarshalYAML(v)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}
	cliutil.Writef(w, "%s", out)
	return nil
}

// normalizeFormat lower-cases format and maps "yml" to "yaml".
func normalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "yml" {
		return FormatYAML
	}
	return format
}

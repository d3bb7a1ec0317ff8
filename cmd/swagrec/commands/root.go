// Package commands provides the cobra commands of the swagrec CLI.
package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/erraggy/swagrec"
	"github.com/erraggy/swagrec/internal/config"
	"github.com/erraggy/swagrec/parser"
)

// NewRootCmd builds the swagrec command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "swagrec",
		Short: "Extract a self-contained subset of an OpenAPI document",
		Long: `swagrec trims an OpenAPI 2.0 or 3.x document to a chosen set of endpoints,
keeping every schema those endpoints reference, directly or transitively.`,
		Version:       swagrec.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	config.BindGlobalFlags(root)
	root.AddCommand(
		newListCmd(),
		newExtractCmd(),
		newServeCmd(),
		newMCPCmd(),
		newVersionCmd(),
	)
	return root
}

// newLogger builds the CLI logger: text on stderr, debug level with --verbose.
func newLogger(cmd *cobra.Command) *slog.Logger {
	return newLoggerTo(cmd.ErrOrStderr(), verbose(cmd))
}

func newLoggerTo(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func verbose(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("verbose")
	return v
}

func parserLogger(cmd *cobra.Command) parser.Logger {
	return parser.NewSlogAdapter(newLogger(cmd))
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/erraggy/swagrec"
	"github.com/erraggy/swagrec/internal/cliutil"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cliutil.Writef(cmd.OutOrStdout(), "swagrec %s\n%s\n", swagrec.Version(), swagrec.BuildInfo())
		},
	}
}

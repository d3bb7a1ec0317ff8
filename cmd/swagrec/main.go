package main

import (
	"os"

	"github.com/erraggy/swagrec/cmd/swagrec/commands"
	"github.com/erraggy/swagrec/internal/cliutil"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		cliutil.Errorf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

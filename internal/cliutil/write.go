// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
	dimColor     = color.New(color.Faint)
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Errorf writes a bold red message. Colour is dropped when the output is not
// a terminal or NO_COLOR is set.
func Errorf(w io.Writer, format string, args ...any) {
	Writef(w, "%s", errorColor.Sprintf(format, args...))
}

// Warnf writes a yellow message.
func Warnf(w io.Writer, format string, args ...any) {
	Writef(w, "%s", warnColor.Sprintf(format, args...))
}

// Successf writes a green message.
func Successf(w io.Writer, format string, args ...any) {
	Writef(w, "%s", successColor.Sprintf(format, args...))
}

// Dimf writes a faint message for secondary details.
func Dimf(w io.Writer, format string, args ...any) {
	Writef(w, "%s", dimColor.Sprintf(format, args...))
}

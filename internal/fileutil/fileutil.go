// Package fileutil writes extracted documents to disk.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/swagrec/internal/pathutil"
)

// OwnerReadWrite is the file permission mode for spec output files
// containing potentially sensitive API data (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// OwnerDir is the permission mode for directories created for output files.
const OwnerDir os.FileMode = 0o750

// ErrOverwritesInput is returned when the output path is the input document.
var ErrOverwritesInput = errors.New("fileutil: output path is the input document")

// WriteSpec writes data to path and returns the path actually written.
//
// ext (".json" or ".yaml") is appended unless path already ends in a
// document extension. Missing parent directories are created. Symlinks are
// refused, and so is a path that resolves to inputPath.
func WriteSpec(path, ext string, data []byte, inputPath string) (string, error) {
	if path == "" {
		return "", errors.New("fileutil: output path is empty")
	}
	path = pathutil.EnsureExtension(path, ext, ".json", ".yaml", ".yml")

	abs, err := pathutil.SanitizeOutputPath(path)
	if err != nil {
		return "", err
	}
	if inputPath != "" {
		if in, err := filepath.Abs(filepath.Clean(inputPath)); err == nil && in == abs {
			return "", fmt.Errorf("%w: %s", ErrOverwritesInput, abs)
		}
	}

	if err := os.MkdirAll(filepath.Dir(abs), OwnerDir); err != nil {
		return "", fmt.Errorf("fileutil: failed to create directory: %w", err)
	}
	if err := os.WriteFile(abs, data, OwnerReadWrite); err != nil {
		return "", fmt.Errorf("fileutil: failed to write output: %w", err)
	}
	return abs, nil
}

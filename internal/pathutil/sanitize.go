package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SanitizeOutputPath validates and cleans an output file path.
// It resolves ".." components via filepath.Clean + filepath.Abs and
// rejects paths that resolve to symlinks. New files in existing
// directories are accepted. Returns the cleaned absolute path.
func SanitizeOutputPath(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot resolve absolute path: %w", err)
	}

	info, err := os.Lstat(abs)
	switch {
	case err == nil:
		if info.Mode()&os.ModeSymlink != 0 {
			return "", fmt.Errorf("pathutil: refusing to write to symlink: %s", abs)
		}
	case os.IsNotExist(err):
	default:
		return "", fmt.Errorf("pathutil: cannot stat path: %w", err)
	}

	return abs, nil
}

// EnsureExtension appends ext (".json", ".yaml") to path unless the path
// already ends in one of the accepted extensions. Comparison ignores case.
func EnsureExtension(path, ext string, accepted ...string) string {
	current := strings.ToLower(filepath.Ext(path))
	if current == strings.ToLower(ext) {
		return path
	}
	for _, a := range accepted {
		if current == strings.ToLower(a) {
			return path
		}
	}
	return path + ext
}

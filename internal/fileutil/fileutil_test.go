package fileutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSpec(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		ext  string
		want string
	}{
		{"adds json extension", filepath.Join(dir, "out"), ".json", filepath.Join(dir, "out.json")},
		{"adds yaml extension", filepath.Join(dir, "out"), ".yaml", filepath.Join(dir, "out.yaml")},
		{"keeps yml", filepath.Join(dir, "out.yml"), ".yaml", filepath.Join(dir, "out.yml")},
		{"keeps other document extension", filepath.Join(dir, "out.yaml"), ".json", filepath.Join(dir, "out.yaml")},
		{"creates parents", filepath.Join(dir, "a", "b", "api"), ".json", filepath.Join(dir, "a", "b", "api.json")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WriteSpec(tt.path, tt.ext, []byte("{}"), "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			data, err := os.ReadFile(got)
			require.NoError(t, err)
			assert.Equal(t, "{}", string(data))

			if runtime.GOOS != "windows" {
				info, err := os.Stat(got)
				require.NoError(t, err)
				assert.Equal(t, OwnerReadWrite, info.Mode().Perm())
			}
		})
	}
}

func TestWriteSpecRefusesInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "api.json")
	require.NoError(t, os.WriteFile(input, []byte("original"), OwnerReadWrite))

	_, err := WriteSpec(input, ".json", []byte("{}"), input)
	require.ErrorIs(t, err, ErrOverwritesInput)

	data, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}

func TestWriteSpecRefusesSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "target.json")
	link := filepath.Join(dir, "link.json")
	require.NoError(t, os.WriteFile(target, nil, OwnerReadWrite))
	require.NoError(t, os.Symlink(target, link))

	_, err := WriteSpec(link, ".json", []byte("{}"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symlink")
}

func TestWriteSpecEmptyPath(t *testing.T) {
	_, err := WriteSpec("", ".json", nil, "")
	assert.Error(t, err)
}

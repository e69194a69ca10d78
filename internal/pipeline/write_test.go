package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o600))

	require.NoError(t, WriteFileAtomic(path, []byte("new\n")))
	assert.Equal(t, "new\n", read(t, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "nope", "README.md"), []byte("x"))
	assert.Error(t, err)
}

func TestUnifiedDiff_NoChange(t *testing.T) {
	diff, err := UnifiedDiff("a.md", "same\n", "same\n")
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestIndentLines(t *testing.T) {
	assert.Equal(t, "a\n\nb\n", indentLines("a\n\nb\n", ""))
	assert.Equal(t, "  a\n\n  b\n", indentLines("a\n\nb\n", "  "))
	assert.Equal(t, "", indentLines("", "  "))
}

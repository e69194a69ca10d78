package crawler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("# doc\n"), 0o644))
}

func TestCrawler_FindDocs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "README.md"))
	writeFile(t, filepath.Join(root, "docs", "guide.MD"))
	writeFile(t, filepath.Join(root, "docs", "deep", "api.markdown"))
	writeFile(t, filepath.Join(root, "docs", "notes.txt"))
	writeFile(t, filepath.Join(root, "node_modules", "pkg", "README.md"))
	writeFile(t, filepath.Join(root, ".git", "info.md"))

	c := NewCrawler([]string{".md", "markdown"}, []string{".git", "node_modules"})

	t.Run("Walks directories", func(t *testing.T) {
		docs, err := c.FindDocs(root)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "README.md"),
			filepath.Join(root, "docs", "deep", "api.markdown"),
			filepath.Join(root, "docs", "guide.MD"),
		}, docs)
	})

	t.Run("Single file", func(t *testing.T) {
		path := filepath.Join(root, "README.md")
		docs, err := c.FindDocs(path)
		require.NoError(t, err)
		assert.Equal(t, []string{path}, docs)
	})

	t.Run("Single file with other extension", func(t *testing.T) {
		_, err := c.FindDocs(filepath.Join(root, "docs", "notes.txt"))
		assert.ErrorIs(t, err, ErrNotDocFile)
	})

	t.Run("Missing path", func(t *testing.T) {
		_, err := c.FindDocs(filepath.Join(root, "missing"))
		assert.ErrorIs(t, err, ErrPathNotFound)
	})

	t.Run("Ignored root is still walked", func(t *testing.T) {
		docs, err := c.FindDocs(filepath.Join(root, "node_modules"))
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})
}

func TestCrawler_NoDocFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "main.cpp"))

	_, err := NewCrawler(nil, nil).FindDocs(root)
	assert.ErrorIs(t, err, ErrNoDocFiles)
	assert.Contains(t, err.Error(), root)
}

package crawler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	ErrPathNotFound = errors.New("documentation path does not exist")
	ErrNotDocFile   = errors.New("not a documentation file")
	ErrNoDocFiles   = errors.New("no documentation files found")
)

// Crawler finds documentation files below a path.
type Crawler struct {
	extensions []string
	ignored    []string
}

// NewCrawler creates a new crawler instance. extensions are matched case
// insensitively; directories named in ignored are skipped.
func NewCrawler(extensions, ignored []string) *Crawler {
	if len(extensions) == 0 {
		extensions = []string{".md"}
	}
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return &Crawler{extensions: exts, ignored: ignored}
}

// IsDocFile reports whether path has a documentation extension.
func (c *Crawler) IsDocFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range c.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FindDocs returns the documentation files at path in lexical order. A file
// path must itself be a documentation file; a directory must contain at
// least one.
func (c *Crawler) FindDocs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !info.IsDir() {
		if !c.IsDocFile(path) {
			return nil, fmt.Errorf("%w: %s", ErrNotDocFile, path)
		}
		return []string{path}, nil
	}

	var docs []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories
		if d.IsDir() {
			if p != path && c.isIgnored(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() && c.IsDocFile(p) {
			docs = append(docs, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", path, err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDocFiles, path)
	}

	sort.Strings(docs)
	return docs, nil
}

func (c *Crawler) isIgnored(name string) bool {
	for _, ign := range c.ignored {
		if name == ign {
			return true
		}
	}
	return false
}

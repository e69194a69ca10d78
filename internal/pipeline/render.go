package pipeline

import (
	"fmt"
	"path"
	"strings"

	"docsnip/internal/content"
	"docsnip/internal/docs"
	"docsnip/internal/snippet"

	"go.uber.org/zap"
)

// contentKey normalizes a path taken from a documentation tag.
func contentKey(p string) string {
	return path.Clean(strings.ReplaceAll(p, "\\", "/"))
}

// RenderFile returns the text of f with every code block refilled from the
// content trees in store. Text outside code blocks is copied unchanged.
func RenderFile(f *docs.File, store *content.Store, logger *zap.Logger) (string, error) {
	var b strings.Builder
	for _, seg := range f.Segments {
		switch seg := seg.(type) {
		case docs.Literal:
			b.WriteString(seg.Text)
		case *docs.Reference:
			body, err := renderReference(f.Path, seg, store, logger)
			if err != nil {
				return "", err
			}
			b.WriteString(seg.Tag)
			b.WriteString(seg.Open)
			b.WriteString(indentLines(body, seg.Indent))
			b.WriteString(seg.Close)
		default:
			return "", fmt.Errorf("unsupported segment type %T", seg)
		}
	}
	return b.String(), nil
}

func renderReference(doc string, ref *docs.Reference, store *content.Store, logger *zap.Logger) (string, error) {
	refErr := func(region string, err error) error {
		return &ReferenceError{Doc: doc, Line: ref.Line, Path: ref.Path, Region: region, Err: err}
	}

	tree, ok := store.Get(contentKey(ref.Path))
	if !ok {
		return "", refErr("", ErrContentFileNotFound)
	}
	regions := make(map[string]*content.Region)
	for _, name := range ref.Spec.Names() {
		r, ok := tree.Lookup(name)
		if !ok {
			return "", refErr(name, ErrRegionNotFound)
		}
		regions[name] = r
	}

	switch spec := ref.Spec.(type) {
	case snippet.WholeFile:
		return tree.RenderWholeFile(), nil
	case snippet.SingleRegion:
		return tree.RenderRegion(regions[spec.Name]), nil
	case snippet.ElidedRegion:
		main := regions[spec.Main]
		for _, name := range spec.Keep {
			if !main.Contains(regions[name]) {
				logger.Warn("Kept region is not nested in the main region",
					zap.String("doc", doc),
					zap.Int("line", ref.Line),
					zap.String("path", ref.Path),
					zap.String("main", spec.Main),
					zap.String("region", name))
			}
		}
		return tree.RenderElided(main, spec.Keep), nil
	default:
		return "", fmt.Errorf("unsupported snippet spec %T", spec)
	}
}

// indentLines prefixes every non-blank line of text with indent.
func indentLines(text, indent string) string {
	if indent == "" {
		return text
	}
	var b strings.Builder
	for _, line := range content.SplitLines(text) {
		if strings.TrimSpace(line) != "" {
			b.WriteString(indent)
		}
		b.WriteString(line)
	}
	return b.String()
}

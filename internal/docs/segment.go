// Package docs splits documentation files into literal text and references
// to regions of content files.
package docs

import (
	"errors"
	"strings"

	"docsnip/internal/snippet"
)

// Segment is either a Literal or a *Reference.
type Segment interface {
	isSegment()
}

// Literal is documentation text copied through unchanged.
type Literal struct {
	Text string
}

// Reference is a marker line plus the fenced code block it owns. Tag, Open,
// Body and Close hold the original lines verbatim, line breaks included.
type Reference struct {
	Line   int    // 1-based line of the marker
	Indent string // leading whitespace of the opening fence
	Path   string
	Spec   snippet.Spec

	Tag   string
	Open  string
	Body  string
	Close string
}

func (Literal) isSegment()    {}
func (*Reference) isSegment() {}

// File is a documentation file split into segments in line order.
type File struct {
	Path     string
	Segments []Segment
}

// References returns the reference segments of f.
func (f *File) References() []*Reference {
	var refs []*Reference
	for _, s := range f.Segments {
		if ref, ok := s.(*Reference); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// String reassembles the original text.
func (f *File) String() string {
	var b strings.Builder
	for _, s := range f.Segments {
		switch s := s.(type) {
		case Literal:
			b.WriteString(s.Text)
		case *Reference:
			b.WriteString(s.Tag)
			b.WriteString(s.Open)
			b.WriteString(s.Body)
			b.WriteString(s.Close)
		}
	}
	return b.String()
}

// Parse splits text into segments. marker is the project marker expected
// as the first attribute of every documentation tag.
func Parse(path, text, marker string) (*File, error) {
	lines := splitLines(text)
	f := &File{Path: path}

	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			f.Segments = append(f.Segments, Literal{Text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(lines); i++ {
		tag, ok, err := ParseTag(trimEOL(lines[i]), marker)
		if err != nil {
			return nil, tagError(path, lines, i, err)
		}
		if !ok {
			lit.WriteString(lines[i])
			continue
		}

		if i+1 >= len(lines) {
			return nil, tagError(path, lines, i, ErrMissingCodeBlock)
		}
		open, err := parseFenceOpen(lines[i+1])
		if err != nil {
			if errors.Is(err, ErrMissingCodeBlock) {
				return nil, tagError(path, lines, i, err)
			}
			return nil, tagError(path, lines, i+1, err)
		}
		end, err := findFenceClose(lines, i+2, open)
		if err != nil {
			if end < 0 {
				return nil, tagError(path, lines, i, err)
			}
			return nil, tagError(path, lines, end, err)
		}

		flush()
		f.Segments = append(f.Segments, &Reference{
			Line:   i + 1,
			Indent: open.indent,
			Path:   tag.Path,
			Spec:   tag.Spec,
			Tag:    lines[i],
			Open:   lines[i+1],
			Body:   strings.Join(lines[i+2:end], ""),
			Close:  lines[end],
		})
		i = end
	}
	flush()

	return f, nil
}

func tagError(path string, lines []string, i int, err error) error {
	return &TagError{Path: path, Line: i + 1, Text: trimEOL(lines[i]), Err: err}
}

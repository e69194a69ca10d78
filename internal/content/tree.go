// Package content parses source files into trees of named regions and
// renders regions for documentation code blocks.
package content

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Region is a named span of lines delimited by two tag lines.
// Begin and End are the line indices of the opening and closing tag lines.
// The root region of a tree has Begin -1 and End len(lines), so its body
// is the whole file.
type Region struct {
	Name        string
	Indent      string
	Begin       int
	End         int
	Children    []*Region
	Placeholder string
}

// Body returns the half-open line range between the two tag lines.
func (r *Region) Body() (int, int) {
	return r.Begin + 1, r.End
}

// Contains reports whether o is nested, at any depth, inside r.
func (r *Region) Contains(o *Region) bool {
	return o != r && o.Begin > r.Begin && o.End < r.End
}

// Tree is the parsed, immutable form of one content file.
type Tree struct {
	Path  string
	Lines []string // newline preserving
	Root  *Region

	regions map[string]*Region
	markers []bool
}

// Lookup returns the region called name.
func (t *Tree) Lookup(name string) (*Region, bool) {
	r, ok := t.regions[name]
	return r, ok
}

// Regions returns every named region in order of appearance.
func (t *Tree) Regions() []*Region {
	var out []*Region
	var walk func(r *Region)
	walk = func(r *Region) {
		for _, c := range r.Children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(t.Root)
	return out
}

// IsMarker reports whether line i is a tag line.
func (t *Tree) IsMarker(i int) bool {
	return i >= 0 && i < len(t.markers) && t.markers[i]
}

// Parser builds region trees from source files.
type Parser struct {
	langs    *Languages
	ellipsis string

	// VerifyComments accepts a tag line only when a tree-sitter grammar
	// places it inside a comment. Off by default: regions are line based.
	VerifyComments bool
}

// NewParser creates a parser. Placeholder lines read
// "<indent><line comment> <ellipsis>".
func NewParser(langs *Languages, ellipsis string) *Parser {
	if langs == nil {
		langs = NewLanguages()
	}
	if ellipsis == "" {
		ellipsis = "..."
	}
	return &Parser{langs: langs, ellipsis: ellipsis}
}

// ParseFile reads the file at absPath; name is used in the tree and in errors.
func (p *Parser) ParseFile(ctx context.Context, absPath, name string) (*Tree, error) {
	src, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", absPath, err)
	}
	return p.Parse(ctx, name, src)
}

// Parse builds the region tree of src. The language is chosen by the
// extension of path.
func (p *Parser) Parse(ctx context.Context, path string, src []byte) (*Tree, error) {
	lang := p.langs.ForPath(path)

	var comments []bool
	if p.VerifyComments && lang.HasGrammar() {
		rows, err := lang.CommentRows(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comments of %s: %w", path, err)
		}
		comments = rows
	}

	lines := SplitLines(string(src))
	s := &parseState{
		tree: &Tree{
			Path:    path,
			Lines:   lines,
			regions: make(map[string]*Region),
			markers: make([]bool, len(lines)),
		},
		matcher:  NewTagMatcher(lang.TagMarkers...),
		comments: comments,
		comment:  lang.LineComment,
		ellipsis: p.ellipsis,
	}

	root, err := s.parseRegion("", "", -1)
	if err != nil {
		return nil, err
	}
	s.tree.Root = root
	return s.tree, nil
}

type parseState struct {
	tree     *Tree
	matcher  *TagMatcher
	comments []bool
	comment  string
	ellipsis string
	pos      int
}

// parseRegion consumes lines up to and including the tag that closes the
// region opened at line begin. The root is opened at -1 and closed by EOF.
func (s *parseState) parseRegion(name, indent string, begin int) (*Region, error) {
	eol := "\n"
	if begin >= 0 && strings.HasSuffix(s.tree.Lines[begin], "\r\n") {
		eol = "\r\n"
	}
	r := &Region{
		Name:        name,
		Indent:      indent,
		Begin:       begin,
		Placeholder: indent + s.comment + " " + s.ellipsis + eol,
	}

	for s.pos < len(s.tree.Lines) {
		i := s.pos
		s.pos++

		tag, ok, err := s.tagAt(i)
		if err != nil {
			return nil, &RegionError{Path: s.tree.Path, Line: i + 1, Err: err}
		}
		if !ok {
			continue
		}
		s.tree.markers[i] = true

		if tag.Name == r.Name {
			r.End = i
			return r, nil
		}

		child, err := s.parseRegion(tag.Name, tag.Indent, i)
		if err != nil {
			return nil, err
		}
		if prev, dup := s.tree.regions[child.Name]; dup {
			return nil, &RegionError{
				Path: s.tree.Path,
				Line: child.Begin + 1,
				Name: child.Name,
				Err:  fmt.Errorf("%w (first opened at line %d)", ErrDuplicateRegionName, prev.Begin+1),
			}
		}
		s.tree.regions[child.Name] = child
		r.Children = append(r.Children, child)
	}

	if begin < 0 {
		r.End = len(s.tree.Lines)
		return r, nil
	}
	return nil, &RegionError{Path: s.tree.Path, Line: begin + 1, Name: name, Err: ErrUnterminatedRegion}
}

func (s *parseState) tagAt(i int) (TagLine, bool, error) {
	tag, ok, err := s.matcher.Match(s.tree.Lines[i])
	if !ok {
		return tag, false, nil
	}
	if s.comments != nil && (i >= len(s.comments) || !s.comments[i]) {
		return TagLine{}, false, nil
	}
	return tag, true, err
}

// SplitLines splits text after every newline; the last line keeps no
// newline if the text does not end with one.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

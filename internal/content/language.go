package content

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language describes the comment syntax of a family of content files.
type Language struct {
	Name        string
	Extensions  []string // lower case, with leading dot
	LineComment string   // used to build placeholder lines
	TagMarkers  []string // comment markers that may introduce a tag line

	grammar *sitter.Language
}

// HasGrammar reports whether tag lines of this language can be checked
// against a syntax tree.
func (l *Language) HasGrammar() bool {
	return l.grammar != nil
}

// CommentRows parses src and reports, per line, whether the line lies
// inside a comment node. It returns nil when the language has no grammar.
func (l *Language) CommentRows(ctx context.Context, src []byte) ([]bool, error) {
	if l.grammar == nil {
		return nil, nil
	}

	parser := sitter.NewParser()
	parser.SetLanguage(l.grammar)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s source: %w", l.Name, err)
	}

	rows := make([]bool, bytes.Count(src, []byte("\n"))+1)
	markComments(tree.RootNode(), rows)
	return rows, nil
}

func markComments(n *sitter.Node, rows []bool) {
	if n == nil {
		return
	}
	if strings.Contains(n.Type(), "comment") {
		first := int(n.StartPoint().Row)
		last := int(n.EndPoint().Row)
		// Some grammars include the trailing newline in line comments.
		if last > first && n.EndPoint().Column == 0 {
			last--
		}
		for r := first; r <= last && r < len(rows); r++ {
			rows[r] = true
		}
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		markComments(n.Child(i), rows)
	}
}

// DefaultLanguages returns the built-in language table.
func DefaultLanguages() []*Language {
	return []*Language{
		{Name: "go", Extensions: []string{".go"}, LineComment: "//", TagMarkers: []string{"//"}, grammar: golang.GetLanguage()},
		{Name: "c", Extensions: []string{".c", ".h"}, LineComment: "//", TagMarkers: []string{"//!", "//"}, grammar: c.GetLanguage()},
		{Name: "cpp", Extensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx"}, LineComment: "//", TagMarkers: []string{"//!", "//"}, grammar: cpp.GetLanguage()},
		{Name: "rust", Extensions: []string{".rs"}, LineComment: "//", TagMarkers: []string{"//!", "///", "//"}, grammar: rust.GetLanguage()},
		{Name: "javascript", Extensions: []string{".js", ".mjs", ".cjs", ".jsx"}, LineComment: "//", TagMarkers: []string{"//"}, grammar: javascript.GetLanguage()},
		{Name: "typescript", Extensions: []string{".ts", ".mts", ".cts"}, LineComment: "//", TagMarkers: []string{"//"}, grammar: typescript.GetLanguage()},
		{Name: "java", Extensions: []string{".java"}, LineComment: "//", TagMarkers: []string{"//"}, grammar: java.GetLanguage()},
		{Name: "python", Extensions: []string{".py"}, LineComment: "#", TagMarkers: []string{"#"}, grammar: python.GetLanguage()},
		{Name: "bash", Extensions: []string{".sh", ".bash"}, LineComment: "#", TagMarkers: []string{"#"}, grammar: bash.GetLanguage()},
		{Name: "yaml", Extensions: []string{".yaml", ".yml", ".toml"}, LineComment: "#", TagMarkers: []string{"#"}},
		{Name: "sql", Extensions: []string{".sql", ".lua"}, LineComment: "--", TagMarkers: []string{"--"}},
	}
}

// Languages maps file extensions to languages.
type Languages struct {
	byName   map[string]*Language
	byExt    map[string]*Language
	fallback *Language
}

// NewLanguages creates a table from the built-in languages plus extra.
// Entries in extra take precedence; an entry named like a built-in language
// keeps that language's grammar.
func NewLanguages(extra ...*Language) *Languages {
	l := &Languages{
		byName:   make(map[string]*Language),
		byExt:    make(map[string]*Language),
		fallback: &Language{Name: "default", LineComment: "//", TagMarkers: []string{"//"}},
	}
	for _, lang := range DefaultLanguages() {
		l.Register(lang)
	}
	for _, lang := range extra {
		l.Register(lang)
	}
	return l
}

// Register adds lang, replacing previous owners of its extensions.
func (l *Languages) Register(lang *Language) {
	if prev, ok := l.byName[lang.Name]; ok && lang.grammar == nil {
		lang.grammar = prev.grammar
	}
	if lang.LineComment == "" && len(lang.TagMarkers) > 0 {
		lang.LineComment = lang.TagMarkers[len(lang.TagMarkers)-1]
	}
	if len(lang.TagMarkers) == 0 && lang.LineComment != "" {
		lang.TagMarkers = []string{lang.LineComment}
	}
	l.byName[lang.Name] = lang
	for _, ext := range lang.Extensions {
		l.byExt[normalizeExt(ext)] = lang
	}
}

// ForPath returns the language of path, falling back to "//" comments.
func (l *Languages) ForPath(path string) *Language {
	if lang, ok := l.byExt[normalizeExt(filepath.Ext(path))]; ok {
		return lang
	}
	return l.fallback
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

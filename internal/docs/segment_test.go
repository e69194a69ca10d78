package docs

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docsnip/internal/snippet"
)

func TestParseFenceOpen(t *testing.T) {
	valid := []struct {
		line string
		want fence
	}{
		{"```\n", fence{run: "```"}},
		{"````", fence{run: "````"}},
		{" ```", fence{indent: " ", run: "```"}},
		{"```cpp\n", fence{run: "```", lang: "cpp"}},
		{"~~~ c++ ", fence{run: "~~~", lang: "c++"}},
		{"    ```objective-c\r\n", fence{indent: "    ", run: "```", lang: "objective-c"}},
	}
	for _, tc := range valid {
		got, err := parseFenceOpen(tc.line)
		require.NoError(t, err, tc.line)
		assert.Equal(t, tc.want, got, tc.line)
	}

	invalid := map[string]error{
		"":          ErrMissingCodeBlock,
		"\n":        ErrMissingCodeBlock,
		"int x;":    ErrMissingCodeBlock,
		"` ``":      ErrInvalidFence,
		"``":        ErrInvalidFence,
		"``` ``":    ErrInvalidLanguage,
		"```cpp rs": ErrFenceRemainder,
		"```c{1,2}": ErrInvalidLanguage,
	}
	for line, want := range invalid {
		_, err := parseFenceOpen(line)
		assert.ErrorIs(t, err, want, line)
	}
}

func TestFindFenceClose(t *testing.T) {
	t.Run("Exact match", func(t *testing.T) {
		i, err := findFenceClose([]string{"a\n", "````\n"}, 0, fence{run: "````"})
		require.NoError(t, err)
		assert.Equal(t, 1, i)
	})

	t.Run("First closing fence wins", func(t *testing.T) {
		i, err := findFenceClose([]string{"```\n", "````\n"}, 0, fence{run: "```"})
		require.NoError(t, err)
		assert.Equal(t, 0, i)
	})

	t.Run("Shorter runs are content", func(t *testing.T) {
		i, err := findFenceClose([]string{"```\n", "  ````  \n"}, 0, fence{run: "````"})
		require.NoError(t, err)
		assert.Equal(t, 1, i)
	})

	t.Run("Mismatch", func(t *testing.T) {
		for _, line := range []string{"````", "```` ```", "```cpp"} {
			i, err := findFenceClose([]string{"x\n", line}, 0, fence{run: "```"})
			assert.ErrorIs(t, err, ErrFenceMismatch, line)
			assert.Equal(t, 1, i, line)
		}
	})

	t.Run("Unterminated", func(t *testing.T) {
		i, err := findFenceClose([]string{"a```\n", "~~~\n"}, 0, fence{run: "```"})
		assert.ErrorIs(t, err, ErrUnterminatedCodeBlock)
		assert.Equal(t, -1, i)
	})
}

func TestSplitLines(t *testing.T) {
	assert.Empty(t, splitLines(""))
	assert.Equal(t, []string{"a\n", "b"}, splitLines("a\nb"))
	assert.Equal(t, []string{"a\r\n", "\n"}, splitLines("a\r\n\n"))
	assert.Equal(t, strings.Join(splitLines("x\n\ny"), ""), "x\n\ny")
}

func TestParse_LiteralRoundTrip(t *testing.T) {
	texts := []string{
		"",
		"\n",
		"# Title\n\nSome text.\n",
		"no trailing newline",
		"```\ncode without tag\n```\n",
		"<!-- a comment -->\n<!-- [other] [x.cpp] -->\n```\n```\n",
		"crlf\r\nlines\r\n",
	}
	for _, text := range texts {
		f, err := Parse("README.md", text, "proj")
		require.NoError(t, err, text)
		assert.Empty(t, f.References(), text)
		assert.Equal(t, text, f.String(), text)
		if text != "" {
			assert.Equal(t, []Segment{Literal{Text: text}}, f.Segments, text)
		}
	}
}

func TestParse_Segments(t *testing.T) {
	text := strings.Join([]string{
		"# Example",
		"",
		"<!-- [proj] [foo.cpp] [bar] -->",
		"```cpp",
		"stale",
		"<!-- [proj] [inside.cpp] -->",
		"```",
		"Between.",
		"1. Step",
		"   <!-- [proj] [src/main.cpp] [[main] [count]] -->",
		"   ````",
		"   ````",
		"End.",
		"",
	}, "\n")

	f, err := Parse("docs/guide.md", text, "proj")
	require.NoError(t, err)

	want := []Segment{
		Literal{Text: "# Example\n\n"},
		&Reference{
			Line:  3,
			Path:  "foo.cpp",
			Spec:  snippet.SingleRegion{Name: "bar"},
			Tag:   "<!-- [proj] [foo.cpp] [bar] -->\n",
			Open:  "```cpp\n",
			Body:  "stale\n<!-- [proj] [inside.cpp] -->\n",
			Close: "```\n",
		},
		Literal{Text: "Between.\n1. Step\n"},
		&Reference{
			Line:   10,
			Indent: "   ",
			Path:   "src/main.cpp",
			Spec:   snippet.ElidedRegion{Main: "main", Keep: []string{"count"}},
			Tag:    "   <!-- [proj] [src/main.cpp] [[main] [count]] -->\n",
			Open:   "   ````\n",
			Close:  "   ````\n",
		},
		Literal{Text: "End.\n"},
	}
	if diff := cmp.Diff(want, f.Segments); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, f.References(), 2)
	assert.Equal(t, text, f.String())
}

func TestParse_ClosingFenceAtEOF(t *testing.T) {
	text := "<!-- [proj] [foo.cpp] -->\n```\n```"
	f, err := Parse("a.md", text, "proj")
	require.NoError(t, err)
	require.Len(t, f.Segments, 1)
	assert.Equal(t, "```", f.References()[0].Close)
	assert.Equal(t, text, f.String())
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		text string
		line int
		want error
	}{
		{"Tag at end of file", "x\n<!-- [proj] [foo.cpp] -->\n", 2, ErrMissingCodeBlock},
		{"Blank line before fence", "<!-- [proj] [foo.cpp] -->\n\n```\n```\n", 1, ErrMissingCodeBlock},
		{"Short fence", "<!-- [proj] [foo.cpp] -->\n``\n``\n", 2, ErrInvalidFence},
		{"Unterminated", "<!-- [proj] [foo.cpp] -->\n```\nint x;\n", 1, ErrUnterminatedCodeBlock},
		{"Longer closing fence", "<!-- [proj] [foo.cpp] -->\n```\n````\n", 3, ErrFenceMismatch},
		{"Malformed tag", "a\nb\n<!-- [proj] [foo.cpp] [bar -->\n```\n```\n", 3, ErrInvalidSnippet},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse("doc.md", tc.text, "proj")
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)

			var terr *TagError
			require.ErrorAs(t, err, &terr)
			assert.Equal(t, "doc.md", terr.Path)
			assert.Equal(t, tc.line, terr.Line)
		})
	}
}

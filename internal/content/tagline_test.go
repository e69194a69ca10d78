package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagMatcher_Match(t *testing.T) {
	m := NewTagMatcher("//", "//!")

	valid := []struct {
		line   string
		indent string
		name   string
	}{
		{"// [bar]\n", "", "bar"},
		{"// [bar]", "", "bar"},
		{"//[bar]\n", "", "bar"},
		{"//! [includes]\n", "", "includes"},
		{"    // [inner]\n", "    ", "inner"},
		{"\t// [inner]\r\n", "\t", "inner"},
		{"// [ spaced name ]  \n", "", "spaced name"},
	}
	for _, tc := range valid {
		tag, ok, err := m.Match(tc.line)
		require.NoError(t, err, tc.line)
		require.True(t, ok, tc.line)
		assert.Equal(t, tc.indent, tag.Indent, tc.line)
		assert.Equal(t, tc.name, tag.Name, tc.line)
	}

	invalid := []string{
		"int x;\n",
		"// bar\n",
		"x = 1 // [bar]\n",
		"// [bar] trailing\n",
		"// [a]b]\n",
		"// [[a]]\n",
		"# [bar]\n",
		"\n",
	}
	for _, line := range invalid {
		_, ok, err := m.Match(line)
		assert.NoError(t, err, line)
		assert.False(t, ok, line)
	}
}

func TestTagMatcher_EmptyName(t *testing.T) {
	m := NewTagMatcher("#")

	for _, line := range []string{"# []\n", "  #[  ]\n"} {
		_, ok, err := m.Match(line)
		assert.True(t, ok, line)
		assert.ErrorIs(t, err, ErrEmptyRegionName, line)
	}
}

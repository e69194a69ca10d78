package content

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguages_ForPath(t *testing.T) {
	langs := NewLanguages()

	assert.Equal(t, "cpp", langs.ForPath("src/main.CPP").Name)
	assert.Equal(t, "go", langs.ForPath("internal/x.go").Name)
	assert.Equal(t, "python", langs.ForPath("tool.py").Name)
	assert.Equal(t, "default", langs.ForPath("Makefile").Name)
	assert.Equal(t, []string{"//"}, langs.ForPath("notes.unknown").TagMarkers)
}

func TestLanguages_Register(t *testing.T) {
	langs := NewLanguages(
		&Language{Name: "cpp", Extensions: []string{"ipp"}, TagMarkers: []string{"///"}},
		&Language{Name: "haskell", Extensions: []string{".hs"}, LineComment: "--"},
	)

	cpp := langs.ForPath("detail.ipp")
	assert.Equal(t, "cpp", cpp.Name)
	assert.True(t, cpp.HasGrammar())
	assert.Equal(t, "///", cpp.LineComment)

	hs := langs.ForPath("Main.hs")
	assert.False(t, hs.HasGrammar())
	assert.Equal(t, []string{"--"}, hs.TagMarkers)
}

func TestLanguage_CommentRows(t *testing.T) {
	src := []byte("package x\n\n// one\nvar s = \"// two\"\n/* three\nfour */\n")

	rows, err := NewLanguages().ForPath("x.go").CommentRows(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, true, false, true, true, false}, rows)

	rows, err = NewLanguages().ForPath("x.sql").CommentRows(context.Background(), src)
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestStore_ConcurrentPut(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Put(fmt.Sprintf("file%d.go", i), &Tree{Path: fmt.Sprintf("file%d.go", i)})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 32, s.Len())
	tree, ok := s.Get("file7.go")
	require.True(t, ok)
	assert.Equal(t, "file7.go", tree.Path)

	_, ok = s.Get("missing.go")
	assert.False(t, ok)
}

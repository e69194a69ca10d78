// Package snippet describes which part of a content file a documentation
// code block shows.
package snippet

import (
	"fmt"
	"strings"
)

// Spec is one of WholeFile, SingleRegion or ElidedRegion.
// Consumers switch over the concrete types; the set is closed.
type Spec interface {
	// Names returns every region name the spec refers to, main name first.
	Names() []string
	String() string
	isSpec()
}

// WholeFile selects every line of the content file.
type WholeFile struct{}

// SingleRegion selects the body of one named region.
type SingleRegion struct {
	Name string
}

// ElidedRegion selects the body of Main, collapsing every nested region
// that is neither listed in Keep nor contains a listed region.
type ElidedRegion struct {
	Main string
	Keep []string
}

func (WholeFile) isSpec()    {}
func (SingleRegion) isSpec() {}
func (ElidedRegion) isSpec() {}

func (WholeFile) Names() []string { return nil }

func (s SingleRegion) Names() []string { return []string{s.Name} }

func (s ElidedRegion) Names() []string {
	names := make([]string, 0, len(s.Keep)+1)
	names = append(names, s.Main)
	return append(names, s.Keep...)
}

func (WholeFile) String() string { return "" }

func (s SingleRegion) String() string { return fmt.Sprintf("[%s]", s.Name) }

func (s ElidedRegion) String() string {
	var b strings.Builder
	b.WriteString("[[")
	b.WriteString(s.Main)
	b.WriteString("]")
	for _, k := range s.Keep {
		b.WriteString("[")
		b.WriteString(k)
		b.WriteString("]")
	}
	b.WriteString("]")
	return b.String()
}

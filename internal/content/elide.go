package content

import (
	"sort"
	"strings"
)

type lineKind uint8

const (
	lineKeep lineKind = iota
	lineMarker
	lineElided
	lineDropped
)

// RenderWholeFile returns every line of the file except tag lines.
func (t *Tree) RenderWholeFile() string {
	return t.render(t.Root, t.classify(t.Root, nil))
}

// RenderRegion returns the body of r without tag lines, with r's
// indentation removed once from every line.
func (t *Tree) RenderRegion(r *Region) string {
	return t.render(r, t.classify(r, nil))
}

// RenderElided renders r like RenderRegion, but replaces every nested
// region that is not kept by one placeholder line. A region is kept when
// its name is r's name or in keep, or when any region nested in it is kept.
// Blank lines next to a collapsed region are dropped.
func (t *Tree) RenderElided(r *Region, keep []string) string {
	names := make(map[string]bool, len(keep)+1)
	names[r.Name] = true
	for _, k := range keep {
		names[k] = true
	}

	var spans []*Region
	collapse(r, names, &spans)
	sort.Slice(spans, func(i, j int) bool { return spans[i].Begin < spans[j].Begin })

	return t.render(r, t.classify(r, spans))
}

// collapse reports whether r is kept and collects the direct children of
// kept regions that are not kept themselves.
func collapse(r *Region, keep map[string]bool, spans *[]*Region) bool {
	kept := keep[r.Name]
	childKept := make([]bool, len(r.Children))
	for i, c := range r.Children {
		childKept[i] = collapse(c, keep, spans)
		kept = kept || childKept[i]
	}
	if kept {
		for i, c := range r.Children {
			if !childKept[i] {
				*spans = append(*spans, c)
			}
		}
	}
	return kept
}

type lineState struct {
	kind  lineKind
	owner *Region // collapsed region for lineElided
}

// classify labels every body line of r. spans must be sorted and disjoint.
func (t *Tree) classify(r *Region, spans []*Region) []lineState {
	lo, hi := r.Body()
	states := make([]lineState, hi-lo)

	for i := range states {
		if t.IsMarker(lo + i) {
			states[i].kind = lineMarker
		}
	}
	for _, sp := range spans {
		for i := sp.Begin; i <= sp.End; i++ {
			states[i-lo] = lineState{kind: lineElided, owner: sp}
		}
	}
	if len(spans) == 0 {
		return states
	}

	// Drop each run of blank lines that touches a collapsed region.
	for i := 0; i < len(states); {
		if !t.isBlankKept(states, lo, i) {
			i++
			continue
		}
		j := i
		for j < len(states) && t.isBlankKept(states, lo, j) {
			j++
		}
		before := i > 0 && states[i-1].kind == lineElided
		after := j < len(states) && states[j].kind == lineElided
		if before || after {
			for k := i; k < j; k++ {
				states[k].kind = lineDropped
			}
		}
		i = j
	}
	return states
}

func (t *Tree) isBlankKept(states []lineState, lo, i int) bool {
	return states[i].kind == lineKeep && strings.TrimSpace(t.Lines[lo+i]) == ""
}

func (t *Tree) render(r *Region, states []lineState) string {
	lo, _ := r.Body()

	var b strings.Builder
	// last placeholder written since the last kept line
	last := ""
	for i, st := range states {
		switch st.kind {
		case lineMarker, lineDropped:
			continue
		case lineElided:
			p := strings.TrimPrefix(st.owner.Placeholder, r.Indent)
			if p == last {
				continue
			}
			b.WriteString(p)
			last = p
		default:
			b.WriteString(strings.TrimPrefix(t.Lines[lo+i], r.Indent))
			last = ""
		}
	}

	out := b.String()
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

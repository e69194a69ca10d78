package content

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// TagLine is a line that opens or closes a region.
type TagLine struct {
	Indent string
	Name   string
}

// TagMatcher recognizes "<indent><marker> [<name>]" lines.
type TagMatcher struct {
	re *regexp.Regexp
}

// NewTagMatcher builds a matcher for the given comment markers.
func NewTagMatcher(markers ...string) *TagMatcher {
	sorted := append([]string(nil), markers...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	quoted := make([]string, 0, len(sorted))
	for _, m := range sorted {
		quoted = append(quoted, regexp.QuoteMeta(m))
	}
	pattern := fmt.Sprintf(`^([ \t]*)(?:%s)[ \t]*\[([^\[\]]*)\][ \t]*\r?\n?$`, strings.Join(quoted, "|"))
	return &TagMatcher{re: regexp.MustCompile(pattern)}
}

// Match reports whether line is a tag line. A tag line with a blank name
// is matched but yields ErrEmptyRegionName.
func (m *TagMatcher) Match(line string) (TagLine, bool, error) {
	caps := m.re.FindStringSubmatch(line)
	if caps == nil {
		return TagLine{}, false, nil
	}
	tag := TagLine{Indent: caps[1], Name: strings.TrimSpace(caps[2])}
	if tag.Name == "" {
		return tag, true, ErrEmptyRegionName
	}
	return tag, true, nil
}

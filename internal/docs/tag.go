package docs

import (
	"fmt"
	"strings"

	"docsnip/internal/snippet"
)

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	blanks       = " \t"
)

// Tag is a parsed documentation marker:
//
//	<!-- [marker] [path] [spec] -->
type Tag struct {
	Indent string
	Path   string
	Spec   snippet.Spec
}

// ParseTag parses one documentation line without its line break. ok is
// false when the line is not a marker comment for this project; such lines
// are plain text. Once the project marker is recognized, any deviation from
// the grammar is an error.
func ParseTag(line, marker string) (Tag, bool, error) {
	rest := strings.TrimLeft(line, blanks)
	indent := line[:len(line)-len(rest)]

	if !strings.HasPrefix(rest, commentOpen) {
		return Tag{}, false, nil
	}
	body := strings.TrimLeft(rest[len(commentOpen):], blanks)
	head := "[" + marker + "]"
	if !strings.HasPrefix(body, head) {
		return Tag{}, false, nil
	}
	body = body[len(head):]

	end := strings.Index(body, commentClose)
	if end < 0 {
		return Tag{}, true, ErrUnclosedComment
	}
	if tail := strings.TrimSpace(body[end+len(commentClose):]); tail != "" {
		return Tag{}, true, fmt.Errorf("%w: '%s'", ErrTagRemainder, tail)
	}

	path, data, err := parseAttribute(body[:end])
	if err != nil {
		return Tag{}, true, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}
	spec, err := parseSnippetSpec(data)
	if err != nil {
		return Tag{}, true, err
	}
	return Tag{Indent: indent, Path: path, Spec: spec}, true, nil
}

// parseAttribute reads one "[value]" group after optional blanks and
// returns the trimmed value and the remaining input.
func parseAttribute(s string) (string, string, error) {
	s = strings.TrimLeft(s, blanks)
	if s == "" || s[0] != '[' {
		return "", "", &AttributeError{Attribute: s, Err: ErrNotAnAttribute}
	}

	j := strings.IndexAny(s[1:], "[]")
	if j < 0 {
		return "", "", &AttributeError{Attribute: s, Err: ErrUnmatchedBracket}
	}
	j++
	if s[j] == '[' {
		return "", "", &AttributeError{Attribute: s, Err: ErrInvalidCharacter}
	}

	value := strings.TrimSpace(s[1:j])
	if value == "" {
		return "", "", &AttributeError{Attribute: s[:j+1], Err: ErrEmptyAttribute}
	}
	return value, s[j+1:], nil
}

// parseSnippetSpec reads what follows the path attribute:
//
//	(nothing)              whole file
//	[name]                 single region
//	[[main] [sub] ...]     main region with only the named sub-regions kept
func parseSnippetSpec(s string) (snippet.Spec, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return snippet.WholeFile{}, nil
	}

	if s[0] == '[' {
		if inner := strings.TrimLeft(s[1:], blanks); inner != "" && inner[0] == '[' {
			return parseElided(inner)
		}
	}

	name, rest, err := parseAttribute(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnippet, err)
	}
	if tail := strings.TrimSpace(rest); tail != "" {
		return nil, fmt.Errorf("%w: '%s'", ErrTagRemainder, tail)
	}
	return snippet.SingleRegion{Name: name}, nil
}

// parseElided parses "[main] [sub] ...]", the input after the outer '['.
func parseElided(s string) (snippet.Spec, error) {
	main, rest, err := parseAttribute(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnippet, err)
	}

	spec := snippet.ElidedRegion{Main: main}
	for {
		rest = strings.TrimLeft(rest, blanks)
		switch {
		case strings.HasPrefix(rest, "["):
			var sub string
			sub, rest, err = parseAttribute(rest)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidSnippet, err)
			}
			spec.Keep = append(spec.Keep, sub)
		case strings.HasPrefix(rest, "]"):
			if tail := strings.TrimSpace(rest[1:]); tail != "" {
				return nil, fmt.Errorf("%w: '%s'", ErrTagRemainder, tail)
			}
			return spec, nil
		default:
			return nil, ErrUnmatchedNestedBrackets
		}
	}
}

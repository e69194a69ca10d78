package docs

import (
	"fmt"
	"strings"
)

// fence is the opening line of a fenced code block.
type fence struct {
	indent string
	run    string
	lang   string
}

func parseFenceOpen(line string) (fence, error) {
	line = trimEOL(line)
	t := strings.TrimLeft(line, blanks)
	indent := line[:len(line)-len(t)]
	t = strings.TrimRight(t, blanks)

	if t == "" || (t[0] != '`' && t[0] != '~') {
		return fence{}, ErrMissingCodeBlock
	}
	n := 0
	for n < len(t) && t[n] == t[0] {
		n++
	}
	if n < 3 {
		return fence{}, ErrInvalidFence
	}

	f := fence{indent: indent, run: t[:n]}
	words := strings.Fields(t[n:])
	switch {
	case len(words) > 1:
		return fence{}, fmt.Errorf("%w: '%s'", ErrFenceRemainder, strings.Join(words[1:], " "))
	case len(words) == 1:
		if !isLanguage(words[0]) {
			return fence{}, fmt.Errorf("%w: '%s'", ErrInvalidLanguage, words[0])
		}
		f.lang = words[0]
	}
	return f, nil
}

func isLanguage(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("_+-#.", r):
		default:
			return false
		}
	}
	return true
}

// findFenceClose returns the index of the first line at or after from that
// closes f. A line that starts with f's run but carries anything else is a
// mismatched fence; it is reported together with its index.
func findFenceClose(lines []string, from int, f fence) (int, error) {
	for i := from; i < len(lines); i++ {
		t := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(t, f.run) {
			continue
		}
		if rem := strings.TrimSpace(t[len(f.run):]); rem != "" {
			return i, fmt.Errorf("%w: expected '%s'", ErrFenceMismatch, f.run)
		}
		return i, nil
	}
	return -1, ErrUnterminatedCodeBlock
}

func trimEOL(line string) string {
	return strings.TrimRight(line, "\r\n")
}

// splitLines splits text after every newline, keeping the newlines.
func splitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	titleStyle = lipgloss.NewStyle().Bold(true)
	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	lineStyle  = lipgloss.NewStyle().Faint(true)

	addStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	delStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	hunkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// colorDiff highlights the lines of a unified diff.
func colorDiff(diff string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		text := strings.TrimSuffix(line, "\n")
		nl := line[len(text):]
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			b.WriteString(titleStyle.Render(text))
		case strings.HasPrefix(text, "@@"):
			b.WriteString(hunkStyle.Render(text))
		case strings.HasPrefix(text, "+"):
			b.WriteString(addStyle.Render(text))
		case strings.HasPrefix(text, "-"):
			b.WriteString(delStyle.Render(text))
		default:
			b.WriteString(text)
		}
		b.WriteString(nl)
	}
	return b.String()
}

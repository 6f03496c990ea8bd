package main

import (
	"strings"

	"charm.land/lipgloss/v2"
)

var (
	addStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D787"))
	removeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
	hunkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFFF"))
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// colorDiff styles a unified diff for terminal output.
func colorDiff(diff string) string {
	lines := strings.SplitAfter(diff, "\n")

	var sb strings.Builder

	for _, line := range lines {
		body := strings.TrimSuffix(line, "\n")
		nl := line[len(body):]

		switch {
		case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
			sb.WriteString(headerStyle.Render(body))
		case strings.HasPrefix(body, "@@"):
			sb.WriteString(hunkStyle.Render(body))
		case strings.HasPrefix(body, "+"):
			sb.WriteString(addStyle.Render(body))
		case strings.HasPrefix(body, "-"):
			sb.WriteString(removeStyle.Render(body))
		default:
			sb.WriteString(body)
		}

		sb.WriteString(nl)
	}

	return sb.String()
}

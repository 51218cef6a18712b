package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const tabWidth = 8

// ExpandTabs converts tab characters to spaces using 8-column tab stops.
// Columns restart after every newline, so the viewport never sees a raw
// tab.
func ExpandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}

	var sb strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			nextStop := ((col / tabWidth) + 1) * tabWidth
			sb.WriteString(strings.Repeat(" ", nextStop-col))
			col = nextStop
		case '\n':
			sb.WriteRune(r)
			col = 0
		default:
			sb.WriteRune(r)
			col += lipgloss.Width(string(r))
		}
	}
	return sb.String()
}

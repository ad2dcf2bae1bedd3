package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderTable renders a simple aligned table with styled headers.
// Columns are sized to their widest cell; the table is not wrapped, so
// callers should keep rows within the terminal width.
func RenderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder

	for i, h := range headers {
		b.WriteString(TableHeaderStyle.Render(pad(h, widths[i])))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	divider := make([]string, len(headers))
	for i := range headers {
		divider[i] = strings.Repeat("─", widths[i])
	}
	b.WriteString(MutedStyle.Render(strings.Join(divider, "──")))
	b.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			b.WriteString(ValueStyle.Render(pad(cell, widths[i])))
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderStatusLine renders one "Key: value" status line with aligned keys
func RenderStatusLine(key, value string) string {
	return KeyStyle.Render(key+":") + " " + ValueStyle.Render(value)
}

// RenderTitle renders a section title followed by a divider
func RenderTitle(title string, width int) string {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	divider := lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Render(strings.Repeat("─", width))
	return TitleStyle.Render(strings.ToUpper(title)) + "\n" + divider
}

// pad right-pads a string to the given width
func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable renders headers, a separator and rows as aligned columns.
// Widths are measured on visible text so styled cells line up.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	widths := columnWidths(headers, rows)

	var b strings.Builder
	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = StyleHeader.Render(h)
	}
	writeRow(&b, styled, widths)

	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = StyleDim.Render(strings.Repeat("─", w))
	}
	writeRow(&b, rules, widths)

	for _, row := range rows {
		writeRow(&b, row, widths)
	}
	return b.String()
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	return widths
}

// writeRow pads every cell but the last; missing cells render empty.
func writeRow(b *strings.Builder, cells []string, widths []int) {
	last := len(widths) - 1
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(cell)
		if i < last {
			b.WriteString(strings.Repeat(" ", max(w-lipgloss.Width(cell), 0)+colGap))
		}
	}
	b.WriteString("\n")
}

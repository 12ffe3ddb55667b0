package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// table renders static rows with a header, a divider and "|" separators.
// Cells may span several lines; a row is as tall as its tallest cell.
type table struct {
	Caption string
	Headers []string
	Rows    [][]string
}

func newTable(caption string, headers []string) *table {
	return &table{
		Caption: caption,
		Headers: headers,
		Rows:    make([][]string, 0),
	}
}

func (t *table) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table. A table without rows renders its header only.
func (t *table) View(styles Styles) string {
	var sb strings.Builder

	if t.Caption != "" {
		sb.WriteString(styles.Muted.Render(t.Caption))
		sb.WriteString("\n")
	}

	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				if w := lipgloss.Width(cell); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}
	// lipgloss widths include padding
	for i := range colWidths {
		colWidths[i] += 2
	}

	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)

	sb.WriteString(t.line(t.Headers, colWidths, headerStyle, styles.Divider))
	sb.WriteString("\n")

	total := len(colWidths) - 1
	for _, w := range colWidths {
		total += w
	}
	sb.WriteString(styles.Divider.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		sb.WriteString(t.line(row, colWidths, rowStyle, styles.Divider))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (t *table) line(cells []string, widths []int, cell, sep lipgloss.Style) string {
	height := 1
	for _, c := range cells {
		if h := lipgloss.Height(c); h > height {
			height = h
		}
	}
	bar := sep.Render(strings.TrimSuffix(strings.Repeat("|\n", height), "\n"))

	parts := make([]string, 0, len(widths)*2)
	for i, w := range widths {
		var c string
		if i < len(cells) {
			c = cells[i]
		}
		parts = append(parts, cell.Width(w).Render(c))
		if i < len(widths)-1 {
			parts = append(parts, bar)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

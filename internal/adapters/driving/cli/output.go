package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/plugdata-labs/plug-cli/internal/core/domain"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
	cellStyle   = lipgloss.NewStyle()
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

// renderTable renders a result table with padded columns, a styled header
// row and a separator rule.
func renderTable(table *domain.Table) string {
	widths := make([]int, len(table.Columns))
	for i, col := range table.Columns {
		widths[i] = len(col)
	}

	cells := make([][]string, len(table.Rows))
	for r, row := range table.Rows {
		cells[r] = make([]string, len(table.Columns))
		for c := range table.Columns {
			var value any
			if c < len(row) {
				value = row[c]
			}
			text := domain.CellString(value)
			cells[r][c] = text
			if len(text) > widths[c] {
				widths[c] = len(text)
			}
		}
	}

	var b strings.Builder

	for c, col := range table.Columns {
		if c > 0 {
			b.WriteString("  ")
		}
		b.WriteString(headerStyle.Render(pad(col, widths[c])))
	}
	b.WriteString("\n")

	ruleWidth := 0
	for _, w := range widths {
		ruleWidth += w
	}
	ruleWidth += 2 * (len(widths) - 1)
	b.WriteString(ruleStyle.Render(strings.Repeat("─", max(ruleWidth, 1))))

	for _, row := range cells {
		b.WriteString("\n")
		for c, text := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cellStyle.Render(pad(text, widths[c])))
		}
	}

	return b.String()
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// maskSecret hides a secret, keeping a short prefix for recognition.
func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:4] + strings.Repeat("*", 8)
}

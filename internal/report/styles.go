package report

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#a6adc8"}
	colorBorder = lipgloss.AdaptiveColor{Light: "#9ca0b0", Dark: "#585b70"}
	colorGood   = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"}
	colorBad    = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"}
	colorWarn   = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"}
)

var (
	titleStyle       = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	labelStyle       = lipgloss.NewStyle().Foreground(colorMuted)
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Padding(0, 1)
	cellStyle        = lipgloss.NewStyle().Padding(0, 1)
	numberStyle      = cellStyle.Align(lipgloss.Right)
	goodStyle        = lipgloss.NewStyle().Foreground(colorGood)
	badStyle         = lipgloss.NewStyle().Foreground(colorBad)
	alertStyle       = lipgloss.NewStyle().Foreground(colorWarn).Bold(true)
)

// newTable builds a bordered table. Columns listed in numeric are right-aligned.
func newTable(headers []string, rows [][]string, numeric ...int) *table.Table {
	right := make(map[int]bool, len(numeric))
	for _, c := range numeric {
		right[c] = true
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case right[col]:
				return numberStyle
			default:
				return cellStyle
			}
		})
}

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 70:
		return goodStyle
	case score < 50:
		return badStyle
	default:
		return lipgloss.NewStyle()
	}
}

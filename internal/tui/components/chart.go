package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/tripcost/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const (
	maxChartLabelW = 12
	minChartBarW   = 4
)

// partialBlocks are the left-aligned eighth blocks, 1/8 through 7/8.
var partialBlocks = []rune{'▏', '▎', '▍', '▌', '▋', '▊', '▉'}

// BarChart renders one horizontal bar per value, scaled to the largest value,
// with the dollar figure after each bar. labels must match values one to one.
func BarChart(values []float64, labels []string, color lipgloss.Color, width int) string {
	if len(values) == 0 || len(labels) != len(values) {
		return ""
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}

	labelW := 0
	for _, l := range labels {
		labelW = max(labelW, lipgloss.Width(l))
	}
	labelW = min(labelW, maxChartLabelW)

	figures := make([]string, len(values))
	figureW := 0
	for i, v := range values {
		figures[i] = formatChartLabel(v)
		figureW = max(figureW, len(figures[i]))
	}

	barW := max(width-labelW-figureW-2, minChartBarW)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	figureStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s ", labelW, clipLabel(labels[i], labelW))))
		b.WriteString(barStyle.Render(barCells(v, peak, barW)))
		b.WriteString(figureStyle.Render(fmt.Sprintf(" %*s", figureW, figures[i])))
	}
	return b.String()
}

// barCells draws v/peak of width cells, using an eighth block for the
// fractional tail. The result is always exactly width cells.
func barCells(v, peak float64, width int) string {
	if peak <= 0 || v <= 0 {
		return strings.Repeat(" ", width)
	}
	cells := math.Min(v/peak, 1) * float64(width)
	full := int(cells)
	eighths := int((cells - float64(full)) * 8)

	var b strings.Builder
	b.WriteString(strings.Repeat("█", full))
	used := full
	if eighths > 0 && used < width {
		b.WriteRune(partialBlocks[eighths-1])
		used++
	}
	b.WriteString(strings.Repeat(" ", width-used))
	return b.String()
}

func clipLabel(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	return string(r[:w])
}

// formatChartLabel formats a dollar figure compactly, e.g. 2500 -> "$2.5k".
func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("$%.0fM", v/1e6)
		}
		return fmt.Sprintf("$%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("$%.0fk", v/1e3)
		}
		return fmt.Sprintf("$%.1fk", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

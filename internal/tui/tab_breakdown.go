package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tripcost/internal/cli"
	"github.com/theirongolddev/tripcost/internal/tui/components"
	"github.com/theirongolddev/tripcost/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderBreakdownTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	vals := make([]float64, len(a.plan.ByCountry))
	labels := make([]string, len(a.plan.ByCountry))
	for i, row := range a.plan.ByCountry {
		vals[i] = row.SubtotalUSD
		labels[i] = string(row.Country)
	}
	b.WriteString(components.ContentCard("Subtotal by Country",
		components.BarChart(vals, labels, t.Green, components.CardInnerWidth(cw)), cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Totals", a.renderTotalsBody(halves[0]), halves[0]),
		components.ContentCard("Affordability", a.renderAffordBody(halves[1]), halves[1]),
	}))

	return b.String()
}

func (a App) renderTotalsBody(outerW int) string {
	t := theme.Active
	totals := a.plan.Totals
	innerW := components.CardInnerWidth(outerW)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	totalStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Bold(true)

	rows := []struct {
		label, value string
		strong       bool
	}{
		{"Baseline", cli.FormatCost(totals.BaselineUSD), false},
		{"Extras", cli.FormatCost(totals.ExtrasUSD), false},
		{"Subtotal", cli.FormatCost(totals.SubtotalUSD), false},
		{fmt.Sprintf("Emergency (%.0f%%)", a.st.Inputs.EmergencyPercent), cli.FormatCost(totals.EmergencyUSD), false},
		{"Grand total", cli.FormatCost(totals.GrandTotalUSD), true},
		{"Your share", cli.FormatCost(totals.YourShareUSD), false},
	}
	if totals.PartnerShareUSD != nil {
		rows = append(rows, struct {
			label, value string
			strong       bool
		}{"Partner share", cli.FormatCost(*totals.PartnerShareUSD), false})
	}

	valueW := 12
	labelW := innerW - valueW
	if labelW < 10 {
		labelW = 10
	}

	var b strings.Builder
	for i, r := range rows {
		style := valueStyle
		if r.strong {
			style = totalStyle
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, r.label)))
		b.WriteString(style.Render(fmt.Sprintf("%*s", valueW, r.value)))
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a App) renderAffordBody(outerW int) string {
	t := theme.Active
	af := a.afford
	innerW := components.CardInnerWidth(outerW)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	if af.MonthlyIncomeUSD <= 0 {
		return labelStyle.Render("No monthly income set. Press e to add one.")
	}

	gapLabel := "Monthly shortfall"
	gap := af.MonthlyGapUSD
	if gap < 0 {
		gapLabel = "Monthly surplus"
		gap = -gap
	}

	barW := innerW - 10 - 7
	if barW < 8 {
		barW = 8
	}

	var b strings.Builder
	b.WriteString(components.CoverageBar("Coverage", af.IncomeCoverage, 10, barW))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-20s", "Income")))
	b.WriteString(valueStyle.Render(cli.FormatCost(af.MonthlyIncomeUSD)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-20s", gapLabel)))
	b.WriteString(valueStyle.Render(cli.FormatCost(gap)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-20s", "Buffer covers")))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.1f months", af.EmergencyMonths)))
	return b.String()
}

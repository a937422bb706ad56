package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tripcost/internal/cli"
	"github.com/theirongolddev/tripcost/internal/tui/components"
	"github.com/theirongolddev/tripcost/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderPlanTab(cw int) string {
	var b strings.Builder

	totals := a.plan.Totals
	in := a.st.Inputs

	shareLabel, shareValue, shareDelta := "Your Share", cli.FormatCost(totals.YourShareUSD), "1 traveler"
	if totals.PartnerShareUSD != nil {
		shareDelta = "partner " + cli.FormatCost(*totals.PartnerShareUSD)
	}

	cards := []struct{ Label, Value, Delta string }{
		{"Grand Total", cli.FormatCost(totals.GrandTotalUSD), fmt.Sprintf("incl. %s emergency", cli.FormatCost(totals.EmergencyUSD))},
		{"Monthly Avg", cli.FormatCost(totals.MonthlyAvgUSD), cli.FormatMonths(totals.Months)},
		{shareLabel, shareValue, shareDelta},
		{"Per Person", cli.FormatCost(in.BaselinePerPersonUSD + in.ExtrasPerPersonUSD), "baseline + extras /mo"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")
	b.WriteString(a.renderCountriesTable(cw))

	return b.String()
}

func (a App) renderCountriesTable(cw int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	costStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)

	compact := a.isCompactLayout()

	var body strings.Builder
	nameW := 12
	if compact {
		body.WriteString(headerStyle.Render(fmt.Sprintf("  %-*s %7s %6s %11s", nameW, "Country", "Months", "Mult", "Subtotal")))
	} else {
		body.WriteString(headerStyle.Render(fmt.Sprintf("  %-*s %7s %6s %10s %10s %11s %11s %11s",
			nameW, "Country", "Months", "Mult", "Base/mo", "Extras/mo", "Baseline", "Extras", "Subtotal")))
	}
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")

	for i, row := range a.plan.ByCountry {
		c := a.st.Countries[i]
		marker := "  "
		style := rowStyle
		if i == a.cursor {
			marker = "▸ "
			style = selStyle
		}

		var line string
		if compact {
			line = fmt.Sprintf("%s%-*s %7d %6s", marker, nameW, truncStr(string(row.Country), nameW), row.Months,
				cli.FormatMultiplier(c.Multiplier))
		} else {
			line = fmt.Sprintf("%s%-*s %7d %6s %10s %10s %11s %11s", marker, nameW, truncStr(string(row.Country), nameW), row.Months,
				cli.FormatMultiplier(c.Multiplier),
				cli.FormatCost(row.MonthlyBaselinePerPersonUSD),
				cli.FormatCost(row.MonthlyExtrasPerPersonUSD),
				cli.FormatCost(row.BaselineUSD),
				cli.FormatCost(row.ExtrasUSD))
		}
		body.WriteString(style.Render(line))
		body.WriteString(costStyle.Render(fmt.Sprintf(" %11s", cli.FormatCost(row.SubtotalUSD))))
		body.WriteString("\n")
	}

	body.WriteString(mutedStyle.Render("+/- months  [/] multiplier  e inputs  l live multipliers"))

	return components.ContentCard("Countries", body.String(), cw)
}

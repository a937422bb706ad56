package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/theirongolddev/tripcost/internal/cli"
	"github.com/theirongolddev/tripcost/internal/tui/components"
	"github.com/theirongolddev/tripcost/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// featuredCurrencies are listed first on the rates tab.
var featuredCurrencies = []string{"EUR", "GBP", "VND", "MXN", "THB", "JPY"}

func (a App) renderRatesTab(cw int) string {
	t := theme.Active
	rates := a.st.Rates
	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	codeStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	var b strings.Builder
	if rates.Fallback {
		b.WriteString(warnStyle.Render("Rate provider unavailable; showing identity rates. Press R to retry."))
		b.WriteString("\n\n")
	}

	codes := orderedCurrencies(rates.Rates)
	colW := 16
	cols := innerW / colW
	if cols < 1 {
		cols = 1
	}

	b.WriteString(headerStyle.Render(fmt.Sprintf("1 %s =", rates.Base)))
	b.WriteString("\n")
	for i, code := range codes {
		b.WriteString(codeStyle.Render(fmt.Sprintf("%-4s", code)))
		b.WriteString(rowStyle.Render(fmt.Sprintf("%-*s", colW-4, cli.FormatRate(rates.Rates[code]))))
		if (i+1)%cols == 0 || i == len(codes)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Fetched %s · totals are always in USD",
		rates.FetchedAt.Local().Format("2006-01-02 15:04"))))

	return components.ContentCard(fmt.Sprintf("Exchange Rates (%d)", len(codes)), b.String(), cw)
}

// orderedCurrencies lists featured codes first, then the rest alphabetically.
func orderedCurrencies(rates map[string]float64) []string {
	seen := make(map[string]bool, len(rates))
	out := make([]string, 0, len(rates))
	for _, code := range featuredCurrencies {
		if _, ok := rates[code]; ok {
			out = append(out, code)
			seen[code] = true
		}
	}

	rest := make([]string, 0, len(rates))
	for code := range rates {
		if !seen[code] {
			rest = append(rest, code)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

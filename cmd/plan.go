package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/tripcost/internal/cli"
	"github.com/theirongolddev/tripcost/internal/model"
	"github.com/theirongolddev/tripcost/internal/pipeline"
	"github.com/theirongolddev/tripcost/internal/state"

	"github.com/spf13/cobra"
)

var (
	flagPeople         int
	flagBaseline       float64
	flagExtras         float64
	flagSharedBaseline float64
	flagSharedExtras   float64
	flagIncome         float64
	flagEmergency      float64
	flagCountries      []string
	flagLive           bool
	flagJSON           bool
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute a trip budget (default command)",
	Example: `  tripcost plan --people 2 --country Italy=2 --country Vietnam=3:0.5
  tripcost plan --baseline 1800 --income 5000 --live`,
	RunE: runPlan,
}

func init() {
	addPlanFlags(planCmd)
	rootCmd.AddCommand(planCmd)
}

func addPlanFlags(c *cobra.Command) {
	def := model.DefaultInputs()
	f := c.Flags()
	f.IntVar(&flagPeople, "people", def.NumPeople, "Travelers (1 or 2)")
	f.Float64Var(&flagBaseline, "baseline", def.BaselinePerPersonUSD, "Baseline cost per person per month (USD)")
	f.Float64Var(&flagExtras, "extras", def.ExtrasPerPersonUSD, "Extras per person per month (USD)")
	f.Float64Var(&flagSharedBaseline, "shared-baseline", def.SharedBaselineFraction, "Fraction of baseline shared by two travelers (0-1)")
	f.Float64Var(&flagSharedExtras, "shared-extras", def.SharedExtrasFraction, "Fraction of extras shared by two travelers (0-1)")
	f.Float64Var(&flagIncome, "income", def.MonthlyIncomeUSD, "Monthly household income (USD)")
	f.Float64Var(&flagEmergency, "emergency", def.EmergencyPercent, "Emergency buffer percent")
	f.StringArrayVar(&flagCountries, "country", nil, "Country as Name=months[:multiplier] (repeatable, replaces the configured list)")
	f.BoolVar(&flagLive, "live", false, "Refresh cost-of-living multipliers before computing")
	f.BoolVar(&flagJSON, "json", false, "Print the plan as JSON")
}

func runPlan(c *cobra.Command, _ []string) error {
	st, err := initialState()
	if err != nil {
		return err
	}
	st, err = applyPlanFlags(c, st)
	if err != nil {
		return err
	}

	if flagLive {
		_, multipliers, closeCache := fetchers()
		defer closeCache()

		progress("Refreshing multipliers for %d countries...", st.Len())
		before := st.Plan().Totals.GrandTotalUSD
		updated, report := pipeline.RefreshMultipliers(context.Background(), multipliers, st.Countries, log)
		st = st.WithCountries(updated)
		progress("Live multipliers: %d updated, %d kept (%s), grand total %s",
			len(report.Updated), len(report.Retained), cli.FormatElapsed(report.Elapsed),
			cli.FormatDelta(st.Plan().Totals.GrandTotalUSD, before))
	}

	plan := st.Plan()
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}

	printPlan(st, plan, st.Affordability())
	return nil
}

// applyPlanFlags overlays explicitly set flags on the configured state.
func applyPlanFlags(c *cobra.Command, st state.State) (state.State, error) {
	in := st.Inputs
	f := c.Flags()
	if f.Changed("people") {
		in.NumPeople = flagPeople
	}
	if f.Changed("baseline") {
		in.BaselinePerPersonUSD = flagBaseline
	}
	if f.Changed("extras") {
		in.ExtrasPerPersonUSD = flagExtras
	}
	if f.Changed("shared-baseline") {
		in.SharedBaselineFraction = flagSharedBaseline
	}
	if f.Changed("shared-extras") {
		in.SharedExtrasFraction = flagSharedExtras
	}
	if f.Changed("income") {
		in.MonthlyIncomeUSD = flagIncome
	}
	if f.Changed("emergency") {
		in.EmergencyPercent = flagEmergency
	}
	st = st.WithInputs(in)

	if len(flagCountries) > 0 {
		countries := make([]model.CountryConfig, 0, len(flagCountries))
		for _, raw := range flagCountries {
			cc, err := parseCountryFlag(raw)
			if err != nil {
				return st, err
			}
			countries = append(countries, cc)
		}
		st = st.WithCountries(countries)
	}
	return st, nil
}

// parseCountryFlag parses "Name=months[:multiplier]". Without a multiplier
// the country's default is used.
func parseCountryFlag(raw string) (model.CountryConfig, error) {
	name, spec, ok := strings.Cut(raw, "=")
	if !ok {
		return model.CountryConfig{}, fmt.Errorf("--country %q: want Name=months[:multiplier]", raw)
	}
	country, err := model.ParseCountry(name)
	if err != nil {
		return model.CountryConfig{}, fmt.Errorf("--country %q: %w", raw, err)
	}

	monthsRaw, multRaw, hasMult := strings.Cut(spec, ":")
	months, err := strconv.Atoi(strings.TrimSpace(monthsRaw))
	if err != nil {
		return model.CountryConfig{}, fmt.Errorf("--country %q: months: %w", raw, err)
	}

	mult := country.DefaultMultiplier()
	if hasMult {
		mult, err = strconv.ParseFloat(strings.TrimSpace(multRaw), 64)
		if err != nil {
			return model.CountryConfig{}, fmt.Errorf("--country %q: multiplier: %w", raw, err)
		}
	}

	return pipeline.ClampCountry(model.CountryConfig{Country: country, Months: months, Multiplier: mult}), nil
}

func printPlan(st state.State, plan model.PlanOutput, afford model.Affordability) {
	in := st.Inputs
	t := plan.Totals

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TRIP BUDGET  %s  %d %s",
		cli.FormatMonths(t.Months), in.NumPeople, pluralize(in.NumPeople, "traveler", "travelers"))))
	fmt.Println()

	rows := make([][]string, 0, len(plan.ByCountry))
	for i, r := range plan.ByCountry {
		rows = append(rows, []string{
			string(r.Country),
			cli.FormatMonths(r.Months),
			cli.FormatMultiplier(st.Countries[i].Multiplier),
			cli.FormatCost(r.BaselineUSD),
			cli.FormatCost(r.ExtrasUSD),
			cli.FormatCost(r.SubtotalUSD),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Total", cli.FormatMonths(t.Months), "",
		cli.FormatCost(t.BaselineUSD), cli.FormatCost(t.ExtrasUSD), cli.FormatCost(t.SubtotalUSD)})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Breakdown",
		Headers: []string{"Country", "Months", "Mult", "Baseline", "Extras", "Subtotal"},
		Rows:    rows,
	}))
	fmt.Println()

	if bars := subtotalBars(plan, 30); bars != "" {
		fmt.Print(bars)
		fmt.Println()
	}

	summary := [][]string{
		{"Subtotal", cli.FormatCost(t.SubtotalUSD)},
		{fmt.Sprintf("Emergency (%s)", cli.FormatPercent(in.EmergencyPercent/100)), cli.FormatCost(t.EmergencyUSD)},
		{"Grand Total", cli.FormatCost(t.GrandTotalUSD)},
		{"Monthly Average", cli.FormatCost(t.MonthlyAvgUSD)},
		{"---"},
		{"Your Share", cli.FormatCost(t.YourShareUSD)},
	}
	if t.PartnerShareUSD != nil {
		summary = append(summary, []string{"Partner Share", cli.FormatCost(*t.PartnerShareUSD)})
	}
	if in.MonthlyIncomeUSD > 0 {
		summary = append(summary,
			[]string{"---"},
			[]string{"Monthly Income", cli.FormatCost(afford.MonthlyIncomeUSD)},
			[]string{"Monthly Gap", cli.FormatCost(afford.MonthlyGapUSD)},
			[]string{"Income Coverage", cli.FormatPercent(afford.IncomeCoverage)},
		)
	}
	summary = append(summary, []string{"Emergency Covers", fmt.Sprintf("%.1f months", afford.EmergencyMonths)})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Summary",
		Headers: []string{"Metric", "Value"},
		Rows:    summary,
	}))

	if t.Months == 0 {
		fmt.Println()
		fmt.Println(cli.RenderNote("No months planned. Add some with --country Name=months."))
	}
	fmt.Println()
}

// subtotalBars draws each country's subtotal as a bar scaled to the most
// expensive country. It returns "" when nothing is planned.
func subtotalBars(plan model.PlanOutput, barWidth int) string {
	peak, nameW := 0.0, 0
	for _, r := range plan.ByCountry {
		peak = max(peak, r.SubtotalUSD)
		nameW = max(nameW, len(r.Country))
	}
	if peak <= 0 {
		return ""
	}

	var b strings.Builder
	for _, r := range plan.ByCountry {
		label := fmt.Sprintf("%-*s", nameW, r.Country)
		b.WriteString(cli.RenderHorizontalBar(label, r.SubtotalUSD, peak, barWidth))
		b.WriteString(" ")
		b.WriteString(cli.FormatCost(r.SubtotalUSD))
		b.WriteString("\n")
	}
	return b.String()
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

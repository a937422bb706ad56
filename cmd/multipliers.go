package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/tripcost/internal/cli"
	"github.com/theirongolddev/tripcost/internal/model"
	"github.com/theirongolddev/tripcost/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagAllCountries bool

var multipliersCmd = &cobra.Command{
	Use:   "multipliers",
	Short: "Compare default and live cost-of-living multipliers",
	RunE:  runMultipliers,
}

func init() {
	multipliersCmd.Flags().BoolVar(&flagAllCountries, "all", false, "Include every supported country, not just the configured list")
	rootCmd.AddCommand(multipliersCmd)
}

func runMultipliers(_ *cobra.Command, _ []string) error {
	countries, err := cfg.StartCountries()
	if err != nil {
		return err
	}
	if flagAllCountries {
		countries = model.AllCountries()
	}

	current := make([]model.CountryConfig, 0, len(countries))
	for _, c := range countries {
		current = append(current, model.CountryConfig{Country: c, Months: 1, Multiplier: c.DefaultMultiplier()})
	}

	_, multipliers, closeCache := fetchers()
	defer closeCache()

	progress("Fetching live multipliers for %d countries...", len(current))
	live, report := pipeline.RefreshMultipliers(context.Background(), multipliers, current, log)

	updated := make(map[model.Country]bool, len(report.Updated))
	for _, c := range report.Updated {
		updated[c] = true
	}

	rows := make([][]string, 0, len(current))
	for i, c := range current {
		liveStr, delta := "n/a", ""
		if updated[c.Country] {
			liveStr = cli.FormatMultiplier(live[i].Multiplier)
			delta = fmt.Sprintf("%+.2f", live[i].Multiplier-c.Multiplier)
		}
		rows = append(rows, []string{string(c.Country), cli.FormatMultiplier(c.Multiplier), liveStr, delta})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Cost-of-Living Multipliers",
		Headers: []string{"Country", "Default", "Live", "Delta"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Println(cli.RenderNote(fmt.Sprintf("%d live, %d unavailable in %s",
		len(report.Updated), len(report.Retained), cli.FormatElapsed(report.Elapsed))))
	fmt.Println()
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/theirongolddev/tripcost/internal/cli"
	"github.com/theirongolddev/tripcost/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagBase string

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show exchange rates against a base currency",
	RunE:  runRates,
}

func init() {
	ratesCmd.Flags().StringVar(&flagBase, "base", "", "Base currency (default from config)")
	rootCmd.AddCommand(ratesCmd)
}

func runRates(_ *cobra.Command, _ []string) error {
	base := baseCurrency()
	if flagBase != "" {
		base = pipeline.NormalizeCurrency(flagBase)
	}

	rates, _, closeCache := fetchers()
	defer closeCache()

	progress("Fetching %s rates...", base)
	set := pipeline.LoadRates(context.Background(), rates, base, log)

	codes := make([]string, 0, len(set.Rates))
	for code := range set.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	rows := make([][]string, 0, len(codes))
	for _, code := range codes {
		rows = append(rows, []string{code, cli.FormatRate(set.Rates[code])})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Exchange Rates  1 %s =", set.Base),
		Headers: []string{"Currency", "Rate"},
		Rows:    rows,
	}))
	fmt.Println()
	if set.Fallback {
		fmt.Println(cli.RenderWarning("Rate provider unavailable; showing identity rate only."))
	} else {
		fmt.Println(cli.RenderNote("Fetched " + set.FetchedAt.Local().Format("2006-01-02 15:04") + ". Rates are informational; totals stay in USD."))
	}
	fmt.Println()
	return nil
}

package cmd

import (
	"fmt"

	"github.com/theirongolddev/tripcost/internal/cli"
	"github.com/theirongolddev/tripcost/internal/model"

	"github.com/spf13/cobra"
)

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List supported countries",
	RunE:  runCountries,
}

func init() {
	rootCmd.AddCommand(countriesCmd)
}

func runCountries(_ *cobra.Command, _ []string) error {
	starting := make(map[model.Country]bool)
	if cs, err := cfg.StartCountries(); err == nil {
		for _, c := range cs {
			starting[c] = true
		}
	}

	all := model.AllCountries()
	rows := make([][]string, 0, len(all))
	for _, c := range all {
		info, _ := c.Info()
		mark := ""
		if starting[c] {
			mark = "yes"
		}
		rows = append(rows, []string{string(c), cli.FormatMultiplier(info.DefaultMultiplier), info.UrbanArea, mark})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Supported Countries",
		Headers: []string{"Country", "Multiplier", "Urban Area", "Start"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

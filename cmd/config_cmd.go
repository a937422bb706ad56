package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tripcost/internal/cli"
	"github.com/theirongolddev/tripcost/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Base currency: %s\n", baseCurrency())
	fmt.Printf("    Countries:     %s\n", strings.Join(cfg.General.Countries, ", "))
	fmt.Printf("    Log level:     %s\n", cfg.General.LogLevel)
	fmt.Println()

	in := cfg.Inputs
	fmt.Println("  [Inputs]")
	fmt.Printf("    Travelers:        %d\n", in.NumPeople)
	fmt.Printf("    Baseline/person:  %s\n", cli.FormatCost(in.BaselinePerPersonUSD))
	fmt.Printf("    Extras/person:    %s\n", cli.FormatCost(in.ExtrasPerPersonUSD))
	fmt.Printf("    Shared baseline:  %s\n", cli.FormatPercent(in.SharedBaselineFraction))
	fmt.Printf("    Shared extras:    %s\n", cli.FormatPercent(in.SharedExtrasFraction))
	fmt.Printf("    Monthly income:   %s\n", cli.FormatCost(in.MonthlyIncomeUSD))
	fmt.Printf("    Emergency buffer: %.1f%%\n", in.EmergencyPercent)
	fmt.Println()

	fmt.Println("  [Sources]")
	fmt.Printf("    FX URL:       %s\n", orDefault(cfg.Sources.FXURL))
	fmt.Printf("    Teleport URL: %s\n", orDefault(cfg.Sources.TeleportURL))
	fmt.Printf("    Timeout:      %s\n", cfg.Timeout())
	fmt.Println()

	fmt.Println("  [Cache]")
	fmt.Printf("    Backend: %s\n", cfg.Cache.Backend)
	if cfg.Cache.Backend == config.CacheRedis {
		fmt.Printf("    Redis:   %s\n", orDefault(cfg.Cache.RedisAddr))
	} else {
		fmt.Printf("    Dir:     %s\n", config.CacheDir())
	}
	fmt.Printf("    TTL:     %s\n", cfg.CacheTTL())
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	if len(cfg.Server.AllowedOrigins) > 0 {
		fmt.Printf("    Origins: %s\n", strings.Join(cfg.Server.AllowedOrigins, ", "))
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `tripcost setup` to reconfigure.")
	return nil
}

func orDefault(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}

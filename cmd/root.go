// Package cmd implements the tripcost CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/tripcost/internal/config"
	"github.com/theirongolddev/tripcost/internal/fx"
	"github.com/theirongolddev/tripcost/internal/logger"
	"github.com/theirongolddev/tripcost/internal/pipeline"
	"github.com/theirongolddev/tripcost/internal/state"
	"github.com/theirongolddev/tripcost/internal/store"
	"github.com/theirongolddev/tripcost/internal/teleport"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagLogLevel string
	flagNoCache  bool
	flagQuiet    bool
)

// Loaded once in PersistentPreRunE and shared by every command.
var (
	cfg config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tripcost",
	Short: "Multi-country travel budget estimator",
	Long:  "Estimate what a multi-country trip costs: per-country breakdown, totals, and affordability.",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setup(cmd)
	},
	RunE:         runPlan,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the fetch cache, always hit the providers")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")

	addPlanFlags(rootCmd)
}

func setup(_ *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "  %v\n", err)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	level := cfg.General.LogLevel
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	if flagQuiet && flagLogLevel == "" {
		level = "error"
	}
	log = logger.New(logger.Config{Level: level, Pretty: true})
	return nil
}

// fetchers builds the rate and multiplier sources, wrapped in the configured
// cache unless --no-cache is set. A cache that cannot be opened is skipped.
// The returned close func is always safe to call.
func fetchers() (pipeline.RateFetcher, pipeline.MultiplierFetcher, func()) {
	rates := fx.NewClient(cfg.Sources.FXURL, cfg.Timeout())
	multipliers := teleport.NewClient(cfg.Sources.TeleportURL, cfg.Timeout())

	if flagNoCache {
		return rates, multipliers, func() {}
	}

	backend, err := store.Open(cfg.Cache.Backend, config.CacheDir(), cfg.Cache.RedisAddr)
	if err != nil {
		log.Warn().Err(err).Str("backend", cfg.Cache.Backend).Msg("cache unavailable, fetching uncached")
		return rates, multipliers, func() {}
	}

	cacheLog := log.With().Str("component", "cache").Logger()
	cr := &store.CachedRates{Next: rates, Backend: backend, TTL: cfg.CacheTTL(), Log: cacheLog}
	cm := &store.CachedMultipliers{Next: multipliers, Backend: backend, TTL: cfg.CacheTTL(), Log: cacheLog}
	return cr, cm, func() { _ = backend.Close() }
}

// initialState seeds a plan from the configured countries and inputs.
func initialState() (state.State, error) {
	countries, err := cfg.StartCountries()
	if err != nil {
		return state.State{}, err
	}
	return state.New(countries, cfg.Inputs), nil
}

func baseCurrency() string {
	return pipeline.NormalizeCurrency(cfg.General.BaseCurrency)
}

func progress(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}

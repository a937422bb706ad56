package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/tripcost/internal/config"
	"github.com/theirongolddev/tripcost/internal/logger"
	"github.com/theirongolddev/tripcost/internal/tui"
	"github.com/theirongolddev/tripcost/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	// The alt screen owns the terminal, so logs go to a file or nowhere.
	tuiLog := zerolog.Nop()
	if err := os.MkdirAll(config.CacheDir(), 0o750); err == nil {
		if f, err := logger.OpenFile(filepath.Join(config.CacheDir(), "tui.log")); err == nil {
			defer func() { _ = f.Close() }()
			tuiLog = logger.New(logger.Config{Level: log.GetLevel().String(), Output: f})
		}
	}
	log = tuiLog

	st, err := initialState()
	if err != nil {
		return err
	}

	rates, multipliers, closeCache := fetchers()
	defer closeCache()

	app := tui.NewApp(tui.Options{
		State:        st,
		BaseCurrency: baseCurrency(),
		Rates:        rates,
		Multipliers:  multipliers,
		Timeout:      cfg.Timeout(),
		NeedSetup:    !config.Exists(),
		Log:          tuiLog,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

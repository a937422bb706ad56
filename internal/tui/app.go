// Package tui provides the interactive Bubble Tea dashboard for tripcost.
package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/theirongolddev/tripcost/internal/cli"
	"github.com/theirongolddev/tripcost/internal/model"
	"github.com/theirongolddev/tripcost/internal/pipeline"
	"github.com/theirongolddev/tripcost/internal/state"
	"github.com/theirongolddev/tripcost/internal/tui/components"
	"github.com/theirongolddev/tripcost/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// RatesLoadedMsg is sent when a rate fetch finishes. It always carries a
// usable set; failures arrive as the identity fallback.
type RatesLoadedMsg struct {
	Rates model.RateSet
}

// MultipliersRefreshedMsg is sent when a live multiplier refresh finishes.
// Snapshot is the country list the refresh started from.
type MultipliersRefreshedMsg struct {
	Snapshot  []model.CountryConfig
	Countries []model.CountryConfig
	Report    pipeline.RefreshReport
}

// Options configures a new App.
type Options struct {
	State        state.State
	BaseCurrency string
	Rates        pipeline.RateFetcher
	Multipliers  pipeline.MultiplierFetcher
	Timeout      time.Duration
	NeedSetup    bool
	Log          zerolog.Logger
}

// App is the root Bubble Tea model.
type App struct {
	st     state.State
	plan   model.PlanOutput
	afford model.Affordability

	// Fetch state
	ratesLoaded   bool
	ratesFetching bool
	refreshing    bool
	lastReport    *pipeline.RefreshReport

	// UI state
	width     int
	height    int
	activeTab int
	cursor    int
	showHelp  bool
	spinner   spinner.Model

	// Inputs editor (huh form)
	inputsForm *huh.Form
	inputVals  inputValues

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals SetupValues
	needSetup bool

	base        string
	rates       pipeline.RateFetcher
	multipliers pipeline.MultiplierFetcher
	timeout     time.Duration
	log         zerolog.Logger
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 160
	minContentHeight = 5

	multiplierStep = 0.05
)

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.BaseCurrency == "" {
		opts.BaseCurrency = pipeline.DefaultBaseCurrency
	}

	a := App{
		st:          opts.State,
		needSetup:   opts.NeedSetup,
		spinner:     sp,
		base:        opts.BaseCurrency,
		rates:       opts.Rates,
		multipliers: opts.Multipliers,
		timeout:     opts.Timeout,
		log:         opts.Log.With().Str("component", "tui").Logger(),
	}
	a.recompute()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		a.loadRatesCmd(),
		a.spinner.Tick,
	)
}

// State returns the current plan state.
func (a App) State() state.State {
	return a.st
}

func (a *App) recompute() {
	a.plan = a.st.Plan()
	a.afford = pipeline.Affordability(a.plan, a.st.Inputs)
	if a.cursor >= a.st.Len() {
		a.cursor = a.st.Len() - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) setState(st state.State) {
	a.st = st
	a.recompute()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.inputsForm != nil {
			a.inputsForm = a.inputsForm.WithWidth(msg.Width)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.ratesLoaded || a.showHelp || a.formActive() {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.ratesLoaded {
			if msg.String() == "q" {
				return a, tea.Quit
			}
			return a, nil
		}
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if a.inputsForm != nil {
			return a.updateInputsForm(msg)
		}
		return a.updateKeys(msg)

	case RatesLoadedMsg:
		first := !a.ratesLoaded
		a.ratesLoaded = true
		a.ratesFetching = false
		a.setState(a.st.WithRates(msg.Rates))

		if first && a.needSetup {
			a.setupVals = newSetupValues(a.st)
			a.setupForm = NewSetupForm(&a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case MultipliersRefreshedMsg:
		a.refreshing = false
		a.lastReport = &msg.Report
		a.setState(a.st.WithCountries(pipeline.MergeMultipliers(msg.Snapshot, a.st.Countries, msg.Countries, msg.Report.Updated)))
		return a, nil

	case spinner.TickMsg:
		if !a.ratesLoaded || a.refreshing || a.ratesFetching {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to an open form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.inputsForm != nil {
		return a.updateInputsForm(msg)
	}

	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit

	case "j", "down":
		if a.cursor < a.st.Len()-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}

	case "+", "=":
		a.setState(a.st.WithMonths(a.cursor, a.currentCountry().Months+1))
	case "-", "_":
		a.setState(a.st.WithMonths(a.cursor, a.currentCountry().Months-1))
	case "]":
		a.setState(a.st.WithMultiplier(a.cursor, stepMultiplier(a.currentCountry().Multiplier, multiplierStep)))
	case "[":
		a.setState(a.st.WithMultiplier(a.cursor, stepMultiplier(a.currentCountry().Multiplier, -multiplierStep)))

	case "e":
		a.inputVals = newInputValues(a.st.Inputs)
		a.inputsForm = newInputsForm(&a.inputVals)
		if a.width > 0 {
			a.inputsForm = a.inputsForm.WithWidth(a.width)
		}
		return a, a.inputsForm.Init()

	case "l":
		if a.refreshing {
			return a, nil
		}
		a.refreshing = true
		return a, tea.Batch(a.refreshMultipliersCmd(), a.spinner.Tick)

	case "R":
		if a.ratesFetching {
			return a, nil
		}
		a.ratesFetching = true
		return a, tea.Batch(a.loadRatesCmd(), a.spinner.Tick)

	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)

	default:
		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.cursor > 0 {
			a.cursor--
		}
	case tea.MouseButtonWheelDown:
		if a.cursor < a.st.Len()-1 {
			a.cursor++
		}
	case tea.MouseButtonLeft:
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		st, err := a.setupVals.ApplyState(a.st)
		if err != nil {
			a.log.Warn().Err(err).Msg("setup values rejected")
		} else {
			a.setState(st)
		}
		if err := a.setupVals.Save(); err != nil {
			a.log.Warn().Err(err).Msg("saving setup config")
		}
		theme.SetActive(a.setupVals.Theme)
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) updateInputsForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		a.inputsForm = nil
		return a, nil
	}

	form, cmd := a.inputsForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.inputsForm = f
	}

	switch a.inputsForm.State {
	case huh.StateCompleted:
		in, err := a.inputVals.Inputs()
		if err != nil {
			a.log.Warn().Err(err).Msg("inputs form rejected")
		} else {
			a.setState(a.st.WithInputs(in))
		}
		a.inputsForm = nil
		return a, nil
	case huh.StateAborted:
		a.inputsForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) formActive() bool {
	return a.inputsForm != nil || (a.needSetup && a.setupForm != nil)
}

func (a App) currentCountry() model.CountryConfig {
	if a.cursor < 0 || a.cursor >= a.st.Len() {
		return model.CountryConfig{}
	}
	return a.st.Countries[a.cursor]
}

// stepMultiplier adds delta and rounds to two decimals so repeated steps
// do not accumulate float error.
func stepMultiplier(m, delta float64) float64 {
	return math.Round((m+delta)*100) / 100
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.ratesLoaded {
		return a.viewLoading()
	}
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  tripcost needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ tripcost"))
	b.WriteString(subtitleStyle.Render(" · Travel Budget"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading exchange rates..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"1 2 3", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Select country"},
		}},
		{"Plan", []struct{ key, desc string }{
			{"+ -", "Months for selected country"},
			{"[ ]", "Multiplier -/+ 0.05"},
			{"e", "Edit budget inputs"},
		}},
		{"Data", []struct{ key, desc string }{
			{"l", "Refresh live multipliers"},
			{"R", "Refetch exchange rates"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.statusText(), a.refreshing || a.ratesFetching)

	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch {
	case a.inputsForm != nil:
		content = components.ContentCard("Budget Inputs", a.inputsForm.View(), cw)
	case a.activeTab == 0:
		content = a.renderPlanTab(cw)
	case a.activeTab == 1:
		content = a.renderBreakdownTab(cw)
	case a.activeTab == 2:
		content = a.renderRatesTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) statusText() string {
	switch {
	case a.refreshing:
		return a.spinner.View() + " refreshing multipliers"
	case a.ratesFetching:
		return a.spinner.View() + " fetching rates"
	}

	rates := "rates: live"
	if a.st.Rates.Fallback {
		rates = "rates: offline"
	}
	if a.lastReport != nil {
		return fmt.Sprintf("%s │ live %d/%d in %s", rates,
			len(a.lastReport.Updated),
			len(a.lastReport.Updated)+len(a.lastReport.Retained),
			cli.FormatElapsed(a.lastReport.Elapsed))
	}
	return rates
}

// ─── Commands ───────────────────────────────────────────────────

func (a App) loadRatesCmd() tea.Cmd {
	f, base, timeout, log := a.rates, a.base, a.timeout, a.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return RatesLoadedMsg{Rates: pipeline.LoadRates(ctx, f, base, log)}
	}
}

func (a App) refreshMultipliersCmd() tea.Cmd {
	f, countries, timeout, log := a.multipliers, a.st.Countries, a.timeout, a.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		updated, report := pipeline.RefreshMultipliers(ctx, f, countries, log)
		return MultipliersRefreshedMsg{Snapshot: countries, Countries: updated, Report: report}
	}
}

// ─── Helpers ────────────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

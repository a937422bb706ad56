package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/theirongolddev/tripcost/internal/config"
	"github.com/theirongolddev/tripcost/internal/model"
	"github.com/theirongolddev/tripcost/internal/pipeline"
	"github.com/theirongolddev/tripcost/internal/state"
	"github.com/theirongolddev/tripcost/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type failingRates struct{}

func (failingRates) FetchRates(context.Context, string) (map[string]float64, error) {
	return nil, errors.New("offline")
}

func newTestApp() App {
	return NewApp(Options{
		State: state.New([]model.Country{model.Italy, model.Vietnam}, model.DefaultInputs()),
		Log:   zerolog.Nop(),
	})
}

func loadedApp(t *testing.T) App {
	t.Helper()
	m, _ := newTestApp().Update(RatesLoadedMsg{Rates: model.IdentityRates("USD")})
	return m.(App)
}

func press(t *testing.T, a App, key string) (App, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0

		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			x := pos + w/2
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w
			if i < len(components.Tabs)-1 {
				pos++
			}
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Errorf("x past last tab -> %d, want -1", got)
		}
	}
}

func TestKeysIgnoredUntilRatesLoaded(t *testing.T) {
	a := newTestApp()
	a, _ = press(t, a, "+")
	if got := a.State().Countries[0].Months; got != 1 {
		t.Errorf("months = %d before load, want 1", got)
	}
}

func TestMonthKeys(t *testing.T) {
	a := loadedApp(t)

	a, _ = press(t, a, "+")
	a, _ = press(t, a, "+")
	if got := a.State().Countries[0].Months; got != 3 {
		t.Fatalf("months = %d, want 3", got)
	}

	a, _ = press(t, a, "down")
	for i := 0; i < 3; i++ {
		a, _ = press(t, a, "-")
	}
	if got := a.State().Countries[1].Months; got != 0 {
		t.Errorf("Vietnam months = %d, want 0 (floored)", got)
	}
	if a.plan.Totals.Months != 3 {
		t.Errorf("plan months = %d, want 3", a.plan.Totals.Months)
	}
}

func TestMultiplierKeys(t *testing.T) {
	a := loadedApp(t)

	a, _ = press(t, a, "]")
	if got := a.State().Countries[0].Multiplier; got != 1.05 {
		t.Errorf("multiplier = %v, want 1.05", got)
	}

	for i := 0; i < 30; i++ {
		a, _ = press(t, a, "[")
	}
	if got := a.State().Countries[0].Multiplier; got != pipeline.MinMultiplier {
		t.Errorf("multiplier = %v, want floor %v", got, pipeline.MinMultiplier)
	}
}

func TestCursorBounds(t *testing.T) {
	a := loadedApp(t)
	a, _ = press(t, a, "up")
	if a.cursor != 0 {
		t.Errorf("cursor = %d, want 0", a.cursor)
	}
	for i := 0; i < 5; i++ {
		a, _ = press(t, a, "down")
	}
	if a.cursor != 1 {
		t.Errorf("cursor = %d, want 1", a.cursor)
	}
}

func TestLiveRefreshIsGated(t *testing.T) {
	a := loadedApp(t)

	snapshot := a.State().Countries
	a, cmd := press(t, a, "l")
	if !a.refreshing || cmd == nil {
		t.Fatal("first l should start a refresh")
	}

	a, cmd = press(t, a, "l")
	if cmd != nil {
		t.Error("second l should be ignored while refreshing")
	}

	a, _ = press(t, a, "+")
	m, _ := a.Update(MultipliersRefreshedMsg{
		Snapshot:  snapshot,
		Countries: []model.CountryConfig{
			{Country: model.Italy, Months: 1, Multiplier: 1.3},
			{Country: model.Vietnam, Months: 1, Multiplier: 0.7},
		},
		Report: pipeline.RefreshReport{Updated: []model.Country{model.Italy}, Retained: []model.Country{model.Vietnam}},
	})
	a = m.(App)

	if a.refreshing {
		t.Error("refreshing should clear when results arrive")
	}
	if got := a.State().Countries[0]; got.Multiplier != 1.3 || got.Months != 2 {
		t.Errorf("Italy = %+v, want multiplier 1.3 and months 2", got)
	}
	if got := a.State().Countries[1].Multiplier; got != 0.45 {
		t.Errorf("Vietnam multiplier = %v, want 0.45 (retained)", got)
	}
}

func TestRefreshKeepsMultiplierEditedMeanwhile(t *testing.T) {
	a := loadedApp(t)
	snapshot := a.State().Countries

	a, _ = press(t, a, "l")
	a, _ = press(t, a, "]")

	m, _ := a.Update(MultipliersRefreshedMsg{
		Snapshot:  snapshot,
		Countries: []model.CountryConfig{
			{Country: model.Italy, Months: 1, Multiplier: 1.3},
			{Country: model.Vietnam, Months: 1, Multiplier: 0.7},
		},
		Report: pipeline.RefreshReport{Updated: []model.Country{model.Italy, model.Vietnam}},
	})
	a = m.(App)

	if got := a.State().Countries[0].Multiplier; got != 1.05 {
		t.Errorf("Italy multiplier = %v, want 1.05 (edit made during refresh)", got)
	}
	if got := a.State().Countries[1].Multiplier; got != 0.7 {
		t.Errorf("Vietnam multiplier = %v, want 0.7 (refreshed)", got)
	}
}

func TestLoadRatesCmdFallsBack(t *testing.T) {
	a := NewApp(Options{
		State: state.New(model.StartCountries, model.DefaultInputs()),
		Rates: failingRates{},
		Log:   zerolog.Nop(),
	})

	msg, ok := a.loadRatesCmd()().(RatesLoadedMsg)
	if !ok {
		t.Fatal("loadRatesCmd did not return RatesLoadedMsg")
	}
	if !msg.Rates.Fallback || msg.Rates.Rates["USD"] != 1 {
		t.Errorf("rates = %+v, want USD identity fallback", msg.Rates)
	}
}

func TestTabKeys(t *testing.T) {
	a := loadedApp(t)
	a, _ = press(t, a, "3")
	if a.activeTab != 2 {
		t.Errorf("activeTab = %d, want 2", a.activeTab)
	}
	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.(App).activeTab != 0 {
		t.Errorf("right from last tab = %d, want 0", m.(App).activeTab)
	}
}

func TestViewRendersTabs(t *testing.T) {
	a := loadedApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 130, Height: 40})
	a = m.(App)

	for tab, want := range []string{"Countries", "Subtotal by Country", "Exchange Rates"} {
		a.activeTab = tab
		if out := a.View(); !strings.Contains(out, want) {
			t.Errorf("tab %d view missing %q", tab, want)
		}
	}
}

func TestViewLoadingAndNarrow(t *testing.T) {
	a := newTestApp()
	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if out := m.(App).View(); !strings.Contains(out, "Loading exchange rates") {
		t.Error("expected loading view before rates arrive")
	}

	m, _ = m.Update(tea.WindowSizeMsg{Width: 40, Height: 30})
	if out := m.(App).View(); !strings.Contains(out, "too narrow") {
		t.Error("expected narrow-terminal view")
	}
}

func TestInputValuesRoundTrip(t *testing.T) {
	in := model.DefaultInputs()
	in.MonthlyIncomeUSD = 4500
	got, err := newInputValues(in).Inputs()
	if err != nil {
		t.Fatalf("Inputs() error: %v", err)
	}
	if got != in {
		t.Errorf("Inputs() = %+v, want %+v", got, in)
	}
}

func TestInputValuesParsing(t *testing.T) {
	v := newInputValues(model.DefaultInputs())
	v.Baseline = "$2,500"
	v.Income = ""
	got, err := v.Inputs()
	if err != nil {
		t.Fatalf("Inputs() error: %v", err)
	}
	if got.BaselinePerPersonUSD != 2500 {
		t.Errorf("baseline = %v, want 2500", got.BaselinePerPersonUSD)
	}
	if got.MonthlyIncomeUSD != 0 {
		t.Errorf("income = %v, want 0", got.MonthlyIncomeUSD)
	}

	v.Extras = "lots"
	if _, err := v.Inputs(); err == nil {
		t.Error("expected error for non-numeric extras")
	}
}

func TestValidators(t *testing.T) {
	if err := validateFraction("0.5"); err != nil {
		t.Errorf("validateFraction(0.5) = %v", err)
	}
	if err := validateFraction("1.5"); err == nil {
		t.Error("validateFraction(1.5) should fail")
	}
	if err := validateNumber("-3"); err == nil {
		t.Error("validateNumber(-3) should fail")
	}
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	v := SetupValuesFromConfig(cfg)
	v.Countries = []string{"japan", "Mexico"}
	v.People = 2
	v.Baseline = "1800"
	v.Theme = "tokyo-night"
	v.CacheBackend = config.CacheRedis

	if err := v.ApplyConfig(&cfg); err != nil {
		t.Fatalf("ApplyConfig: %v", err)
	}
	if got := strings.Join(cfg.General.Countries, ","); got != "Japan,Mexico" {
		t.Errorf("countries = %s", got)
	}
	if cfg.Inputs.NumPeople != 2 || cfg.Inputs.BaselinePerPersonUSD != 1800 {
		t.Errorf("inputs = %+v", cfg.Inputs)
	}
	if cfg.Inputs.SharedBaselineFraction != 0.6 {
		t.Errorf("shared baseline = %v, want default 0.6 kept", cfg.Inputs.SharedBaselineFraction)
	}
	if cfg.Appearance.Theme != "tokyo-night" || cfg.Cache.Backend != config.CacheRedis {
		t.Errorf("appearance/cache = %q/%q", cfg.Appearance.Theme, cfg.Cache.Backend)
	}

	st, err := v.ApplyState(state.New(model.StartCountries, model.DefaultInputs()))
	if err != nil {
		t.Fatalf("ApplyState: %v", err)
	}
	if st.Len() != 2 || st.Countries[0].Country != model.Japan {
		t.Errorf("state countries = %+v", st.Countries)
	}
}

func TestSetupValuesRejectUnknownCountry(t *testing.T) {
	cfg := config.DefaultConfig()
	v := SetupValuesFromConfig(cfg)
	v.Countries = []string{"Atlantis"}
	if err := v.ApplyConfig(&cfg); err == nil {
		t.Error("expected error for unknown country")
	}
}

package tui

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/tripcost/internal/config"
	"github.com/theirongolddev/tripcost/internal/model"
	"github.com/theirongolddev/tripcost/internal/state"
	"github.com/theirongolddev/tripcost/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers of the setup wizard.
type SetupValues struct {
	Countries    []string
	People       int
	Baseline     string
	Extras       string
	Income       string
	Theme        string
	CacheBackend string
}

// SetupValuesFromConfig seeds the wizard with the current configuration.
func SetupValuesFromConfig(cfg config.Config) SetupValues {
	in := newInputValues(cfg.Inputs)
	countries := cfg.General.Countries
	if len(countries) == 0 {
		countries = countryNames(model.StartCountries)
	}
	return SetupValues{
		Countries:    append([]string(nil), countries...),
		People:       in.People,
		Baseline:     in.Baseline,
		Extras:       in.Extras,
		Income:       in.Income,
		Theme:        cfg.Appearance.Theme,
		CacheBackend: cfg.Cache.Backend,
	}
}

func newSetupValues(st state.State) SetupValues {
	cfg := config.DefaultConfig()
	cfg.Inputs = st.Inputs
	names := make([]string, 0, st.Len())
	for _, c := range st.Countries {
		names = append(names, string(c.Country))
	}
	cfg.General.Countries = names
	return SetupValuesFromConfig(cfg)
}

// NewSetupForm builds the setup wizard bound to v.
func NewSetupForm(v *SetupValues) *huh.Form {
	countryOpts := make([]huh.Option[string], 0, len(model.AllCountries()))
	for _, c := range model.AllCountries() {
		countryOpts = append(countryOpts, huh.NewOption(string(c), string(c)))
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to tripcost").
				Description("Plan a multi-country trip and see what it costs.\nThese answers become your defaults."),
			huh.NewMultiSelect[string]().
				Title("Countries").
				Description("Each starts at one month with its default cost multiplier.").
				Options(countryOpts...).
				Value(&v.Countries).
				Validate(func(s []string) error {
					if len(s) == 0 {
						return errors.New("pick at least one country")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Travelers").
				Options(
					huh.NewOption("1 person", 1),
					huh.NewOption("2 people", 2),
				).
				Value(&v.People),
			huh.NewInput().
				Title("Baseline per person (USD/month)").
				Description("Rent, food, transport in a reference-priced city.").
				Value(&v.Baseline).
				Validate(validateNumber),
			huh.NewInput().
				Title("Extras per person (USD/month)").
				Value(&v.Extras).
				Validate(validateNumber),
			huh.NewInput().
				Title("Monthly income (USD)").
				Value(&v.Income).
				Validate(validateNumber),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.Theme),
			huh.NewSelect[string]().
				Title("Cache for fetched rates").
				Options(
					huh.NewOption("SQLite file (default)", config.CacheSQLite),
					huh.NewOption("Redis", config.CacheRedis),
				).
				Value(&v.CacheBackend),
		),
	).WithShowHelp(true)
}

// ApplyConfig writes the answers into cfg.
func (v SetupValues) ApplyConfig(cfg *config.Config) error {
	countries, err := model.ParseCountries(v.Countries)
	if err != nil {
		return err
	}
	in, err := v.inputs(cfg.Inputs)
	if err != nil {
		return err
	}

	cfg.General.Countries = countryNames(countries)
	cfg.Inputs = in
	cfg.Appearance.Theme = theme.ByName(v.Theme).Name
	if v.CacheBackend != "" {
		cfg.Cache.Backend = v.CacheBackend
	}
	return nil
}

// ApplyState returns st reseeded with the chosen countries and inputs.
func (v SetupValues) ApplyState(st state.State) (state.State, error) {
	countries, err := model.ParseCountries(v.Countries)
	if err != nil {
		return st, err
	}
	in, err := v.inputs(st.Inputs)
	if err != nil {
		return st, err
	}
	return state.New(countries, in).WithRates(st.Rates), nil
}

// Save applies the answers to the on-disk config.
func (v SetupValues) Save() error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	if err := v.ApplyConfig(&cfg); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

// inputs overlays the wizard's fields on base.
func (v SetupValues) inputs(base model.Inputs) (model.Inputs, error) {
	vals := newInputValues(base)
	vals.People = v.People
	vals.Baseline = v.Baseline
	vals.Extras = v.Extras
	vals.Income = v.Income
	return vals.Inputs()
}

func countryNames(cs []model.Country) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, string(c))
	}
	return out
}

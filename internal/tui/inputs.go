package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/tripcost/internal/model"

	"github.com/charmbracelet/huh"
)

// inputValues backs the inputs form. Numbers are edited as text and parsed
// on submit.
type inputValues struct {
	Baseline       string
	Extras         string
	People         int
	SharedBaseline string
	SharedExtras   string
	Income         string
	Emergency      string
}

func newInputValues(in model.Inputs) inputValues {
	return inputValues{
		Baseline:       formatFloat(in.BaselinePerPersonUSD),
		Extras:         formatFloat(in.ExtrasPerPersonUSD),
		People:         in.NumPeople,
		SharedBaseline: formatFloat(in.SharedBaselineFraction),
		SharedExtras:   formatFloat(in.SharedExtrasFraction),
		Income:         formatFloat(in.MonthlyIncomeUSD),
		Emergency:      formatFloat(in.EmergencyPercent),
	}
}

// Inputs parses the form values. Range clamping is left to the state.
func (v inputValues) Inputs() (model.Inputs, error) {
	var errs []error
	parse := func(name, raw string) float64 {
		f, err := parseNumber(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		return f
	}

	in := model.Inputs{
		BaselinePerPersonUSD:   parse("baseline", v.Baseline),
		ExtrasPerPersonUSD:     parse("extras", v.Extras),
		NumPeople:              v.People,
		SharedBaselineFraction: parse("shared baseline", v.SharedBaseline),
		SharedExtrasFraction:   parse("shared extras", v.SharedExtras),
		MonthlyIncomeUSD:       parse("income", v.Income),
		EmergencyPercent:       parse("emergency", v.Emergency),
	}
	return in, errors.Join(errs...)
}

func newInputsForm(v *inputValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Baseline per person (USD/month)").
				Value(&v.Baseline).
				Validate(validateNumber),
			huh.NewInput().
				Title("Extras per person (USD/month)").
				Value(&v.Extras).
				Validate(validateNumber),
			huh.NewSelect[int]().
				Title("Travelers").
				Options(
					huh.NewOption("1 person", 1),
					huh.NewOption("2 people", 2),
				).
				Value(&v.People),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Shared baseline fraction (0-1)").
				Description("Portion of baseline costs a couple shares, like rent.").
				Value(&v.SharedBaseline).
				Validate(validateFraction),
			huh.NewInput().
				Title("Shared extras fraction (0-1)").
				Value(&v.SharedExtras).
				Validate(validateFraction),
			huh.NewInput().
				Title("Monthly income (USD)").
				Value(&v.Income).
				Validate(validateNumber),
			huh.NewInput().
				Title("Emergency buffer (%)").
				Value(&v.Emergency).
				Validate(validateNumber),
		),
	).WithShowHelp(true)
}

func parseNumber(raw string) (float64, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	raw = strings.TrimPrefix(raw, "$")
	if raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return f, nil
}

func validateNumber(raw string) error {
	f, err := parseNumber(raw)
	if err != nil {
		return err
	}
	if f < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func validateFraction(raw string) error {
	f, err := parseNumber(raw)
	if err != nil {
		return err
	}
	if f < 0 || f > 1 {
		return errors.New("must be between 0 and 1")
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

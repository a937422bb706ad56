// Package state holds the countries, inputs, and rates a host edits.
// Every mutation returns a new State; the receiver is never modified.
package state

import (
	"github.com/theirongolddev/tripcost/internal/model"
	"github.com/theirongolddev/tripcost/internal/pipeline"
)

// State is a snapshot of everything a plan is computed from.
type State struct {
	Countries []model.CountryConfig `json:"countries"`
	Inputs    model.Inputs          `json:"inputs"`
	Rates     model.RateSet         `json:"rates"`
}

// New seeds a state with one month in each starting country at its
// default multiplier.
func New(starting []model.Country, inputs model.Inputs) State {
	countries := make([]model.CountryConfig, 0, len(starting))
	for _, c := range starting {
		countries = append(countries, model.CountryConfig{
			Country:    c,
			Months:     1,
			Multiplier: c.DefaultMultiplier(),
		})
	}
	return State{
		Countries: countries,
		Inputs:    pipeline.ClampInputs(inputs),
		Rates:     model.IdentityRates(pipeline.DefaultBaseCurrency),
	}
}

// Len returns the number of countries.
func (s State) Len() int {
	return len(s.Countries)
}

// WithMonths sets the months for the country at index i.
func (s State) WithMonths(i, months int) State {
	if i < 0 || i >= len(s.Countries) {
		return s
	}
	out := s.clone()
	out.Countries[i].Months = pipeline.ClampMonths(months)
	return out
}

// WithMultiplier sets the multiplier for the country at index i.
func (s State) WithMultiplier(i int, multiplier float64) State {
	if i < 0 || i >= len(s.Countries) {
		return s
	}
	out := s.clone()
	out.Countries[i].Multiplier = pipeline.ClampMultiplier(multiplier)
	return out
}

// WithInputs replaces the inputs.
func (s State) WithInputs(in model.Inputs) State {
	out := s.clone()
	out.Inputs = pipeline.ClampInputs(in)
	return out
}

// WithCountries replaces the whole country list.
func (s State) WithCountries(countries []model.CountryConfig) State {
	out := s
	out.Countries = make([]model.CountryConfig, len(countries))
	for i, c := range countries {
		out.Countries[i] = pipeline.ClampCountry(c)
	}
	return out
}

// WithRates replaces the rate table.
func (s State) WithRates(r model.RateSet) State {
	out := s.clone()
	out.Rates = r
	return out
}

// Plan computes the plan for the current state.
func (s State) Plan() model.PlanOutput {
	return pipeline.ComputePlan(s.Countries, s.Inputs)
}

// Affordability compares the current plan with the monthly income.
func (s State) Affordability() model.Affordability {
	return pipeline.Affordability(s.Plan(), s.Inputs)
}

func (s State) clone() State {
	out := s
	out.Countries = make([]model.CountryConfig, len(s.Countries))
	copy(out.Countries, s.Countries)
	return out
}

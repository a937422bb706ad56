package state

import (
	"testing"

	"github.com/theirongolddev/tripcost/internal/model"
)

func newTestState() State {
	return New([]model.Country{model.Italy, model.Vietnam}, model.DefaultInputs())
}

func TestNew(t *testing.T) {
	s := newTestState()
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if s.Countries[1].Multiplier != 0.45 {
		t.Errorf("Vietnam multiplier = %v, want 0.45", s.Countries[1].Multiplier)
	}
	for _, c := range s.Countries {
		if c.Months != 1 {
			t.Errorf("%s months = %d, want 1", c.Country, c.Months)
		}
	}
	if !s.Rates.Fallback || s.Rates.Base != "USD" {
		t.Errorf("initial rates = %+v, want USD identity", s.Rates)
	}
}

func TestWithMonths_DoesNotMutateReceiver(t *testing.T) {
	s := newTestState()
	next := s.WithMonths(0, 4)

	if next.Countries[0].Months != 4 {
		t.Errorf("next months = %d, want 4", next.Countries[0].Months)
	}
	if s.Countries[0].Months != 1 {
		t.Errorf("original months = %d, want 1", s.Countries[0].Months)
	}
}

func TestWithMonths_ClampsNegative(t *testing.T) {
	s := newTestState().WithMonths(1, -3)
	if s.Countries[1].Months != 0 {
		t.Errorf("months = %d, want 0", s.Countries[1].Months)
	}
}

func TestWithMultiplier_Floor(t *testing.T) {
	s := newTestState().WithMultiplier(0, 0.01)
	if s.Countries[0].Multiplier != 0.1 {
		t.Errorf("multiplier = %v, want 0.1", s.Countries[0].Multiplier)
	}
}

func TestOutOfRangeIndexIsNoop(t *testing.T) {
	s := newTestState()
	for _, i := range []int{-1, 2, 99} {
		if got := s.WithMonths(i, 5); got.Countries[0].Months != 1 || got.Countries[1].Months != 1 {
			t.Errorf("WithMonths(%d) changed state: %+v", i, got.Countries)
		}
		if got := s.WithMultiplier(i, 3); got.Countries[0].Multiplier != 1.0 {
			t.Errorf("WithMultiplier(%d) changed state: %+v", i, got.Countries)
		}
	}
}

func TestWithInputs_Clamps(t *testing.T) {
	s := newTestState().WithInputs(model.Inputs{
		BaselinePerPersonUSD:   -5,
		NumPeople:              7,
		SharedBaselineFraction: 2,
		EmergencyPercent:       150,
	})
	if s.Inputs.BaselinePerPersonUSD != 0 {
		t.Errorf("baseline = %v, want 0", s.Inputs.BaselinePerPersonUSD)
	}
	if s.Inputs.NumPeople != 2 {
		t.Errorf("people = %d, want 2", s.Inputs.NumPeople)
	}
	if s.Inputs.SharedBaselineFraction != 1 {
		t.Errorf("shared = %v, want 1", s.Inputs.SharedBaselineFraction)
	}
	if s.Inputs.EmergencyPercent != 100 {
		t.Errorf("emergency = %v, want 100", s.Inputs.EmergencyPercent)
	}
}

func TestWithCountries_CopiesSlice(t *testing.T) {
	src := []model.CountryConfig{{Country: model.Spain, Months: 2, Multiplier: 0.9}}
	s := newTestState().WithCountries(src)
	src[0].Months = 9

	if s.Countries[0].Months != 2 {
		t.Errorf("months = %d, want 2 (slice should be copied)", s.Countries[0].Months)
	}
}

func TestWithRates(t *testing.T) {
	r := model.RateSet{Base: "USD", Rates: map[string]float64{"USD": 1, "EUR": 0.9}}
	s := newTestState()
	next := s.WithRates(r)

	if next.Rates.Fallback {
		t.Error("next rates should not be fallback")
	}
	if !s.Rates.Fallback {
		t.Error("original rates changed")
	}
}

func TestPlan(t *testing.T) {
	s := New([]model.Country{model.Italy}, model.Inputs{
		BaselinePerPersonUSD: 2000,
		ExtrasPerPersonUSD:   500,
		NumPeople:            1,
		EmergencyPercent:     10,
	}).WithMonths(0, 2)

	out := s.Plan()
	if out.Totals.GrandTotalUSD != 5500 {
		t.Errorf("grand total = %v, want 5500", out.Totals.GrandTotalUSD)
	}
	if out.Totals.MonthlyAvgUSD != 2750 {
		t.Errorf("monthly avg = %v, want 2750", out.Totals.MonthlyAvgUSD)
	}
}

func TestAffordability(t *testing.T) {
	in := model.DefaultInputs()
	in.MonthlyIncomeUSD = 1000
	s := New([]model.Country{model.Italy}, in)

	a := s.Affordability()
	if a.MonthlyIncomeUSD != 1000 {
		t.Errorf("income = %v, want 1000", a.MonthlyIncomeUSD)
	}
	if a.MonthlyGapUSD <= 0 {
		t.Errorf("gap = %v, want positive", a.MonthlyGapUSD)
	}
}

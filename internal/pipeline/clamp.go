package pipeline

import (
	"math"

	"github.com/theirongolddev/tripcost/internal/model"
)

// MinMultiplier is the floor applied to every cost-of-living multiplier.
const MinMultiplier = 0.1

// ClampInputs pulls every field of in into its valid range.
// NaN values fall to the lower bound.
func ClampInputs(in model.Inputs) model.Inputs {
	in.BaselinePerPersonUSD = clampMoney(in.BaselinePerPersonUSD)
	in.ExtrasPerPersonUSD = clampMoney(in.ExtrasPerPersonUSD)
	in.MonthlyIncomeUSD = clampMoney(in.MonthlyIncomeUSD)
	in.NumPeople = ClampPeople(in.NumPeople)
	in.SharedBaselineFraction = clampFloat(in.SharedBaselineFraction, 0, 1)
	in.SharedExtrasFraction = clampFloat(in.SharedExtrasFraction, 0, 1)
	in.EmergencyPercent = clampFloat(in.EmergencyPercent, 0, 100)
	return in
}

// ClampCountry floors months at 0 and the multiplier at MinMultiplier.
func ClampCountry(c model.CountryConfig) model.CountryConfig {
	c.Months = ClampMonths(c.Months)
	c.Multiplier = ClampMultiplier(c.Multiplier)
	return c
}

// ClampMonths floors a duration at zero.
func ClampMonths(m int) int {
	if m < 0 {
		return 0
	}
	return m
}

// ClampMultiplier floors a multiplier at MinMultiplier.
func ClampMultiplier(m float64) float64 {
	if math.IsNaN(m) || m < MinMultiplier {
		return MinMultiplier
	}
	return m
}

// ClampPeople restricts the household size to 1 or 2.
func ClampPeople(n int) int {
	switch {
	case n < 1:
		return 1
	case n > 2:
		return 2
	}
	return n
}

func clampMoney(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package pipeline computes travel budget plans and applies fetched data to them.
package pipeline

import (
	"github.com/theirongolddev/tripcost/internal/model"
)

// ComputePlan turns a country list and household inputs into per-country rows
// and aggregate totals. It is pure and clamps out-of-range values instead of
// failing. Rows preserve input order.
func ComputePlan(countries []model.CountryConfig, inputs model.Inputs) model.PlanOutput {
	in := ClampInputs(inputs)

	baselinePeople := effectivePeople(in.NumPeople, in.SharedBaselineFraction)
	extrasPeople := effectivePeople(in.NumPeople, in.SharedExtrasFraction)

	out := model.PlanOutput{
		ByCountry: make([]model.CountryRow, 0, len(countries)),
	}

	// Single-person cost sums, used for the per-person split.
	var soloBaseline, soloExtras float64

	for _, raw := range countries {
		c := ClampCountry(raw)

		monthlyBaseline := in.BaselinePerPersonUSD * c.Multiplier
		monthlyExtras := in.ExtrasPerPersonUSD * c.Multiplier
		months := float64(c.Months)

		row := model.CountryRow{
			Country:                     c.Country,
			Months:                      c.Months,
			BaselineUSD:                 monthlyBaseline * months * baselinePeople,
			ExtrasUSD:                   monthlyExtras * months * extrasPeople,
			MonthlyBaselinePerPersonUSD: monthlyBaseline,
			MonthlyExtrasPerPersonUSD:   monthlyExtras,
		}
		row.SubtotalUSD = row.BaselineUSD + row.ExtrasUSD

		out.Totals.Months += c.Months
		out.Totals.BaselineUSD += row.BaselineUSD
		out.Totals.ExtrasUSD += row.ExtrasUSD
		soloBaseline += monthlyBaseline * months
		soloExtras += monthlyExtras * months

		out.ByCountry = append(out.ByCountry, row)
	}

	t := &out.Totals
	t.SubtotalUSD = t.BaselineUSD + t.ExtrasUSD
	t.EmergencyUSD = t.SubtotalUSD * in.EmergencyPercent / 100
	t.GrandTotalUSD = t.SubtotalUSD + t.EmergencyUSD
	if t.Months > 0 {
		t.MonthlyAvgUSD = t.GrandTotalUSD / float64(t.Months)
	}

	if in.NumPeople == 2 {
		// Each person pays their unshared portion plus half the shared portion.
		emergencyFactor := 1 + in.EmergencyPercent/100
		yours := (personShare(soloBaseline, in.SharedBaselineFraction) +
			personShare(soloExtras, in.SharedExtrasFraction)) * emergencyFactor
		partner := t.GrandTotalUSD - yours
		t.YourShareUSD = yours
		t.PartnerShareUSD = &partner
	} else {
		t.YourShareUSD = t.GrandTotalUSD
	}

	return out
}

// effectivePeople blends per-person duplication and household sharing.
// A fully shared cost counts once; a fully unshared one scales with numPeople.
func effectivePeople(numPeople int, sharedFraction float64) float64 {
	if numPeople != 2 {
		return 1
	}
	n := float64(numPeople)
	return n - (n-1)*sharedFraction
}

// personShare is one person's part of a two-person cost whose single-person
// amount is solo.
func personShare(solo, sharedFraction float64) float64 {
	return solo*(1-sharedFraction) + solo*sharedFraction/2
}

// Affordability relates the plan's monthly average to the household income.
func Affordability(out model.PlanOutput, inputs model.Inputs) model.Affordability {
	income := clampMoney(inputs.MonthlyIncomeUSD)
	avg := out.Totals.MonthlyAvgUSD

	a := model.Affordability{
		MonthlyIncomeUSD: income,
		MonthlyGapUSD:    avg - income,
	}
	if avg > 0 {
		a.IncomeCoverage = income / avg
		a.EmergencyMonths = out.Totals.EmergencyUSD / avg
	}
	return a
}

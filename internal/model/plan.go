package model

// CountryConfig is one travel destination in a plan.
type CountryConfig struct {
	Country    Country `json:"country"`
	Months     int     `json:"months"`
	Multiplier float64 `json:"multiplier"`
}

// Inputs holds the household-wide budget parameters.
type Inputs struct {
	BaselinePerPersonUSD   float64 `json:"baselinePerPersonUSD" toml:"baseline_per_person_usd"`
	ExtrasPerPersonUSD     float64 `json:"extrasPerPersonUSD" toml:"extras_per_person_usd"`
	NumPeople              int     `json:"numPeople" toml:"num_people"`
	SharedBaselineFraction float64 `json:"sharedBaselineFraction" toml:"shared_baseline_fraction"`
	SharedExtrasFraction   float64 `json:"sharedExtrasFraction" toml:"shared_extras_fraction"`
	MonthlyIncomeUSD       float64 `json:"monthlyIncomeUSD" toml:"monthly_income_usd"`
	EmergencyPercent       float64 `json:"emergencyPercent" toml:"emergency_percent"`
}

// DefaultInputs returns the inputs a new plan starts with.
func DefaultInputs() Inputs {
	return Inputs{
		BaselinePerPersonUSD:   2100,
		ExtrasPerPersonUSD:     700,
		NumPeople:              1,
		SharedBaselineFraction: 0.6,
		SharedExtrasFraction:   0.1,
		MonthlyIncomeUSD:       0,
		EmergencyPercent:       8,
	}
}

// CountryRow is the per-country cost breakdown.
type CountryRow struct {
	Country     Country `json:"country"`
	Months      int     `json:"months"`
	BaselineUSD float64 `json:"baselineUSD"`
	ExtrasUSD   float64 `json:"extrasUSD"`
	SubtotalUSD float64 `json:"subtotalUSD"`

	// Per-person monthly figures after the country multiplier.
	MonthlyBaselinePerPersonUSD float64 `json:"monthlyBaselinePerPersonUSD"`
	MonthlyExtrasPerPersonUSD   float64 `json:"monthlyExtrasPerPersonUSD"`
}

// PlanTotals holds the aggregate figures across all countries.
type PlanTotals struct {
	Months          int      `json:"months"`
	BaselineUSD     float64  `json:"baselineUSD"`
	ExtrasUSD       float64  `json:"extrasUSD"`
	SubtotalUSD     float64  `json:"subtotalUSD"`
	EmergencyUSD    float64  `json:"emergencyUSD"`
	GrandTotalUSD   float64  `json:"grandTotalUSD"`
	MonthlyAvgUSD   float64  `json:"monthlyAvgUSD"`
	YourShareUSD    float64  `json:"yourShareUSD"`
	PartnerShareUSD *float64 `json:"partnerShareUSD,omitempty"`
}

// PlanOutput is the result of a plan computation. It is never persisted.
type PlanOutput struct {
	ByCountry []CountryRow `json:"byCountry"`
	Totals    PlanTotals   `json:"totals"`
}

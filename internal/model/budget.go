package model

// Affordability relates a plan's monthly cost to household income.
type Affordability struct {
	MonthlyIncomeUSD float64 `json:"monthlyIncomeUSD"`
	// MonthlyGapUSD is monthly average cost minus income; positive means a shortfall.
	MonthlyGapUSD  float64 `json:"monthlyGapUSD"`
	IncomeCoverage float64 `json:"incomeCoverage"` // income / monthly average, 0 when no months
	// EmergencyMonths is how many average months the emergency fund covers.
	EmergencyMonths float64 `json:"emergencyMonths"`
}

package model

import "time"

// RateSet holds exchange rates relative to a base currency.
type RateSet struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
	// FetchedAt is when the provider produced the rates, not when they were
	// last read from a cache.
	FetchedAt time.Time `json:"fetchedAt"`
	// Fallback is true when the set was substituted after a failed fetch.
	Fallback bool `json:"fallback"`
}

// IdentityRates returns the single-entry fallback {base: 1}.
func IdentityRates(base string) RateSet {
	return RateSet{
		Base:      base,
		Rates:     map[string]float64{base: 1},
		FetchedAt: time.Now(),
		Fallback:  true,
	}
}

// Rate returns the rate for code, and whether it is known.
func (r RateSet) Rate(code string) (float64, bool) {
	v, ok := r.Rates[code]
	return v, ok
}

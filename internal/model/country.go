package model

import (
	"fmt"
	"strings"
)

// Country identifies a supported travel destination.
type Country string

// Supported countries. The first six form the default starting list.
const (
	Portugal Country = "Portugal"
	Italy    Country = "Italy"
	France   Country = "France"
	UK       Country = "UK"
	Spain    Country = "Spain"
	Vietnam  Country = "Vietnam"
	Germany  Country = "Germany"
	Greece   Country = "Greece"
	Mexico   Country = "Mexico"
	Thailand Country = "Thailand"
	Japan    Country = "Japan"
)

// CountryInfo holds static per-country reference data.
type CountryInfo struct {
	DefaultMultiplier float64
	// UrbanArea is the Teleport urban-area slug used for live lookups.
	UrbanArea string
}

// countryTable maps each supported country to its reference data.
var countryTable = map[Country]CountryInfo{
	Portugal: {DefaultMultiplier: 0.80, UrbanArea: "lisbon"},
	Italy:    {DefaultMultiplier: 1.00, UrbanArea: "rome"},
	France:   {DefaultMultiplier: 1.10, UrbanArea: "paris"},
	UK:       {DefaultMultiplier: 1.20, UrbanArea: "london"},
	Spain:    {DefaultMultiplier: 0.90, UrbanArea: "madrid"},
	Vietnam:  {DefaultMultiplier: 0.45, UrbanArea: "saigon"},
	Germany:  {DefaultMultiplier: 1.05, UrbanArea: "berlin"},
	Greece:   {DefaultMultiplier: 0.75, UrbanArea: "athens"},
	Mexico:   {DefaultMultiplier: 0.60, UrbanArea: "mexico-city"},
	Thailand: {DefaultMultiplier: 0.50, UrbanArea: "bangkok"},
	Japan:    {DefaultMultiplier: 1.00, UrbanArea: "tokyo"},
}

// StartCountries is the starting country list used when config names none.
var StartCountries = []Country{Portugal, Italy, France, UK, Spain, Vietnam}

// AllCountries returns every supported country in display order.
func AllCountries() []Country {
	return []Country{Portugal, Italy, France, UK, Spain, Vietnam, Germany, Greece, Mexico, Thailand, Japan}
}

// Info returns the reference data for c and whether c is supported.
func (c Country) Info() (CountryInfo, bool) {
	info, ok := countryTable[c]
	return info, ok
}

// DefaultMultiplier returns the built-in multiplier for c, or 1 if unknown.
func (c Country) DefaultMultiplier() float64 {
	if info, ok := countryTable[c]; ok {
		return info.DefaultMultiplier
	}
	return 1
}

// Valid reports whether c is in the supported set.
func (c Country) Valid() bool {
	_, ok := countryTable[c]
	return ok
}

// ParseCountry resolves a case-insensitive country name.
func ParseCountry(raw string) (Country, error) {
	name := strings.TrimSpace(raw)
	for c := range countryTable {
		if strings.EqualFold(string(c), name) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unsupported country %q", raw)
}

// ParseCountries resolves a list of names, failing on the first unknown one.
func ParseCountries(names []string) ([]Country, error) {
	out := make([]Country, 0, len(names))
	for _, n := range names {
		c, err := ParseCountry(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

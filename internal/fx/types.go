package fx

// LatestResponse is the raw body of the provider's latest-rates endpoint.
type LatestResponse struct {
	Success *bool              `json:"success,omitempty"`
	Base    string             `json:"base"`
	Date    string             `json:"date"`
	Rates   map[string]float64 `json:"rates"`
}

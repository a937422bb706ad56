package teleport

// ScoresResponse is the raw body of the urban-area scores endpoint.
type ScoresResponse struct {
	Categories []Category `json:"categories"`
	Summary    string     `json:"summary"`
	CityScore  float64    `json:"teleport_city_score"`
}

// Category is one scored quality-of-life dimension.
type Category struct {
	Name  string   `json:"name"`
	Color string   `json:"color"`
	Score *float64 `json:"score_out_of_10"`
}

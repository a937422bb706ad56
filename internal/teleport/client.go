// Package teleport fetches live cost-of-living multipliers from the Teleport
// urban-area scores API.
package teleport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/theirongolddev/tripcost/internal/model"
)

const (
	// DefaultBaseURL is the public Teleport API root.
	DefaultBaseURL = "https://api.teleport.org/api"
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB

	costOfLivingCategory = "Cost of Living"
	minMultiplier        = 0.1
)

var (
	// ErrNoData indicates the provider has no cost-of-living score for the country.
	ErrNoData = errors.New("teleport: no cost-of-living data")
	// ErrUnknownCountry indicates the country has no urban-area mapping.
	ErrUnknownCountry = errors.New("teleport: unknown country")
)

// Client fetches cost-of-living scores over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for baseURL, or DefaultBaseURL when empty.
func NewClient(baseURL string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchMultiplier returns the live multiplier for country c.
func (c *Client) FetchMultiplier(ctx context.Context, country model.Country) (float64, error) {
	info, ok := country.Info()
	if !ok || info.UrbanArea == "" {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCountry, country)
	}

	body, err := c.get(ctx, fmt.Sprintf("/urban_areas/slug:%s/scores/", info.UrbanArea))
	if err != nil {
		return 0, err
	}

	var raw ScoresResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return 0, fmt.Errorf("teleport: parsing scores: %w", err)
	}

	score, ok := costOfLivingScore(raw.Categories)
	if !ok {
		return 0, fmt.Errorf("%w for %s", ErrNoData, country)
	}
	return ScoreToMultiplier(score), nil
}

// ScoreToMultiplier converts a 0-10 cost-of-living score (higher is cheaper)
// into a multiplier. A score of 5 maps to 1.0. Result is rounded to two
// decimals and floored at 0.1.
func ScoreToMultiplier(score float64) float64 {
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}
	m := math.Round((10-score)/5*100) / 100
	if m < minMultiplier {
		return minMultiplier
	}
	return m
}

func costOfLivingScore(categories []Category) (float64, bool) {
	for _, cat := range categories {
		if !strings.EqualFold(cat.Name, costOfLivingCategory) {
			continue
		}
		if cat.Score == nil || math.IsNaN(*cat.Score) {
			return 0, false
		}
		return *cat.Score, true
	}
	return 0, false
}

// get performs a GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("teleport: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "github.com/theirongolddev/tripcost/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("teleport: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoData
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("teleport: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("teleport: reading response: %w", err)
	}
	return body, nil
}

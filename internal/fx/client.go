// Package fx fetches currency exchange rates from an exchangerate.host-style API.
package fx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public exchangerate.host endpoint.
	DefaultBaseURL = "https://api.exchangerate.host"
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

var (
	// ErrNoRates indicates the provider answered without a rates table.
	ErrNoRates = errors.New("fx: response contained no rates")
	// ErrRateLimited indicates the provider rate limit was hit.
	ErrRateLimited = errors.New("fx: rate limited")
)

// Client fetches exchange rates over HTTP.
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

// FetchRates returns the latest rates relative to base.
func (c *Client) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	q := url.Values{}
	q.Set("base", strings.ToUpper(base))

	body, err := c.get(ctx, "/latest?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var raw LatestResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("fx: parsing rates: %w", err)
	}
	if raw.Success != nil && !*raw.Success {
		return nil, ErrNoRates
	}
	if len(raw.Rates) == 0 {
		return nil, ErrNoRates
	}
	return raw.Rates, nil
}

// get performs a GET request and returns the response body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("fx: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "github.com/theirongolddev/tripcost/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fx: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fx: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("fx: reading response: %w", err)
	}
	return body, nil
}

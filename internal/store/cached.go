package store

import (
	"context"
	"time"

	"github.com/theirongolddev/tripcost/internal/model"

	"github.com/rs/zerolog"
)

// RateFetcher matches pipeline.RateFetcher.
type RateFetcher interface {
	FetchRates(ctx context.Context, base string) (map[string]float64, error)
}

// MultiplierFetcher matches pipeline.MultiplierFetcher.
type MultiplierFetcher interface {
	FetchMultiplier(ctx context.Context, c model.Country) (float64, error)
}

// CachedRates serves fresh cached rates and records successful fetches.
// Cache errors are logged and otherwise ignored.
type CachedRates struct {
	Next    RateFetcher
	Backend Backend
	TTL     time.Duration
	Log     zerolog.Logger
	now     func() time.Time
}

// FetchRates implements RateFetcher.
func (c *CachedRates) FetchRates(ctx context.Context, base string) (map[string]float64, error) {
	rates, _, err := c.FetchRatesDated(ctx, base)
	return rates, err
}

// FetchRatesDated is FetchRates plus the time the rates were fetched from
// the provider, which is the cache entry's time on a hit.
func (c *CachedRates) FetchRatesDated(ctx context.Context, base string) (map[string]float64, time.Time, error) {
	now := c.clock()
	if e, ok, err := c.Backend.GetRates(ctx, base); err != nil {
		c.Log.Debug().Err(err).Str("base", base).Msg("rate cache read failed")
	} else if ok && now.Sub(e.FetchedAt) < c.TTL && len(e.Rates) > 0 {
		c.Log.Debug().Str("base", base).Time("fetched_at", e.FetchedAt).Msg("rates served from cache")
		return e.Rates, e.FetchedAt, nil
	}

	rates, err := c.Next.FetchRates(ctx, base)
	if err != nil {
		return nil, time.Time{}, err
	}
	if err := c.Backend.PutRates(ctx, base, RateEntry{Rates: rates, FetchedAt: now}); err != nil {
		c.Log.Debug().Err(err).Str("base", base).Msg("rate cache write failed")
	}
	return rates, now, nil
}

func (c *CachedRates) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

// CachedMultipliers serves fresh cached multipliers and records successful fetches.
type CachedMultipliers struct {
	Next    MultiplierFetcher
	Backend Backend
	TTL     time.Duration
	Log     zerolog.Logger
	now     func() time.Time
}

// FetchMultiplier implements MultiplierFetcher.
func (c *CachedMultipliers) FetchMultiplier(ctx context.Context, country model.Country) (float64, error) {
	now := c.clock()
	if e, ok, err := c.Backend.GetMultiplier(ctx, country); err != nil {
		c.Log.Debug().Err(err).Str("country", string(country)).Msg("multiplier cache read failed")
	} else if ok && now.Sub(e.FetchedAt) < c.TTL {
		return e.Multiplier, nil
	}

	m, err := c.Next.FetchMultiplier(ctx, country)
	if err != nil {
		return 0, err
	}
	if err := c.Backend.PutMultiplier(ctx, country, MultiplierEntry{Multiplier: m, FetchedAt: now}); err != nil {
		c.Log.Debug().Err(err).Str("country", string(country)).Msg("multiplier cache write failed")
	}
	return m, nil
}

func (c *CachedMultipliers) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

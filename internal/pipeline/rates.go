package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/theirongolddev/tripcost/internal/model"

	"github.com/rs/zerolog"
)

// DefaultBaseCurrency is used when no base currency is configured.
const DefaultBaseCurrency = "USD"

// RateFetcher fetches exchange rates relative to a base currency.
type RateFetcher interface {
	FetchRates(ctx context.Context, base string) (map[string]float64, error)
}

// DatedRateFetcher is implemented by fetchers that can return rates fetched
// earlier, such as a cache. LoadRates uses it to report the real fetch time.
type DatedRateFetcher interface {
	FetchRatesDated(ctx context.Context, base string) (map[string]float64, time.Time, error)
}

// NormalizeCurrency upper-cases a currency code, defaulting to USD.
func NormalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultBaseCurrency
	}
	return code
}

// LoadRates fetches rates for base and never fails: any error or empty
// result is replaced with the identity set {base: 1}.
func LoadRates(ctx context.Context, f RateFetcher, base string, log zerolog.Logger) model.RateSet {
	base = NormalizeCurrency(base)
	if f == nil {
		return model.IdentityRates(base)
	}

	start := time.Now()
	rates, fetchedAt, err := fetchRates(ctx, f, base)
	if err != nil {
		log.Warn().Err(err).Str("base", base).Msg("rate fetch failed, using identity rates")
		return model.IdentityRates(base)
	}
	if len(rates) == 0 {
		log.Warn().Str("base", base).Msg("rate provider returned no rates, using identity rates")
		return model.IdentityRates(base)
	}

	set := make(map[string]float64, len(rates)+1)
	for code, v := range rates {
		set[strings.ToUpper(code)] = v
	}
	if _, ok := set[base]; !ok {
		set[base] = 1
	}

	log.Debug().
		Str("base", base).
		Int("currencies", len(set)).
		Time("fetched_at", fetchedAt).
		Dur("elapsed", time.Since(start)).
		Msg("rates loaded")

	return model.RateSet{Base: base, Rates: set, FetchedAt: fetchedAt}
}

func fetchRates(ctx context.Context, f RateFetcher, base string) (map[string]float64, time.Time, error) {
	if df, ok := f.(DatedRateFetcher); ok {
		rates, at, err := df.FetchRatesDated(ctx, base)
		if at.IsZero() {
			at = time.Now()
		}
		return rates, at, err
	}
	rates, err := f.FetchRates(ctx, base)
	return rates, time.Now(), err
}

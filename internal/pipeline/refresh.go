package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/theirongolddev/tripcost/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MultiplierFetcher fetches a live cost-of-living multiplier for one country.
// An error means no value is available for that country.
type MultiplierFetcher interface {
	FetchMultiplier(ctx context.Context, c model.Country) (float64, error)
}

// RefreshReport summarizes one multiplier refresh batch.
type RefreshReport struct {
	BatchID  string          `json:"batchId"`
	Updated  []model.Country `json:"updated"`
	Retained []model.Country `json:"retained"`
	Elapsed  time.Duration   `json:"elapsed"`
}

type fetchResult struct {
	value float64
	err   error
}

// RefreshMultipliers fetches every country's multiplier in parallel and
// returns a new list once all fetches have finished. Countries whose fetch
// failed keep their current multiplier. countries is not modified.
func RefreshMultipliers(
	ctx context.Context,
	f MultiplierFetcher,
	countries []model.CountryConfig,
	log zerolog.Logger,
) ([]model.CountryConfig, RefreshReport) {
	start := time.Now()
	report := RefreshReport{BatchID: uuid.NewString()}
	log = log.With().Str("batch", report.BatchID).Logger()

	updated := make([]model.CountryConfig, len(countries))
	copy(updated, countries)

	if f == nil || len(countries) == 0 {
		report.Retained = countryNames(countries)
		report.Elapsed = time.Since(start)
		return updated, report
	}

	results := make([]fetchResult, len(countries))
	var wg sync.WaitGroup

	wg.Add(len(countries))
	for i := range countries {
		go func(idx int) {
			defer wg.Done()
			v, err := f.FetchMultiplier(ctx, countries[idx].Country)
			results[idx] = fetchResult{value: v, err: err}
		}(i)
	}

	wg.Wait()

	for i, r := range results {
		c := countries[i].Country
		if r.err != nil {
			log.Warn().Err(r.err).Str("country", string(c)).Msg("keeping current multiplier")
			report.Retained = append(report.Retained, c)
			continue
		}
		updated[i].Multiplier = ClampMultiplier(r.value)
		report.Updated = append(report.Updated, c)
	}

	report.Elapsed = time.Since(start)
	log.Info().
		Int("updated", len(report.Updated)).
		Int("retained", len(report.Retained)).
		Dur("elapsed", report.Elapsed).
		Msg("multiplier refresh complete")

	return updated, report
}

func countryNames(countries []model.CountryConfig) []model.Country {
	out := make([]model.Country, 0, len(countries))
	for _, c := range countries {
		out = append(out, c.Country)
	}
	return out
}

// MergeMultipliers applies a refresh started from snapshot to current, the
// state as it is when the refresh finishes. A row takes its refreshed
// multiplier only when its country was updated and the row still holds the
// snapshot's country and multiplier; rows edited in the meantime keep the
// edit. Months always come from current. No input is modified.
func MergeMultipliers(snapshot, current, refreshed []model.CountryConfig, updated []model.Country) []model.CountryConfig {
	ok := make(map[model.Country]bool, len(updated))
	for _, c := range updated {
		ok[c] = true
	}

	out := make([]model.CountryConfig, len(current))
	copy(out, current)
	for i := range out {
		if i >= len(snapshot) || i >= len(refreshed) {
			break
		}
		c := out[i].Country
		if !ok[c] || snapshot[i].Country != c || refreshed[i].Country != c {
			continue
		}
		if out[i].Multiplier != snapshot[i].Multiplier {
			continue
		}
		out[i].Multiplier = refreshed[i].Multiplier
	}
	return out
}

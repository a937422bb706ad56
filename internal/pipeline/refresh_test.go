package pipeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/theirongolddev/tripcost/internal/model"

	"github.com/rs/zerolog"
)

type stubMultipliers struct {
	values map[model.Country]float64
	calls  atomic.Int64
	delay  time.Duration
}

func (s *stubMultipliers) FetchMultiplier(_ context.Context, c model.Country) (float64, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	v, ok := s.values[c]
	if !ok {
		return 0, errors.New("no data")
	}
	return v, nil
}

func TestRefreshMultipliers_PartialFailure(t *testing.T) {
	countries := []model.CountryConfig{
		{Country: model.Italy, Months: 2, Multiplier: 1.0},
		{Country: model.Spain, Months: 1, Multiplier: 0.9},
	}
	f := &stubMultipliers{values: map[model.Country]float64{model.Spain: 0.72}}

	got, report := RefreshMultipliers(context.Background(), f, countries, zerolog.Nop())

	if got[0].Multiplier != 1.0 {
		t.Errorf("Italy multiplier = %.2f, want unchanged 1.0", got[0].Multiplier)
	}
	if got[1].Multiplier != 0.72 {
		t.Errorf("Spain multiplier = %.2f, want 0.72", got[1].Multiplier)
	}
	if got[0].Months != 2 || got[1].Months != 1 {
		t.Errorf("months changed: %+v", got)
	}
	if countries[1].Multiplier != 0.9 {
		t.Errorf("input slice mutated: Spain = %.2f", countries[1].Multiplier)
	}
	if len(report.Updated) != 1 || report.Updated[0] != model.Spain {
		t.Errorf("report.Updated = %v, want [Spain]", report.Updated)
	}
	if len(report.Retained) != 1 || report.Retained[0] != model.Italy {
		t.Errorf("report.Retained = %v, want [Italy]", report.Retained)
	}
	if report.BatchID == "" {
		t.Error("report.BatchID is empty")
	}
}

func TestRefreshMultipliers_ClampsFetchedValues(t *testing.T) {
	countries := []model.CountryConfig{{Country: model.Vietnam, Months: 1, Multiplier: 0.45}}
	f := &stubMultipliers{values: map[model.Country]float64{model.Vietnam: 0.01}}

	got, _ := RefreshMultipliers(context.Background(), f, countries, zerolog.Nop())
	if got[0].Multiplier != MinMultiplier {
		t.Fatalf("multiplier = %v, want %v", got[0].Multiplier, MinMultiplier)
	}
}

func TestRefreshMultipliers_FetchesInParallel(t *testing.T) {
	countries := make([]model.CountryConfig, 0, 6)
	values := make(map[model.Country]float64)
	for _, c := range model.StartCountries {
		countries = append(countries, model.CountryConfig{Country: c, Months: 1, Multiplier: 1})
		values[c] = 0.5
	}
	f := &stubMultipliers{values: values, delay: 50 * time.Millisecond}

	start := time.Now()
	got, report := RefreshMultipliers(context.Background(), f, countries, zerolog.Nop())
	elapsed := time.Since(start)

	if f.calls.Load() != int64(len(countries)) {
		t.Fatalf("calls = %d, want %d", f.calls.Load(), len(countries))
	}
	if elapsed > 250*time.Millisecond {
		t.Fatalf("refresh took %s, fetches look sequential", elapsed)
	}
	if len(report.Updated) != len(countries) {
		t.Fatalf("updated = %d, want %d", len(report.Updated), len(countries))
	}
	for _, c := range got {
		if c.Multiplier != 0.5 {
			t.Fatalf("%s multiplier = %.2f, want 0.5", c.Country, c.Multiplier)
		}
	}
}

func TestRefreshMultipliers_NilFetcher(t *testing.T) {
	countries := []model.CountryConfig{{Country: model.UK, Months: 1, Multiplier: 1.2}}
	got, report := RefreshMultipliers(context.Background(), nil, countries, zerolog.Nop())
	if len(got) != 1 || got[0] != countries[0] {
		t.Fatalf("got %+v, want unchanged copy", got)
	}
	if len(report.Retained) != 1 {
		t.Fatalf("retained = %v, want [UK]", report.Retained)
	}
}

// blockingMultipliers records the highest number of concurrent fetches.
type blockingMultipliers struct {
	mu      sync.Mutex
	active  int
	maxSeen int
	release chan struct{}
}

func (b *blockingMultipliers) FetchMultiplier(ctx context.Context, _ model.Country) (float64, error) {
	b.mu.Lock()
	b.active++
	if b.active > b.maxSeen {
		b.maxSeen = b.active
	}
	b.mu.Unlock()

	select {
	case <-b.release:
	case <-ctx.Done():
		return 0, ctx.Err()
	}

	b.mu.Lock()
	b.active--
	b.mu.Unlock()
	return 1.5, nil
}

func TestRefreshMultipliers_AppliesAfterAllFinish(t *testing.T) {
	countries := []model.CountryConfig{
		{Country: model.France, Months: 1, Multiplier: 1.1},
		{Country: model.Japan, Months: 1, Multiplier: 1.0},
	}
	b := &blockingMultipliers{release: make(chan struct{})}

	done := make(chan []model.CountryConfig, 1)
	go func() {
		got, _ := RefreshMultipliers(context.Background(), b, countries, zerolog.Nop())
		done <- got
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		b.mu.Lock()
		seen := b.maxSeen
		b.mu.Unlock()
		if seen == len(countries) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("max concurrent fetches = %d, want %d", seen, len(countries))
		}
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-done:
		t.Fatal("refresh returned before all fetches finished")
	default:
	}

	close(b.release)
	got := <-done
	for _, c := range got {
		if c.Multiplier != 1.5 {
			t.Fatalf("%s multiplier = %.2f, want 1.5", c.Country, c.Multiplier)
		}
	}
}

func TestMergeMultipliers_KeepsMonthEdits(t *testing.T) {
	snapshot := []model.CountryConfig{
		{Country: model.Italy, Months: 1, Multiplier: 1.0},
		{Country: model.Vietnam, Months: 1, Multiplier: 0.45},
	}
	current := []model.CountryConfig{
		{Country: model.Italy, Months: 5, Multiplier: 1.0},
		{Country: model.Vietnam, Months: 2, Multiplier: 0.45},
	}
	refreshed := []model.CountryConfig{
		{Country: model.Italy, Months: 1, Multiplier: 1.2},
		{Country: model.Vietnam, Months: 1, Multiplier: 0.6},
	}

	out := MergeMultipliers(snapshot, current, refreshed, []model.Country{model.Italy})

	if out[0].Months != 5 {
		t.Errorf("Italy months = %d, want 5 (edit kept)", out[0].Months)
	}
	if out[0].Multiplier != 1.2 {
		t.Errorf("Italy multiplier = %v, want 1.2", out[0].Multiplier)
	}
	if out[1].Multiplier != 0.45 {
		t.Errorf("Vietnam multiplier = %v, want 0.45 (not updated)", out[1].Multiplier)
	}
	if current[0].Multiplier != 1.0 {
		t.Error("current was modified")
	}
}

func TestMergeMultipliers_KeepsMultiplierEdits(t *testing.T) {
	snapshot := []model.CountryConfig{
		{Country: model.Italy, Months: 1, Multiplier: 1.0},
		{Country: model.Spain, Months: 1, Multiplier: 0.9},
	}
	// Italy's multiplier was stepped while the refresh ran.
	current := []model.CountryConfig{
		{Country: model.Italy, Months: 1, Multiplier: 1.05},
		{Country: model.Spain, Months: 1, Multiplier: 0.9},
	}
	refreshed := []model.CountryConfig{
		{Country: model.Italy, Months: 1, Multiplier: 1.3},
		{Country: model.Spain, Months: 1, Multiplier: 0.7},
	}

	out := MergeMultipliers(snapshot, current, refreshed, []model.Country{model.Italy, model.Spain})

	if out[0].Multiplier != 1.05 {
		t.Errorf("Italy multiplier = %v, want 1.05 (user edit kept)", out[0].Multiplier)
	}
	if out[1].Multiplier != 0.7 {
		t.Errorf("Spain multiplier = %v, want 0.7 (refreshed)", out[1].Multiplier)
	}
}

func TestMergeMultipliers_ListReplaced(t *testing.T) {
	snapshot := []model.CountryConfig{{Country: model.Italy, Months: 1, Multiplier: 1.0}}
	current := []model.CountryConfig{{Country: model.Japan, Months: 1, Multiplier: 1.0}}
	refreshed := []model.CountryConfig{{Country: model.Italy, Months: 1, Multiplier: 1.3}}

	out := MergeMultipliers(snapshot, current, refreshed, []model.Country{model.Italy})
	if out[0] != current[0] {
		t.Errorf("out = %+v, want Japan row untouched", out[0])
	}
}

func TestMergeMultipliers_LengthMismatch(t *testing.T) {
	snapshot := []model.CountryConfig{{Country: model.Italy, Months: 1, Multiplier: 1.0}}
	current := []model.CountryConfig{
		{Country: model.Italy, Months: 1, Multiplier: 1.0},
		{Country: model.Spain, Months: 1, Multiplier: 0.9},
	}
	refreshed := []model.CountryConfig{{Country: model.Italy, Multiplier: 1.3}}

	out := MergeMultipliers(snapshot, current, refreshed, []model.Country{model.Italy, model.Spain})
	if out[0].Multiplier != 1.3 || out[1].Multiplier != 0.9 {
		t.Errorf("out = %+v", out)
	}
}

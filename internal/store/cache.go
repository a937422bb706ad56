package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/tripcost/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache is the SQLite-backed Backend.
type Cache struct {
	db *sql.DB
}

// OpenSQLite opens or creates the cache database at the given path.
func OpenSQLite(dbPath string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// GetRates returns the cached rate table for base.
func (c *Cache) GetRates(ctx context.Context, base string) (RateEntry, bool, error) {
	var blob []byte
	var fetched string
	err := c.db.QueryRowContext(ctx,
		"SELECT rates, fetched_at FROM rate_sets WHERE base = ?", base,
	).Scan(&blob, &fetched)
	if errors.Is(err, sql.ErrNoRows) {
		return RateEntry{}, false, nil
	}
	if err != nil {
		return RateEntry{}, false, err
	}

	var e RateEntry
	if err := decode(blob, &e.Rates); err != nil {
		return RateEntry{}, false, fmt.Errorf("decoding cached rates: %w", err)
	}
	e.FetchedAt, _ = time.Parse(time.RFC3339Nano, fetched)
	return e, true, nil
}

// PutRates stores the rate table for base.
func (c *Cache) PutRates(ctx context.Context, base string, e RateEntry) error {
	blob, err := encode(e.Rates)
	if err != nil {
		return fmt.Errorf("encoding rates: %w", err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO rate_sets (base, rates, fetched_at) VALUES (?, ?, ?)`,
		base, blob, e.FetchedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// GetMultiplier returns the cached multiplier for country.
func (c *Cache) GetMultiplier(ctx context.Context, country model.Country) (MultiplierEntry, bool, error) {
	var e MultiplierEntry
	var fetched string
	err := c.db.QueryRowContext(ctx,
		"SELECT multiplier, fetched_at FROM multipliers WHERE country = ?", string(country),
	).Scan(&e.Multiplier, &fetched)
	if errors.Is(err, sql.ErrNoRows) {
		return MultiplierEntry{}, false, nil
	}
	if err != nil {
		return MultiplierEntry{}, false, err
	}
	e.FetchedAt, _ = time.Parse(time.RFC3339Nano, fetched)
	return e, true, nil
}

// PutMultiplier stores the multiplier for country.
func (c *Cache) PutMultiplier(ctx context.Context, country model.Country, e MultiplierEntry) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO multipliers (country, multiplier, fetched_at) VALUES (?, ?, ?)`,
		string(country), e.Multiplier, e.FetchedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

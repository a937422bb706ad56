// Package store caches successfully fetched exchange rates and multipliers.
// Fallback values are never written; plans are never stored.
package store

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/theirongolddev/tripcost/internal/model"

	"github.com/vmihailenco/msgpack/v5"
)

// Backend is a key-value store for fetched provider data.
type Backend interface {
	GetRates(ctx context.Context, base string) (RateEntry, bool, error)
	PutRates(ctx context.Context, base string, e RateEntry) error
	GetMultiplier(ctx context.Context, c model.Country) (MultiplierEntry, bool, error)
	PutMultiplier(ctx context.Context, c model.Country, e MultiplierEntry) error
	Close() error
}

// RateEntry is a cached rate table.
type RateEntry struct {
	Rates     map[string]float64 `msgpack:"rates"`
	FetchedAt time.Time          `msgpack:"fetched_at"`
}

// MultiplierEntry is a cached multiplier for one country.
type MultiplierEntry struct {
	Multiplier float64   `msgpack:"multiplier"`
	FetchedAt  time.Time `msgpack:"fetched_at"`
}

// Path returns the SQLite cache location under dir.
func Path(dir string) string {
	return filepath.Join(dir, "cache.db")
}

// Open opens the backend named by kind ("sqlite" or "redis").
func Open(kind, dir, redisAddr string) (Backend, error) {
	switch kind {
	case "", "sqlite":
		return OpenSQLite(Path(dir))
	case "redis":
		return OpenRedis(context.Background(), redisAddr)
	}
	return nil, fmt.Errorf("unknown cache backend %q", kind)
}

func encode(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func decode(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

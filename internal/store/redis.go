package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/tripcost/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	redisPrefix = "tripcost:"
	// redisExpiry bounds how long entries linger; freshness is still
	// decided by the reader's TTL.
	redisExpiry = 7 * 24 * time.Hour
)

// RedisCache is the Redis-backed Backend. Values are msgpack-encoded.
type RedisCache struct {
	client *redis.Client
}

// OpenRedis connects to addr and verifies the connection.
func OpenRedis(ctx context.Context, addr string) (*RedisCache, error) {
	if addr == "" {
		addr = "127.0.0.1:6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis %s: %w", addr, err)
	}
	return &RedisCache{client: rdb}, nil
}

// Close closes the Redis client.
func (r *RedisCache) Close() error {
	return r.client.Close()
}

func ratesKey(base string) string {
	return redisPrefix + "rates:" + base
}

func multiplierKey(c model.Country) string {
	return redisPrefix + "multiplier:" + string(c)
}

// GetRates returns the cached rate table for base.
func (r *RedisCache) GetRates(ctx context.Context, base string) (RateEntry, bool, error) {
	var e RateEntry
	ok, err := r.get(ctx, ratesKey(base), &e)
	return e, ok, err
}

// PutRates stores the rate table for base.
func (r *RedisCache) PutRates(ctx context.Context, base string, e RateEntry) error {
	return r.set(ctx, ratesKey(base), e)
}

// GetMultiplier returns the cached multiplier for country.
func (r *RedisCache) GetMultiplier(ctx context.Context, c model.Country) (MultiplierEntry, bool, error) {
	var e MultiplierEntry
	ok, err := r.get(ctx, multiplierKey(c), &e)
	return e, ok, err
}

// PutMultiplier stores the multiplier for country.
func (r *RedisCache) PutMultiplier(ctx context.Context, c model.Country, e MultiplierEntry) error {
	return r.set(ctx, multiplierKey(c), e)
}

func (r *RedisCache) get(ctx context.Context, key string, v any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := decode(data, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

func (r *RedisCache) set(ctx context.Context, key string, v any) error {
	data, err := encode(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return r.client.Set(ctx, key, data, redisExpiry).Err()
}

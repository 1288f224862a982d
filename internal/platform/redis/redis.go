// Package redis provides the Redis-backed key-value layer used for the
// advisory task-list cache and the fixed-window rate limiter. Both treat
// Redis as an opaque key-value service with TTL semantics: an outage or a
// miss never affects correctness, only freshness and throttling.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/primetrade/taskboard-api/internal/config"
	goredis "github.com/redis/go-redis/v9"
)

// ErrKeyNotFound is returned by KV.Get when the key does not exist or has
// expired.
var ErrKeyNotFound = errors.New("key not found")

// KV is the narrow key-value surface the cache and rate limiter need.
// It is implemented by redisKV for production and by an in-memory fake in
// internal/mocks for tests.
type KV interface {
	// Get retrieves the value for a key. Returns ErrKeyNotFound on a miss.
	Get(ctx context.Context, key string) (string, error)

	// Set stores a value under a key with the given TTL. A zero TTL stores
	// the value without expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Incr atomically increments the integer value of a key, initializing
	// missing keys to zero first. Returns the new value.
	Incr(ctx context.Context, key string) (int64, error)

	// Expire sets a TTL on an existing key.
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

// redisKV adapts a go-redis client to the KV interface.
type redisKV struct {
	client *goredis.Client
}

// NewKV connects to Redis using the configured URL and returns a KV backed
// by it. The connection is verified with a short ping so a bad URL fails at
// startup rather than on first use.
func NewKV(ctx context.Context, cfg config.RedisConfig) (KV, error) {
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &redisKV{client: client}, nil
}

func (r *redisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *redisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisKV) Incr(ctx context.Context, key string) (int64, error) {
	return r.client.Incr(ctx, key).Result()
}

func (r *redisKV) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return r.client.Expire(ctx, key, ttl).Err()
}

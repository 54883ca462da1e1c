package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyBreachPrefix namespaces per-subject breach lookup results.
const KeyBreachPrefix = "dg:breach:"

// Store wraps the redis client with the typed accessors the services use.
type Store struct {
	rdb *redis.Client
}

// Connect parses the redis URL, pings the server, and returns a ready Store.
func Connect(ctx context.Context, redisURL string) (*Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Store{rdb: rdb}, nil
}

// Ping reports redis liveness for the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// SetJSON stores any value as JSON under key with a TTL.
func (s *Store) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}
	return s.rdb.Set(ctx, key, payload, ttl).Err()
}

// GetJSON loads a JSON value into dest. Returns (false, nil) on a cache miss.
func (s *Store) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		// A corrupt entry behaves like a miss; the caller refreshes it.
		log.Printf("[cache] Dropping corrupt entry %s: %v", key, err)
		s.rdb.Del(ctx, key)
		return false, nil
	}
	return true, nil
}

// Clear removes every key matching prefix+"*". Used by /admin/reload.
func (s *Store) Clear(ctx context.Context, prefix string) {
	iter := s.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		s.rdb.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("[cache] Clear scan failed for %s: %v", prefix, err)
	}
}

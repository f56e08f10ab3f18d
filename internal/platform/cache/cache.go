package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Client is the slice of the Redis API the store uses. *redis.Client
// satisfies it; tests substitute a fake.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// Store is a best-effort TTL cache over Redis. Every backing-store failure
// is absorbed and logged at warn level: Get degrades to a miss, Set to a
// no-op, so cache trouble can never fail a request. Entries expire passively
// through their TTL; there is no invalidation path.
type Store struct {
	client Client
	log    zerolog.Logger
}

// New wraps a Redis client in a Store.
func New(client Client, log zerolog.Logger) *Store {
	return &Store{client: client, log: log}
}

// NewClient builds the Redis client from configuration values.
func NewClient(host string, port int, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})
}

// Get returns the raw cached bytes for key. Misses and store errors both
// report false.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
		return nil, false
	}
	return raw, true
}

// Set stores value under key as JSON with the given TTL, best-effort.
func (s *Store) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache marshal failed")
		return
	}
	if err := s.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// Ping probes the backing store. A false result means requests proceed
// uncached; it never fails them.
func (s *Store) Ping(ctx context.Context) bool {
	if err := s.client.Ping(ctx).Err(); err != nil {
		s.log.Warn().Err(err).Msg("cache ping failed")
		return false
	}
	return true
}

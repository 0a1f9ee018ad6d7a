// Package redisstore persists form state in Redis through go-redis.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-formstate/pkg/store"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrNotReady is returned when Connect exhausts its retries.
	ErrNotReady = errors.New("redisstore: redis did not become ready")
	// ErrInvalidURL is returned when the connection URL cannot be parsed.
	ErrInvalidURL = errors.New("redisstore: invalid connection url")
)

// Client is the subset of go-redis used by Store. *redis.Client and
// redis.UniversalClient satisfy it.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Store is a store.Store backed by Redis string keys.
type Store struct {
	client Client
	prefix string
	ttl    time.Duration
}

var _ store.Store = (*Store)(nil)

// New wraps client. Keys are written as cfg.Prefix + key with cfg.TTL
// expiration; a zero TTL keeps keys forever.
func New(client Client, cfg Config) *Store {
	return &Store{
		client: client,
		prefix: cfg.Prefix,
		ttl:    cfg.TTL,
	}
}

// Get returns the value stored under key. A missing key reports ok=false
// with a nil error.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, store.ErrKeyRequired
	}
	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redisstore: get %q: %w", key, err)
	}
	return value, true, nil
}

// Set writes value under key with the configured TTL.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return store.ErrKeyRequired
	}
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redisstore: set %q: %w", key, err)
	}
	return nil
}

// Connect dials Redis, retrying per cfg until a PING succeeds.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}

	attempts := max(cfg.RetryAttempts, 1)
	for attempt := 0; attempt < attempts; attempt++ {
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}
	return nil, ErrNotReady
}

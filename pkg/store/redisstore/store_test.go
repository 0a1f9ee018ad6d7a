package redisstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-formstate/pkg/store"
	"github.com/redis/go-redis/v9"
)

type fakeClient struct {
	values  map[string]string
	ttls    map[string]time.Duration
	failGet error
	failSet error
}

func newFakeClient() *fakeClient {
	return &fakeClient{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *fakeClient) Get(_ context.Context, key string) *redis.StringCmd {
	if c.failGet != nil {
		return redis.NewStringResult("", c.failGet)
	}
	value, ok := c.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (c *fakeClient) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if c.failSet != nil {
		return redis.NewStatusResult("", c.failSet)
	}
	c.values[key] = value.(string)
	c.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestStoreAppliesPrefixAndTTL(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	s := New(client, Config{Prefix: "forms:", TTL: time.Hour})

	if err := s.Set(ctx, "signup", `{"email":"a@b.com"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if client.values["forms:signup"] != `{"email":"a@b.com"}` {
		t.Fatalf("expected prefixed key, got %+v", client.values)
	}
	if client.ttls["forms:signup"] != time.Hour {
		t.Fatalf("expected ttl applied, got %v", client.ttls["forms:signup"])
	}

	value, ok, err := s.Get(ctx, "signup")
	if err != nil || !ok || value != `{"email":"a@b.com"}` {
		t.Fatalf("unexpected get result value=%q ok=%v err=%v", value, ok, err)
	}
}

func TestStoreMissingKeyIsNotAnError(t *testing.T) {
	s := New(newFakeClient(), Config{})
	value, ok, err := s.Get(context.Background(), "absent")
	if err != nil || ok || value != "" {
		t.Fatalf("expected clean miss, got value=%q ok=%v err=%v", value, ok, err)
	}
}

func TestStoreWrapsClientErrors(t *testing.T) {
	boom := errors.New("connection reset")
	client := newFakeClient()
	client.failGet = boom
	client.failSet = boom
	s := New(client, Config{})

	if _, _, err := s.Get(context.Background(), "k"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped get error, got %v", err)
	}
	if err := s.Set(context.Background(), "k", "v"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped set error, got %v", err)
	}
}

func TestStoreRejectsEmptyKey(t *testing.T) {
	s := New(newFakeClient(), Config{})
	if err := s.Set(context.Background(), "", "v"); !errors.Is(err, store.ErrKeyRequired) {
		t.Fatalf("expected ErrKeyRequired, got %v", err)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("FORMSTATE_REDIS_URL", "redis://cache:6379/2")
	t.Setenv("FORMSTATE_REDIS_PREFIX", "app:")
	t.Setenv("FORMSTATE_REDIS_TTL", "30m")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ConnectionURL != "redis://cache:6379/2" || cfg.Prefix != "app:" || cfg.TTL != 30*time.Minute {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.RetryAttempts != 3 {
		t.Fatalf("expected default retry attempts, got %d", cfg.RetryAttempts)
	}
}

func TestConnectRejectsInvalidURL(t *testing.T) {
	_, err := Connect(context.Background(), Config{ConnectionURL: "://nope"})
	if !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
}

package store

import (
	"context"
	"errors"
)

// ErrKeyRequired is returned when a store operation receives an empty key.
var ErrKeyRequired = errors.New("store: key is required")

// Store loads and saves string values by key.
type Store interface {
	// Get returns ok=false with a nil error when key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

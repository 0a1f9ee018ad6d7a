package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-process Store guarded by a RWMutex.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]string
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]string{}}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrKeyRequired
	}
	s.mu.RLock()
	value, ok := s.records[key]
	s.mu.RUnlock()
	return value, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrKeyRequired
	}
	s.mu.Lock()
	if s.records == nil {
		s.records = map[string]string{}
	}
	s.records[key] = value
	s.mu.Unlock()
	return nil
}

// Delete removes key, reporting whether it existed.
func (s *MemoryStore) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[key]
	delete(s.records, key)
	return ok
}

// Keys returns stored keys sorted alphabetically.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.records))
	for key := range s.records {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

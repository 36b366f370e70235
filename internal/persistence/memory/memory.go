// Package memory provides an in-process implementation of persistence.Store.
// It is used by tests and by the memory:// storage DSN.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/example/coffee-chat/internal/persistence"
)

// Storage keeps values in a map guarded by a single mutex, which makes every
// Update an atomic read-modify-write.
type Storage struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// Open returns an empty Storage.
func Open() *Storage {
	return &Storage{values: make(map[string][]byte)}
}

// Close releases resources held by the storage. No-op for the in-memory implementation.
func (s *Storage) Close() error {
	return nil
}

// Get returns a copy of the value stored under key.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, persistence.ErrNotFound
	}
	return cloneBytes(value), nil
}

// Set stores a copy of value under key.
func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return persistence.ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = cloneBytes(value)
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

// Update applies fn to the current value while holding the write lock.
func (s *Storage) Update(ctx context.Context, key string, fn persistence.UpdateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return persistence.ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var current []byte
	if value, ok := s.values[key]; ok {
		current = cloneBytes(value)
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}
	s.values[key] = cloneBytes(next)
	return nil
}

// Keys returns the stored keys with the given prefix in lexical order.
func (s *Storage) Keys(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func cloneBytes(value []byte) []byte {
	if value == nil {
		return nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out
}

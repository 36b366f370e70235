package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/coffee-chat/internal/persistence"
	"github.com/example/coffee-chat/internal/persistence/bolt"
	"github.com/example/coffee-chat/internal/persistence/memory"
	"github.com/example/coffee-chat/internal/persistence/sqlite"
)

// StoreBackend names a persistence backend and opens a fresh instance of it.
type StoreBackend struct {
	Name string
	Open func(tb testing.TB) persistence.Store
}

// StoreBackends returns every persistence backend, each opened in a
// temporary directory owned by the test.
func StoreBackends() []StoreBackend {
	return []StoreBackend{
		{Name: "memory", Open: NewMemoryStore},
		{Name: "bolt", Open: NewBoltStore},
		{Name: "sqlite", Open: NewSQLiteStore},
	}
}

// NewMemoryStore returns a namespaced in-memory store.
func NewMemoryStore(tb testing.TB) persistence.Store {
	tb.Helper()
	return persistence.Namespace(memory.Open(), persistence.DefaultPrefix)
}

// NewBoltStore opens a namespaced bbolt store closed on cleanup.
func NewBoltStore(tb testing.TB) persistence.Store {
	tb.Helper()
	store, err := bolt.Open(filepath.Join(tb.TempDir(), "roast.db"))
	if err != nil {
		tb.Fatalf("open bolt store: %v", err)
	}
	tb.Cleanup(func() { _ = store.Close() })
	return persistence.Namespace(store, persistence.DefaultPrefix)
}

// NewSQLiteStore opens a namespaced SQLite store closed on cleanup.
func NewSQLiteStore(tb testing.TB) persistence.Store {
	tb.Helper()
	store, err := sqlite.Open(context.Background(), filepath.Join(tb.TempDir(), "roast.sqlite"))
	if err != nil {
		tb.Fatalf("open sqlite store: %v", err)
	}
	tb.Cleanup(func() { _ = store.Close() })
	return persistence.Namespace(store, persistence.DefaultPrefix)
}

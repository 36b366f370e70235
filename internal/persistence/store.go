package persistence

import "context"

// UpdateFunc receives the current value stored under a key (nil when absent)
// and returns the replacement value. Returning a nil value leaves the stored
// value untouched; returning an error aborts the update without writing.
type UpdateFunc func(current []byte) ([]byte, error)

// Store is the durable key-value capability shared by every service. Values
// are opaque byte slices, in practice JSON documents.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Update performs an atomic read-modify-write of a single key.
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

// DefaultPrefix namespaces every key written by the application.
const DefaultPrefix = "roast_"

type namespaced struct {
	store  Store
	prefix string
}

// Namespace scopes all keys of store under prefix.
func Namespace(store Store, prefix string) Store {
	if prefix == "" {
		return store
	}
	return &namespaced{store: store, prefix: prefix}
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	return n.store.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	return n.store.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return n.store.Delete(ctx, n.prefix+key)
}

func (n *namespaced) Update(ctx context.Context, key string, fn UpdateFunc) error {
	if key == "" {
		return ErrEmptyKey
	}
	return n.store.Update(ctx, n.prefix+key, fn)
}

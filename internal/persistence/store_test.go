package persistence_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/example/coffee-chat/internal/persistence"
	"github.com/example/coffee-chat/internal/persistence/memory"
	"github.com/example/coffee-chat/internal/testfixtures"
)

func TestStoreContract(t *testing.T) {
	t.Parallel()

	for _, b := range testfixtures.StoreBackends() {
		b := b
		t.Run(b.Name, func(t *testing.T) {
			t.Parallel()

			t.Run("get missing key reports not found", func(t *testing.T) {
				store := b.Open(t)
				_, err := store.Get(context.Background(), "missing")
				if !errors.Is(err, persistence.ErrNotFound) {
					t.Fatalf("expected ErrNotFound, got %v", err)
				}
			})

			t.Run("set, get and delete", func(t *testing.T) {
				ctx := context.Background()
				store := b.Open(t)

				if err := store.Set(ctx, "meeting_ABC123", []byte(`{"id":"ABC123"}`)); err != nil {
					t.Fatalf("Set failed: %v", err)
				}
				got, err := store.Get(ctx, "meeting_ABC123")
				if err != nil {
					t.Fatalf("Get failed: %v", err)
				}
				if string(got) != `{"id":"ABC123"}` {
					t.Fatalf("unexpected value %q", got)
				}

				if err := store.Delete(ctx, "meeting_ABC123"); err != nil {
					t.Fatalf("Delete failed: %v", err)
				}
				if _, err := store.Get(ctx, "meeting_ABC123"); !errors.Is(err, persistence.ErrNotFound) {
					t.Fatalf("expected ErrNotFound after delete, got %v", err)
				}
				if err := store.Delete(ctx, "meeting_ABC123"); err != nil {
					t.Fatalf("deleting a missing key should succeed, got %v", err)
				}
			})

			t.Run("update sees nil for missing key and writes result", func(t *testing.T) {
				ctx := context.Background()
				store := b.Open(t)

				err := store.Update(ctx, "k", func(current []byte) ([]byte, error) {
					if current != nil {
						t.Fatalf("expected nil current value, got %q", current)
					}
					return []byte("v1"), nil
				})
				if err != nil {
					t.Fatalf("Update failed: %v", err)
				}
				got, _ := store.Get(ctx, "k")
				if string(got) != "v1" {
					t.Fatalf("expected v1, got %q", got)
				}
			})

			t.Run("update error aborts the write", func(t *testing.T) {
				ctx := context.Background()
				store := b.Open(t)
				if err := store.Set(ctx, "k", []byte("keep")); err != nil {
					t.Fatalf("Set failed: %v", err)
				}

				sentinel := errors.New("boom")
				err := store.Update(ctx, "k", func([]byte) ([]byte, error) {
					return []byte("discard"), sentinel
				})
				if !errors.Is(err, sentinel) {
					t.Fatalf("expected sentinel error, got %v", err)
				}
				got, _ := store.Get(ctx, "k")
				if string(got) != "keep" {
					t.Fatalf("expected value to be kept, got %q", got)
				}
			})

			t.Run("update returning nil leaves value untouched", func(t *testing.T) {
				ctx := context.Background()
				store := b.Open(t)
				if err := store.Set(ctx, "k", []byte("keep")); err != nil {
					t.Fatalf("Set failed: %v", err)
				}
				if err := store.Update(ctx, "k", func([]byte) ([]byte, error) { return nil, nil }); err != nil {
					t.Fatalf("Update failed: %v", err)
				}
				got, _ := store.Get(ctx, "k")
				if string(got) != "keep" {
					t.Fatalf("expected value to be kept, got %q", got)
				}
			})

			t.Run("concurrent updates are serialized", func(t *testing.T) {
				ctx := context.Background()
				store := b.Open(t)

				const workers = 16
				var wg sync.WaitGroup
				errs := make(chan error, workers)
				for i := 0; i < workers; i++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						_, err := persistence.UpdateJSON(ctx, store, "counter", func(current int, _ bool) (int, error) {
							return current + 1, nil
						})
						errs <- err
					}()
				}
				wg.Wait()
				close(errs)
				for err := range errs {
					if err != nil {
						t.Fatalf("UpdateJSON failed: %v", err)
					}
				}

				var count int
				if err := persistence.GetJSON(ctx, store, "counter", &count); err != nil {
					t.Fatalf("GetJSON failed: %v", err)
				}
				if count != workers {
					t.Fatalf("expected %d, got %d", workers, count)
				}
			})

			t.Run("empty key is rejected", func(t *testing.T) {
				store := b.Open(t)
				if err := store.Set(context.Background(), "", []byte("x")); !errors.Is(err, persistence.ErrEmptyKey) {
					t.Fatalf("expected ErrEmptyKey, got %v", err)
				}
			})
		})
	}
}

func TestNamespace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := memory.Open()
	store := persistence.Namespace(base, persistence.DefaultPrefix)

	if err := store.Set(ctx, "session_device-1", []byte("{}")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := base.Get(ctx, "roast_session_device-1"); err != nil {
		t.Fatalf("expected prefixed key in base store: %v", err)
	}
	if keys := base.Keys("session_"); len(keys) != 0 {
		t.Fatalf("expected no unprefixed keys, got %v", keys)
	}
	if _, err := store.Get(ctx, ""); !errors.Is(err, persistence.ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}

	if persistence.Namespace(base, "") != persistence.Store(base) {
		t.Fatal("empty prefix should return the store unchanged")
	}
}

func TestGetJSONTreatsCorruptValuesAsMissing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.Open()
	if err := store.Set(ctx, "meeting_XYZ789", []byte("{not json")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var target map[string]any
	err := persistence.GetJSON(ctx, store, "meeting_XYZ789", &target)
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for corrupt value, got %v", err)
	}

	updated, err := persistence.UpdateJSON(ctx, store, "meeting_XYZ789", func(current map[string]any, exists bool) (map[string]any, error) {
		if exists {
			return nil, fmt.Errorf("corrupt value should be presented as absent")
		}
		return map[string]any{"id": "XYZ789"}, nil
	})
	if err != nil {
		t.Fatalf("UpdateJSON failed: %v", err)
	}
	if updated["id"] != "XYZ789" {
		t.Fatalf("unexpected result %v", updated)
	}
}

func TestJSONHelpersTreatNullAsMissing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.Open()
	for _, raw := range []string{"null", " null\n"} {
		if err := store.Set(ctx, "session_phone", []byte(raw)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		var target struct {
			ID string `json:"id"`
		}
		if err := persistence.GetJSON(ctx, store, "session_phone", &target); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("%q: expected ErrNotFound, got %v (target %+v)", raw, err, target)
		}

		_, err := persistence.UpdateJSON(ctx, store, "session_phone", func(current map[string]any, exists bool) (map[string]any, error) {
			if exists {
				return nil, fmt.Errorf("null value should be presented as absent")
			}
			return nil, nil
		})
		if err != nil {
			t.Fatalf("%q: UpdateJSON failed: %v", raw, err)
		}
	}
}

func TestRevision(t *testing.T) {
	t.Parallel()

	a := persistence.Revision([]byte(`{"status":"pending"}`))
	b := persistence.Revision([]byte(`{"status":"swiping"}`))
	if a == b {
		t.Fatal("different values should produce different revisions")
	}
	if a != persistence.Revision([]byte(`{"status":"pending"}`)) {
		t.Fatal("revision should be deterministic")
	}
	if len(a) != 32 {
		t.Fatalf("expected 32 hex characters, got %d", len(a))
	}
}

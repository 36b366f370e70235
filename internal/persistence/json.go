package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// GetJSON loads key into target. A missing key, a JSON null and a value that
// no longer decodes all report ErrNotFound, so corrupt records behave as absent.
func GetJSON(ctx context.Context, store Store, key string, target any) error {
	raw, err := store.Get(ctx, key)
	if err != nil {
		return err
	}
	if isEmptyDocument(raw) {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode %s: %w", key, errors.Join(ErrNotFound, err))
	}
	return nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, store Store, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Set(ctx, key, payload)
}

// UpdateJSON runs an atomic read-modify-write of a JSON document. fn receives
// the decoded current value and whether one existed; null and undecodable
// values are presented as absent. The value returned by fn is written back.
func UpdateJSON[T any](ctx context.Context, store Store, key string, fn func(current T, exists bool) (T, error)) (T, error) {
	var result T
	err := store.Update(ctx, key, func(raw []byte) ([]byte, error) {
		var current T
		exists := false
		if !isEmptyDocument(raw) {
			if err := json.Unmarshal(raw, &current); err == nil {
				exists = true
			} else {
				var zero T
				current = zero
			}
		}

		next, err := fn(current, exists)
		if err != nil {
			return nil, err
		}
		payload, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		result = next
		return payload, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

func isEmptyDocument(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

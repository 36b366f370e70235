// Package bolt provides a BoltDB-backed persistence.Store.
package bolt

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/example/coffee-chat/internal/persistence"
)

const bucketValues = "kv"

var tracer = otel.GetTracerProvider().Tracer("github.com/example/coffee-chat/internal/persistence/bolt")

// Store keeps every key in a single bucket. Update runs inside one bbolt
// read-write transaction, so concurrent writers to a key are serialized.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the database file at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketValues))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create %s bucket: %w", bucketValues, err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	_, span := startSpan(ctx, "Get", key)
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		stored := tx.Bucket([]byte(bucketValues)).Get([]byte(key))
		if stored == nil {
			return persistence.ErrNotFound
		}
		// bbolt values are only valid for the life of the transaction.
		value = append([]byte(nil), stored...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, span := startSpan(ctx, "Set", key)
	defer span.End()

	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return persistence.ErrEmptyKey
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketValues)).Put([]byte(key), value)
	})
	recordError(span, err)
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	_, span := startSpan(ctx, "Delete", key)
	defer span.End()

	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(bucketValues)).Delete([]byte(key))
	})
	recordError(span, err)
	return err
}

func (s *Store) Update(ctx context.Context, key string, fn persistence.UpdateFunc) error {
	_, span := startSpan(ctx, "Update", key)
	defer span.End()

	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return persistence.ErrEmptyKey
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketValues))
		var current []byte
		if stored := bucket.Get([]byte(key)); stored != nil {
			current = append([]byte(nil), stored...)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		if next == nil {
			return nil
		}
		span.AddEvent("put")
		return bucket.Put([]byte(key), next)
	})
	recordError(span, err)
	return err
}

func startSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	return tracer.Start(ctx, operation, trace.WithAttributes(attribute.String("kv.key", key)))
}

func recordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Package sqlite provides a SQLite-backed persistence.Store built on
// modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/example/coffee-chat/internal/persistence"
	"github.com/example/coffee-chat/internal/persistence/sqlite/migrations"
)

// Store keeps values in the kv table.
type Store struct {
	pool   *ConnectionPool
	retry  RetryConfig
	now    func() time.Time
	tracer trace.Tracer
}

const tracerName = "github.com/example/coffee-chat/internal/persistence/sqlite"

// Open opens the database at path and applies pending migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	pool, err := NewConnectionPool(DefaultConfig(path))
	if err != nil {
		return nil, err
	}
	if err := applyMigrations(ctx, pool.DB(), migrations.FS); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return &Store{
		pool:   pool,
		retry:  DefaultRetryConfig(),
		now:    time.Now,
		tracer: otel.Tracer(tracerName),
	}, nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.pool.Close()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := s.startSpan(ctx, "Get", key)
	defer span.End()

	var value []byte
	err := s.pool.DB().QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.ErrNotFound
	}
	if err != nil {
		err = fmt.Errorf("get %s: %w", key, mapError(err))
		recordError(span, err)
		return nil, err
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return persistence.ErrEmptyKey
	}
	ctx, span := s.startSpan(ctx, "Set", key)
	defer span.End()

	err := withRetry(ctx, s.retry, func() error {
		return upsert(ctx, s.pool.DB(), key, value, s.now())
	})
	recordError(span, err)
	return err
}

func (s *Store) Delete(ctx context.Context, key string) error {
	ctx, span := s.startSpan(ctx, "Delete", key)
	defer span.End()

	err := withRetry(ctx, s.retry, func() error {
		_, err := s.pool.DB().ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key)
		return err
	})
	recordError(span, err)
	return err
}

func (s *Store) Update(ctx context.Context, key string, fn persistence.UpdateFunc) error {
	if key == "" {
		return persistence.ErrEmptyKey
	}
	ctx, span := s.startSpan(ctx, "Update", key)
	defer span.End()

	err := withRetry(ctx, s.retry, func() error {
		return s.pool.WithTransaction(ctx, func(tx *sql.Tx) error {
			var current []byte
			err := tx.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&current)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return err
			}

			next, err := fn(current)
			if err != nil {
				return err
			}
			if next == nil {
				return nil
			}
			span.AddEvent("put")
			return upsert(ctx, tx, key, next, s.now())
		})
	})
	recordError(span, err)
	return err
}

func (s *Store) startSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	tracer := s.tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return tracer.Start(ctx, operation, trace.WithAttributes(attribute.String("kv.key", key)))
}

func recordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, db execer, key string, value []byte, at time.Time) error {
	if value == nil {
		value = []byte{}
	}
	_, err := db.ExecContext(ctx, `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, at.UTC().UnixMilli())
	return err
}

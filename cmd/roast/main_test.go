package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/coffee-chat/internal/config"
)

func TestOpenStore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		name    string
		dsn     string
		wantErr bool
	}{
		{name: "memory", dsn: "memory://"},
		{name: "bolt", dsn: "bolt://" + filepath.Join(dir, "roast.db")},
		{name: "sqlite", dsn: "sqlite://" + filepath.Join(dir, "roast.sqlite")},
		{name: "unknown scheme", dsn: "redis://localhost", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			store, closer, err := openStore(ctx, config.Config{StoreDSN: tt.dsn, KeyPrefix: "roast_"})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("openStore: %v", err)
			}
			t.Cleanup(func() { _ = closer.Close() })

			if err := store.Set(ctx, "probe", []byte("ok")); err != nil {
				t.Fatalf("set: %v", err)
			}
			got, err := store.Get(ctx, "probe")
			if err != nil || string(got) != "ok" {
				t.Fatalf("expected stored value, got %q %v", got, err)
			}
		})
	}
}

func TestNewHandlerServesSlotWindow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, closer, err := openStore(ctx, config.Config{StoreDSN: "memory://", KeyPrefix: "roast_"})
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	t.Cleanup(func() { _ = closer.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := newHandler(config.Config{OverpassURL: "http://127.0.0.1:1", VenueRadiusMeters: 1500}, store, logger)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slots?date=2025-10-20", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"Today"`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meetings", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected meetings to require a session, got %d", rec.Code)
	}
}

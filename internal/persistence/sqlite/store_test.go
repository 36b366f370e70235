package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/example/coffee-chat/internal/persistence"
)

func TestStoreRecordsSpans(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := Open(ctx, filepath.Join(t.TempDir(), "roast.sqlite"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	store.tracer = provider.Tracer(tracerName)

	if err := store.Set(ctx, "roast_session_phone", []byte(`{"id":"user_1"}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := store.Get(ctx, "roast_session_phone"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if _, err := store.Get(ctx, "roast_session_missing"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	boom := errors.New("boom")
	if err := store.Update(ctx, "roast_session_phone", func([]byte) ([]byte, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected update error, got %v", err)
	}
	if err := store.Delete(ctx, "roast_session_phone"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	spans := recorder.Ended()
	want := []string{"Set", "Get", "Get", "Update", "Delete"}
	if len(spans) != len(want) {
		t.Fatalf("expected %d spans, got %d", len(want), len(spans))
	}
	for i, name := range want {
		if spans[i].Name() != name {
			t.Fatalf("span %d = %q, want %q", i, spans[i].Name(), name)
		}
	}
	if spans[2].Status().Code == codes.Error {
		t.Fatal("a missing key should not mark the span as failed")
	}
	if spans[3].Status().Code != codes.Error {
		t.Fatalf("expected failed update span, got %v", spans[3].Status())
	}
}

package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/example/coffee-chat/internal/venues"
)

func TestDefaultLogger(t *testing.T) {
	t.Parallel()

	custom := slog.New(slog.NewTextHandler(io.Discard, nil))
	if got := defaultLogger(custom); got != custom {
		t.Fatalf("expected custom logger to be returned")
	}

	if got := defaultLogger(nil); got != slog.Default() {
		t.Fatalf("expected default logger when none provided")
	}
}

func TestErrorKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: ErrNotFound, want: "not_found"},
		{err: fmt.Errorf("load: %w", ErrNotFound), want: "not_found"},
		{err: ErrAlreadyExists, want: "already_exists"},
		{err: &ValidationError{FieldErrors: map[string]string{"x": "y"}}, want: "validation"},
		{err: fmt.Errorf("fetch: %w", venues.ErrProviderUnavailable), want: "provider_unavailable"},
		{err: context.DeadlineExceeded, want: "canceled"},
		{err: errors.New("disk full"), want: "unexpected"},
	}

	for _, tt := range tests {
		if got := ErrorKind(tt.err); got != tt.want {
			t.Fatalf("ErrorKind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

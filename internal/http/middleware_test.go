package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/example/coffee-chat/internal/application"
	"github.com/example/coffee-chat/internal/testfixtures"
)

type stubResolver struct {
	session application.Session
	err     error
	calls   []string
}

func (s *stubResolver) Current(_ context.Context, deviceID string) (application.Session, error) {
	s.calls = append(s.calls, deviceID)
	return s.session, s.err
}

func TestRequireSession(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		device         string
		resolver       *stubResolver
		expectedStatus int
	}{
		{
			name:           "missing device header",
			resolver:       &stubResolver{},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "no session for device",
			device:         "tablet",
			resolver:       &stubResolver{err: application.ErrNotFound},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "store failure",
			device:         "tablet",
			resolver:       &stubResolver{err: errors.New("disk full")},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "session found",
			device:         " tablet ",
			resolver:       &stubResolver{session: testfixtures.NewSession(testfixtures.WithSessionID("user_1"))},
			expectedStatus: http.StatusTeapot,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen application.Session
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = SessionFromContext(r.Context())
				w.WriteHeader(http.StatusTeapot)
			})

			req := httptest.NewRequest(http.MethodGet, "/meetings", nil)
			if tt.device != "" {
				req.Header.Set(DeviceHeader, tt.device)
			}
			rec := httptest.NewRecorder()
			RequireSession(tt.resolver, testfixtures.DiscardLogger())(next).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedStatus == http.StatusTeapot {
				if seen.ID != "user_1" {
					t.Fatalf("expected session in context, got %+v", seen)
				}
				if tt.resolver.calls[0] != "tablet" {
					t.Fatalf("expected trimmed device id, got %q", tt.resolver.calls[0])
				}
			}
		})
	}
}

func TestRequestLoggerAttachesLogger(t *testing.T) {
	t.Parallel()

	var found bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		found = LoggerFromContext(r.Context()) != nil
		w.WriteHeader(http.StatusAccepted)
	})

	rec := httptest.NewRecorder()
	RequestLogger(testfixtures.DiscardLogger())(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slots", nil))

	if !found {
		t.Fatal("expected request scoped logger in context")
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected status to pass through, got %d", rec.Code)
	}
}

func TestTracingRecordsServerSpans(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	rec := httptest.NewRecorder()
	Tracing(provider)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/meetings/AB12CD/likes", nil))

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected one span, got %d", len(spans))
	}
	if spans[0].Name() != "PUT /meetings/{code}/likes" {
		t.Fatalf("unexpected span name %q", spans[0].Name())
	}
	if spans[0].Status().Code != codes.Error {
		t.Fatalf("expected error status, got %v", spans[0].Status())
	}
}

func TestRouteName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"/meetings":             "/meetings",
		"/meetings/":            "/meetings/",
		"/meetings/AB12CD":      "/meetings/{code}",
		"/meetings/AB12CD/join": "/meetings/{code}/join",
		"/venues":               "/venues",
	}
	for path, want := range tests {
		if got := routeName(path); got != want {
			t.Errorf("routeName(%q) = %q, want %q", path, got, want)
		}
	}
}

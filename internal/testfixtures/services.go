package testfixtures

import (
	"io"
	"log/slog"
	"testing"

	"github.com/example/coffee-chat/internal/application"
	"github.com/example/coffee-chat/internal/matcher"
	"github.com/example/coffee-chat/internal/persistence"
)

// Services bundles the application services wired to one store with
// deterministic identifiers and time.
type Services struct {
	Store    persistence.Store
	Clock    *Clock
	IDs      *IDGenerator
	Codes    *CodeGenerator
	Sessions *application.SessionService
	Meetings *application.MeetingService
	Matches  *application.MatchService
}

// ServicesOption configures NewServices.
type ServicesOption func(*Services)

// WithStore overrides the in-memory store.
func WithStore(store persistence.Store) ServicesOption {
	return func(s *Services) {
		s.Store = store
	}
}

// WithCodes overrides the meeting code generator.
func WithCodes(codes *CodeGenerator) ServicesOption {
	return func(s *Services) {
		s.Codes = codes
	}
}

// NewServices wires every application service for a test. Logs are
// discarded.
func NewServices(tb testing.TB, opts ...ServicesOption) *Services {
	tb.Helper()

	s := &Services{
		Clock: NewClock(ReferenceTime()),
		IDs:   NewIDGenerator("user"),
		Codes: NewCodeGenerator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.Store == nil {
		s.Store = NewMemoryStore(tb)
	}

	logger := DiscardLogger()
	s.Sessions = application.NewSessionServiceWithLogger(s.Store, s.IDs.NextFunc(), s.Clock.NowFunc(), logger)
	s.Meetings = application.NewMeetingServiceWithLogger(s.Store, s.Codes.NextFunc(), s.Clock.NowFunc(), logger)
	s.Matches = application.NewMatchServiceWithLogger(matcher.New(matcher.Alumni()), s.Meetings, logger)
	return s
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

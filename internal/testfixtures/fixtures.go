package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/coffee-chat/internal/application"
	"github.com/example/coffee-chat/internal/slots"
)

var sessionCounter uint64

// referenceTime is a Monday, so the first slot day is predictable.
var referenceTime = time.Date(2025, time.October, 20, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// SessionOption configures a generated session.
type SessionOption func(*application.Session)

// NewSession returns a deterministic session with optional overrides.
func NewSession(opts ...SessionOption) application.Session {
	idx := atomic.AddUint64(&sessionCounter, 1)
	session := application.Session{
		ID:          fmt.Sprintf("user_fixture_%03d", idx),
		Name:        fmt.Sprintf("User %03d", idx),
		LinkedInURL: fmt.Sprintf("https://www.linkedin.com/in/user-%03d", idx),
		CreatedAt:   referenceTime.UnixMilli(),
	}
	for _, opt := range opts {
		opt(&session)
	}
	return session
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) SessionOption {
	return func(s *application.Session) {
		s.ID = id
	}
}

// WithSessionName overrides the generated display name.
func WithSessionName(name string) SessionOption {
	return func(s *application.Session) {
		s.Name = name
	}
}

// Slot returns the slot identifier for the given day offset from
// ReferenceTime and hour label.
func Slot(dayOffset int, hour string) string {
	return slots.Encode(referenceTime.AddDate(0, 0, dayOffset).Format(slots.DayKeyLayout), hour)
}

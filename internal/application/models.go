package application

import (
	"github.com/example/coffee-chat/internal/matcher"
	"github.com/example/coffee-chat/internal/scheduler"
)

// Meeting is the persisted coordination record shared by host and guest.
type Meeting = scheduler.Meeting

// ScoredCandidate is an alumnus ranked against a set of liked venues.
type ScoredCandidate = matcher.ScoredCandidate

// Session is the local identity of one device.
type Session struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	LinkedInURL string `json:"linkedInUrl"`
	CreatedAt   int64  `json:"createdAt"`
}

// Participant converts the session into the identity recorded on a meeting.
func (s Session) Participant() scheduler.Participant {
	return scheduler.Participant{ID: s.ID, Name: s.Name, LinkedIn: s.LinkedInURL}
}

// CreateSessionParams wraps the data required to create a session.
type CreateSessionParams struct {
	DeviceID    string
	Name        string
	LinkedInURL string
}

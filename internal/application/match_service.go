package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/coffee-chat/internal/matcher"
	"github.com/example/coffee-chat/internal/scheduler"
)

// MeetingReader loads meetings for the matcher.
type MeetingReader interface {
	Get(ctx context.Context, code string) (Meeting, error)
}

// MatchService ranks alumni against liked venues. It never mutates state.
type MatchService struct {
	matcher  *matcher.Matcher
	meetings MeetingReader
	logger   *slog.Logger
}

// NewMatchService constructs a match service over the given population.
func NewMatchService(m *matcher.Matcher, meetings MeetingReader) *MatchService {
	return NewMatchServiceWithLogger(m, meetings, nil)
}

// NewMatchServiceWithLogger constructs a match service with a specified logger.
func NewMatchServiceWithLogger(m *matcher.Matcher, meetings MeetingReader, logger *slog.Logger) *MatchService {
	if m == nil {
		m = matcher.New(matcher.Alumni())
	}
	return &MatchService{matcher: m, meetings: meetings, logger: defaultLogger(logger)}
}

func (s *MatchService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "MatchService", operation, attrs...)
}

// FindMatches ranks alumni by overlap with liked. An empty input yields an
// empty result.
func (s *MatchService) FindMatches(ctx context.Context, liked []string) []ScoredCandidate {
	if s == nil {
		return []ScoredCandidate{}
	}
	matches := s.matcher.FindMatches(scheduler.Dedupe(liked))
	s.loggerWith(ctx, "FindMatches", "liked", len(liked)).
		DebugContext(ctx, "alumni ranked", "matches", len(matches))
	return matches
}

// Best returns the top ranked alumnus for liked, if any shares a venue.
func (s *MatchService) Best(ctx context.Context, liked []string) (ScoredCandidate, bool) {
	matches := s.FindMatches(ctx, liked)
	if len(matches) == 0 {
		return ScoredCandidate{}, false
	}
	return matches[0], true
}

// MatchesForMeeting ranks alumni against the venues userID liked in the
// meeting. Users who are not part of the meeting get ErrNotFound.
func (s *MatchService) MatchesForMeeting(ctx context.Context, code, userID string) (matches []ScoredCandidate, err error) {
	if s == nil || s.meetings == nil {
		err = fmt.Errorf("MatchService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "MatchesForMeeting", "meeting_code", code, "user_id", userID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to rank alumni for meeting", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	var meeting Meeting
	meeting, err = s.meetings.Get(ctx, code)
	if err != nil {
		return
	}
	if !meeting.HasParticipant(userID) {
		err = ErrNotFound
		return
	}

	liked := meeting.GuestLikes
	if meeting.RoleOf(userID) == scheduler.RoleHost {
		liked = meeting.HostLikes
	}
	matches = s.FindMatches(ctx, liked)
	return
}

package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/example/coffee-chat/internal/persistence"
	"github.com/example/coffee-chat/internal/scheduler"
	"github.com/example/coffee-chat/internal/slots"
)

const maxCodeAttempts = 8

var errCodeTaken = errors.New("meeting code already in use")

// MeetingService drives the meeting state machine against the store. Each
// transition is a single atomic read-modify-write of the meeting record.
type MeetingService struct {
	store         persistence.Store
	codeGenerator func() string
	now           func() time.Time
	logger        *slog.Logger
}

// NewMeetingService constructs a meeting service with the provided dependencies.
func NewMeetingService(store persistence.Store, codeGenerator func() string, now func() time.Time) *MeetingService {
	return NewMeetingServiceWithLogger(store, codeGenerator, now, nil)
}

// NewMeetingServiceWithLogger constructs a meeting service with a specified logger.
func NewMeetingServiceWithLogger(store persistence.Store, codeGenerator func() string, now func() time.Time, logger *slog.Logger) *MeetingService {
	if codeGenerator == nil {
		codeGenerator = NewMeetingCode
	}
	if now == nil {
		now = time.Now
	}
	return &MeetingService{store: store, codeGenerator: codeGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *MeetingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "MeetingService", operation, attrs...)
}

// Create opens a pending meeting hosted by host and inviting the owner of
// guestLinkedIn, then records it in the host's meeting index.
func (s *MeetingService) Create(ctx context.Context, host Session, guestLinkedIn string) (meeting Meeting, err error) {
	if s == nil {
		err = fmt.Errorf("MeetingService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Create", "user_id", host.ID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create meeting", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("meeting_code", meeting.ID).InfoContext(ctx, "meeting created")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(host.ID) == "" {
		vErr.add("host", "a session is required to host a meeting")
	}
	validateLinkedIn(vErr, "guestLinkedIn", guestLinkedIn)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	created := s.now()
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, ok := NormalizeCode(s.codeGenerator())
		if !ok {
			err = fmt.Errorf("code generator produced a malformed code")
			return
		}

		candidate := scheduler.NewMeeting(code, host.Participant(), strings.TrimSpace(guestLinkedIn), created)
		meeting, err = persistence.UpdateJSON(ctx, s.store, meetingKey(code), func(_ Meeting, exists bool) (Meeting, error) {
			if exists {
				return Meeting{}, errCodeTaken
			}
			return candidate, nil
		})
		if errors.Is(err, errCodeTaken) {
			logger.WarnContext(ctx, "meeting code collision, regenerating", "attempt", attempt)
			continue
		}
		if err != nil {
			return
		}

		if err = s.addToIndex(ctx, host.ID, code); err != nil {
			// Nobody holds the code yet, so the unindexed record is dropped.
			if derr := s.store.Delete(ctx, meetingKey(code)); derr != nil {
				logger.WarnContext(ctx, "failed to remove unindexed meeting", "meeting_code", code, "error", derr)
			}
			meeting = Meeting{}
		}
		return
	}

	err = fmt.Errorf("allocate meeting code: %w after %d attempts", errCodeTaken, maxCodeAttempts)
	return
}

// Join records guest on the meeting and advances it to at least availability.
// Joining again overwrites the guest fields without regressing the status.
func (s *MeetingService) Join(ctx context.Context, code string, guest Session) (meeting Meeting, err error) {
	if s == nil {
		err = fmt.Errorf("MeetingService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Join", "meeting_code", code, "user_id", guest.ID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to join meeting", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("status", meeting.Status).InfoContext(ctx, "meeting joined")
	}()

	if strings.TrimSpace(guest.ID) == "" {
		err = &ValidationError{FieldErrors: map[string]string{"guest": "a session is required to join a meeting"}}
		return
	}

	meeting, err = s.transition(ctx, code, func(m *Meeting) error {
		m.Join(guest.Participant())
		return nil
	})
	if err != nil {
		return
	}

	// The join is committed; an index failure only hides the meeting from
	// the guest's list until the next join.
	if ierr := s.addToIndex(ctx, guest.ID, meeting.ID); ierr != nil {
		logger.WarnContext(ctx, "meeting joined but not indexed for guest", "error", ierr)
	}
	return
}

// SubmitAvailability stores userID's selected slots. The host's list is
// used when userID is the host, the guest's otherwise. Once both lists are
// present the agreed time is resolved and the meeting moves to swiping.
func (s *MeetingService) SubmitAvailability(ctx context.Context, code, userID string, slotIDs []string) (meeting Meeting, err error) {
	if s == nil {
		err = fmt.Errorf("MeetingService is nil")
		return
	}

	logger := s.loggerWith(ctx, "SubmitAvailability", "meeting_code", code, "user_id", userID, "slots", len(slotIDs))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to submit availability", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("status", meeting.Status, "agreed", meeting.AgreedTime != nil).InfoContext(ctx, "availability submitted")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(userID) == "" {
		vErr.add("userId", "user id is required")
	}
	for _, id := range slotIDs {
		if !slots.Valid(id) {
			vErr.add("slots", fmt.Sprintf("invalid slot %q", id))
			break
		}
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	meeting, err = s.transition(ctx, code, func(m *Meeting) error {
		m.SubmitSlots(userID, slotIDs)
		return nil
	})
	return
}

// SubmitVenueLikes stores userID's liked venues in swipe order. When both
// sides have liked venues the first mutual one confirms the meeting; with
// no mutual venue the meeting stays in swiping.
func (s *MeetingService) SubmitVenueLikes(ctx context.Context, code, userID string, venueIDs []string) (meeting Meeting, err error) {
	if s == nil {
		err = fmt.Errorf("MeetingService is nil")
		return
	}

	logger := s.loggerWith(ctx, "SubmitVenueLikes", "meeting_code", code, "user_id", userID, "likes", len(venueIDs))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to submit venue likes", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("status", meeting.Status, "stuck", meeting.Stuck()).InfoContext(ctx, "venue likes submitted")
	}()

	if strings.TrimSpace(userID) == "" {
		err = &ValidationError{FieldErrors: map[string]string{"userId": "user id is required"}}
		return
	}

	trimmed := make([]string, 0, len(venueIDs))
	for _, id := range venueIDs {
		trimmed = append(trimmed, strings.TrimSpace(id))
	}

	meeting, err = s.transition(ctx, code, func(m *Meeting) error {
		m.SubmitLikes(userID, trimmed)
		return nil
	})
	return
}

// Get returns the meeting stored under code.
func (s *MeetingService) Get(ctx context.Context, code string) (Meeting, error) {
	if s == nil {
		return Meeting{}, fmt.Errorf("MeetingService is nil")
	}
	normalized, ok := NormalizeCode(code)
	if !ok {
		return Meeting{}, ErrNotFound
	}

	var meeting Meeting
	if err := persistence.GetJSON(ctx, s.store, meetingKey(normalized), &meeting); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return Meeting{}, ErrNotFound
		}
		return Meeting{}, err
	}
	meeting.Normalize()
	return meeting, nil
}

// ListForUser returns the meetings in userID's index, most recently created
// first. Index entries whose meeting is missing or unreadable are skipped.
func (s *MeetingService) ListForUser(ctx context.Context, userID string) (meetings []Meeting, err error) {
	if s == nil {
		err = fmt.Errorf("MeetingService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ListForUser", "user_id", userID)

	var codes []string
	if err = persistence.GetJSON(ctx, s.store, meetingIndexKey(userID), &codes); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return []Meeting{}, nil
		}
		logger.ErrorContext(ctx, "failed to load meeting index", "error", err, "error_kind", ErrorKind(err))
		return nil, err
	}

	meetings = make([]Meeting, 0, len(codes))
	for _, code := range codes {
		meeting, getErr := s.Get(ctx, code)
		if getErr != nil {
			logger.DebugContext(ctx, "skipping meeting index entry", "meeting_code", code, "error", getErr)
			continue
		}
		meetings = append(meetings, meeting)
	}

	sort.SliceStable(meetings, func(i, j int) bool {
		return meetings[i].CreatedAt > meetings[j].CreatedAt
	})
	return meetings, nil
}

// transition applies fn to the meeting stored under code inside one atomic
// store update.
func (s *MeetingService) transition(ctx context.Context, code string, fn func(m *Meeting) error) (Meeting, error) {
	normalized, ok := NormalizeCode(code)
	if !ok {
		return Meeting{}, ErrNotFound
	}

	return persistence.UpdateJSON(ctx, s.store, meetingKey(normalized), func(current Meeting, exists bool) (Meeting, error) {
		if !exists {
			return Meeting{}, ErrNotFound
		}
		current.Normalize()
		if err := fn(&current); err != nil {
			return Meeting{}, err
		}
		return current, nil
	})
}

// addToIndex puts code at the front of userID's meeting index unless it is
// already listed.
func (s *MeetingService) addToIndex(ctx context.Context, userID, code string) error {
	_, err := persistence.UpdateJSON(ctx, s.store, meetingIndexKey(userID), func(codes []string, _ bool) ([]string, error) {
		for _, existing := range codes {
			if existing == code {
				return codes, nil
			}
		}
		return append([]string{code}, codes...), nil
	})
	if err != nil {
		return fmt.Errorf("update meeting index: %w", err)
	}
	return nil
}

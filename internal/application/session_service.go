package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/coffee-chat/internal/persistence"
)

// NewSessionID returns a fresh "user_" prefixed identifier.
func NewSessionID() string {
	return "user_" + uuid.NewString()
}

// SessionService manages the single local identity of each device.
type SessionService struct {
	store       persistence.Store
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewSessionService constructs a session service with the provided dependencies.
func NewSessionService(store persistence.Store, idGenerator func() string, now func() time.Time) *SessionService {
	return NewSessionServiceWithLogger(store, idGenerator, now, nil)
}

// NewSessionServiceWithLogger constructs a session service with a specified logger.
func NewSessionServiceWithLogger(store persistence.Store, idGenerator func() string, now func() time.Time, logger *slog.Logger) *SessionService {
	if idGenerator == nil {
		idGenerator = NewSessionID
	}
	if now == nil {
		now = time.Now
	}
	return &SessionService{store: store, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *SessionService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "SessionService", operation, attrs...)
}

// Create stores a new session for the device. A device holding a session
// gets ErrAlreadyExists; it must Clear first.
func (s *SessionService) Create(ctx context.Context, params CreateSessionParams) (session Session, err error) {
	if s == nil {
		err = fmt.Errorf("SessionService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Create", "device_id", params.DeviceID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create session", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", session.ID).InfoContext(ctx, "session created")
	}()

	vErr := validateSessionInput(params)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	candidate := Session{
		ID:          s.idGenerator(),
		Name:        strings.TrimSpace(params.Name),
		LinkedInURL: strings.TrimSpace(params.LinkedInURL),
		CreatedAt:   s.now().UnixMilli(),
	}

	session, err = persistence.UpdateJSON(ctx, s.store, sessionKey(params.DeviceID), func(current Session, exists bool) (Session, error) {
		if exists && current.ID != "" {
			return current, ErrAlreadyExists
		}
		return candidate, nil
	})
	return
}

// Current returns the device's session.
func (s *SessionService) Current(ctx context.Context, deviceID string) (Session, error) {
	if s == nil {
		return Session{}, fmt.Errorf("SessionService is nil")
	}
	if strings.TrimSpace(deviceID) == "" {
		return Session{}, ErrNotFound
	}

	var session Session
	if err := persistence.GetJSON(ctx, s.store, sessionKey(deviceID), &session); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return Session{}, ErrNotFound
		}
		s.loggerWith(ctx, "Current", "device_id", deviceID).
			ErrorContext(ctx, "failed to load session", "error", err, "error_kind", ErrorKind(err))
		return Session{}, err
	}
	if session.ID == "" {
		return Session{}, ErrNotFound
	}
	return session, nil
}

// Clear signs the device out. Clearing without a session is not an error.
func (s *SessionService) Clear(ctx context.Context, deviceID string) error {
	if s == nil {
		return fmt.Errorf("SessionService is nil")
	}
	if strings.TrimSpace(deviceID) == "" {
		return ErrNotFound
	}

	logger := s.loggerWith(ctx, "Clear", "device_id", deviceID)
	if err := s.store.Delete(ctx, sessionKey(deviceID)); err != nil {
		logger.ErrorContext(ctx, "failed to clear session", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	logger.InfoContext(ctx, "session cleared")
	return nil
}

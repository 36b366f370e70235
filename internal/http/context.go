package http

import (
	"context"
	"log/slog"

	"github.com/example/coffee-chat/internal/application"
	"github.com/example/coffee-chat/internal/logging"
)

type contextKey string

const (
	sessionContextKey     contextKey = "session"
	meetingCodeContextKey contextKey = "meeting_code"
)

// ContextWithSession returns a derived context containing the caller's session.
func ContextWithSession(ctx context.Context, session application.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// SessionFromContext extracts the caller's session from context if available.
func SessionFromContext(ctx context.Context) (application.Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(application.Session)
	return session, ok
}

// ContextWithMeetingCode injects the meeting code resolved from the request path.
func ContextWithMeetingCode(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, meetingCodeContextKey, code)
}

// MeetingCodeFromContext extracts a meeting code previously associated with the context.
func MeetingCodeFromContext(ctx context.Context) (string, bool) {
	code, ok := ctx.Value(meetingCodeContextKey).(string)
	return code, ok
}

// ContextWithLogger attaches a request scoped logger.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext returns the request scoped logger, or nil.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}

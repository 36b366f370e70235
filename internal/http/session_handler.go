package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/example/coffee-chat/internal/application"
)

type sessionService interface {
	Create(ctx context.Context, params application.CreateSessionParams) (application.Session, error)
	Current(ctx context.Context, deviceID string) (application.Session, error)
	Clear(ctx context.Context, deviceID string) error
}

// SessionHandler manages the per-device session.
type SessionHandler struct {
	service   sessionService
	responder responder
	logger    *slog.Logger
}

func NewSessionHandler(service sessionService, logger *slog.Logger) *SessionHandler {
	base := defaultLogger(logger)
	return &SessionHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *SessionHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return handlerLogger(ctx, h.logger, "SessionHandler", operation, attrs...)
}

type createSessionRequest struct {
	Name        string `json:"name"`
	LinkedInURL string `json:"linkedInUrl"`
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, "session handler not configured", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	deviceID := deviceIDFromRequest(r)
	if deviceID == "" {
		h.responder.writeError(ctx, w, http.StatusUnauthorized, errMissingDeviceID)
		return
	}

	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(ctx, "Create").WarnContext(ctx, "invalid request body", "error", err)
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	session, err := h.service.Create(ctx, application.CreateSessionParams{
		DeviceID:    deviceID,
		Name:        req.Name,
		LinkedInURL: req.LinkedInURL,
	})
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusCreated, session)
}

func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, "session handler not configured", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	deviceID := deviceIDFromRequest(r)
	if deviceID == "" {
		h.responder.writeError(ctx, w, http.StatusUnauthorized, errMissingDeviceID)
		return
	}

	session, err := h.service.Current(ctx, deviceID)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, session)
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, "session handler not configured", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	deviceID := deviceIDFromRequest(r)
	if deviceID == "" {
		h.responder.writeError(ctx, w, http.StatusUnauthorized, errMissingDeviceID)
		return
	}

	if err := h.service.Clear(ctx, deviceID); err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.log(ctx, "Delete").InfoContext(ctx, "session cleared")
	w.WriteHeader(http.StatusNoContent)
}

package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/example/coffee-chat/internal/application"
	"github.com/example/coffee-chat/internal/persistence"
	"github.com/example/coffee-chat/internal/scheduler"
	"github.com/example/coffee-chat/internal/slots"
	"github.com/example/coffee-chat/internal/venues"
)

type meetingService interface {
	Create(ctx context.Context, host application.Session, guestLinkedIn string) (application.Meeting, error)
	Join(ctx context.Context, code string, guest application.Session) (application.Meeting, error)
	SubmitAvailability(ctx context.Context, code, userID string, slotIDs []string) (application.Meeting, error)
	SubmitVenueLikes(ctx context.Context, code, userID string, venueIDs []string) (application.Meeting, error)
	Get(ctx context.Context, code string) (application.Meeting, error)
	ListForUser(ctx context.Context, userID string) ([]application.Meeting, error)
}

type meetingMatcher interface {
	MatchesForMeeting(ctx context.Context, code, userID string) ([]application.ScoredCandidate, error)
}

// VenueResolver maps venue ids back to venue details.
type VenueResolver interface {
	Resolve(id string) (venues.Venue, bool)
}

// MeetingHandler exposes the meeting lifecycle.
type MeetingHandler struct {
	service   meetingService
	matches   meetingMatcher
	venues    VenueResolver
	responder responder
	logger    *slog.Logger
}

func NewMeetingHandler(service meetingService, matches meetingMatcher, resolver VenueResolver, logger *slog.Logger) *MeetingHandler {
	base := defaultLogger(logger)
	return &MeetingHandler{
		service:   service,
		matches:   matches,
		venues:    resolver,
		responder: newResponder(base),
		logger:    base,
	}
}

func (h *MeetingHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return handlerLogger(ctx, h.logger, "MeetingHandler", operation, attrs...)
}

type createMeetingRequest struct {
	GuestLinkedIn string `json:"guestLinkedIn"`
}

type availabilityRequest struct {
	Slots []string `json:"slots"`
}

type likesRequest struct {
	VenueIDs []string `json:"venueIds"`
}

type meetingResponse struct {
	application.Meeting
	Role             scheduler.Role `json:"role,omitempty"`
	Stuck            bool           `json:"stuck"`
	AgreedTimeLabel  *string        `json:"agreedTimeLabel"`
	AgreedStart      *time.Time     `json:"agreedStart,omitempty"`
	AgreedCafeDetail *venues.Venue  `json:"agreedCafeDetail"`
}

type meetingListResponse struct {
	Meetings []meetingResponse `json:"meetings"`
}

type matchListResponse struct {
	Matches []application.ScoredCandidate `json:"matches"`
}

func (h *MeetingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, "meeting handler not configured", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	session, ok := h.session(ctx, w)
	if !ok {
		return
	}

	var req createMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(ctx, "Create").WarnContext(ctx, "invalid request body", "error", err)
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	meeting, err := h.service.Create(ctx, session, req.GuestLinkedIn)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusCreated, h.present(meeting, session.ID))
}

func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, "meeting handler not configured", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	session, ok := h.session(ctx, w)
	if !ok {
		return
	}

	meetings, err := h.service.ListForUser(ctx, session.ID)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	resp := meetingListResponse{Meetings: make([]meetingResponse, 0, len(meetings))}
	for _, meeting := range meetings {
		resp.Meetings = append(resp.Meetings, h.present(meeting, session.ID))
	}
	h.responder.writeJSON(ctx, w, http.StatusOK, resp)
}

// Get returns a meeting. The ETag is a digest of the rendered body, so
// clients polling with If-None-Match receive 304 until something changes.
func (h *MeetingHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, "meeting handler not configured", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	session, ok := h.session(ctx, w)
	if !ok {
		return
	}
	code, ok := h.code(ctx, w)
	if !ok {
		return
	}

	meeting, err := h.service.Get(ctx, code)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	body, err := json.Marshal(h.present(meeting, session.ID))
	if err != nil {
		h.responder.writeError(ctx, w, http.StatusInternalServerError, err)
		return
	}

	etag := strconv.Quote(persistence.Revision(body))
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(append(body, '\n')); err != nil {
		h.log(ctx, "Get").WarnContext(ctx, "failed to write response", "error", err)
	}
}

func (h *MeetingHandler) Join(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, "meeting handler not configured", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	session, ok := h.session(ctx, w)
	if !ok {
		return
	}
	code, ok := h.code(ctx, w)
	if !ok {
		return
	}

	meeting, err := h.service.Join(ctx, code, session)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, h.present(meeting, session.ID))
}

func (h *MeetingHandler) SubmitAvailability(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, "meeting handler not configured", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	session, ok := h.session(ctx, w)
	if !ok {
		return
	}
	code, ok := h.code(ctx, w)
	if !ok {
		return
	}

	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(ctx, "SubmitAvailability", "code", code).WarnContext(ctx, "invalid request body", "error", err)
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	meeting, err := h.service.SubmitAvailability(ctx, code, session.ID, req.Slots)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, h.present(meeting, session.ID))
}

func (h *MeetingHandler) SubmitLikes(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, "meeting handler not configured", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	session, ok := h.session(ctx, w)
	if !ok {
		return
	}
	code, ok := h.code(ctx, w)
	if !ok {
		return
	}

	var req likesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(ctx, "SubmitLikes", "code", code).WarnContext(ctx, "invalid request body", "error", err)
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	meeting, err := h.service.SubmitVenueLikes(ctx, code, session.ID, req.VenueIDs)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, h.present(meeting, session.ID))
}

func (h *MeetingHandler) Matches(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.matches == nil {
		http.Error(w, "meeting handler not configured", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	session, ok := h.session(ctx, w)
	if !ok {
		return
	}
	code, ok := h.code(ctx, w)
	if !ok {
		return
	}

	matches, err := h.matches.MatchesForMeeting(ctx, code, session.ID)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, matchListResponse{Matches: matches})
}

func (h *MeetingHandler) session(ctx context.Context, w http.ResponseWriter) (application.Session, bool) {
	session, ok := SessionFromContext(ctx)
	if !ok || session.ID == "" {
		h.responder.writeError(ctx, w, http.StatusUnauthorized, errSessionRequired)
		return application.Session{}, false
	}
	return session, true
}

func (h *MeetingHandler) code(ctx context.Context, w http.ResponseWriter) (string, bool) {
	code, ok := MeetingCodeFromContext(ctx)
	if !ok || code == "" {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidMeetingID)
		return "", false
	}
	return code, true
}

func (h *MeetingHandler) present(meeting application.Meeting, viewerID string) meetingResponse {
	resp := meetingResponse{
		Meeting: meeting,
		Stuck:   meeting.Stuck(),
	}
	if meeting.HasParticipant(viewerID) {
		resp.Role = meeting.RoleOf(viewerID)
	}
	if meeting.AgreedTime != nil {
		label := slots.Format(*meeting.AgreedTime)
		resp.AgreedTimeLabel = &label
		if start, err := slots.Start(*meeting.AgreedTime, time.UTC); err == nil {
			resp.AgreedStart = &start
		}
	}
	if meeting.AgreedCafe != nil && h.venues != nil {
		if venue, ok := h.venues.Resolve(*meeting.AgreedCafe); ok {
			resp.AgreedCafeDetail = &venue
		}
	}
	return resp
}

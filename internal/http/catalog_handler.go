package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/coffee-chat/internal/application"
	"github.com/example/coffee-chat/internal/slots"
	"github.com/example/coffee-chat/internal/venues"
)

type venueDeck interface {
	Nearby(ctx context.Context, at venues.Coordinate) []venues.Venue
}

type alumniMatcher interface {
	FindMatches(ctx context.Context, liked []string) []application.ScoredCandidate
}

// CatalogHandler serves the read-only data behind the scheduling screens:
// the slot grid, the venue deck and ad hoc alumni matches.
type CatalogHandler struct {
	venues        venueDeck
	matches       alumniMatcher
	now           func() time.Time
	locateTimeout time.Duration
	responder     responder
	logger        *slog.Logger
}

// CatalogOptions configures a CatalogHandler.
type CatalogOptions struct {
	Now           func() time.Time
	LocateTimeout time.Duration
	Logger        *slog.Logger
}

func NewCatalogHandler(deck venueDeck, matches alumniMatcher, opts CatalogOptions) *CatalogHandler {
	base := defaultLogger(opts.Logger)
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &CatalogHandler{
		venues:        deck,
		matches:       matches,
		now:           now,
		locateTimeout: opts.LocateTimeout,
		responder:     newResponder(base),
		logger:        base,
	}
}

func (h *CatalogHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return handlerLogger(ctx, h.logger, "CatalogHandler", operation, attrs...)
}

type slotWindowResponse struct {
	Days  []slots.Day `json:"days"`
	Hours []string    `json:"hours"`
}

type venueListResponse struct {
	Location venues.Coordinate `json:"location"`
	Venues   []venues.Venue    `json:"venues"`
}

type findMatchesRequest struct {
	VenueIDs []string `json:"venueIds"`
}

func (h *CatalogHandler) Slots(w http.ResponseWriter, r *http.Request) {
	if h == nil {
		http.Error(w, "catalog handler not configured", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	reference := h.now()
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		parsed, err := time.Parse(slots.DayKeyLayout, raw)
		if err != nil {
			h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidDate)
			return
		}
		reference = parsed
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, slotWindowResponse{
		Days:  slots.Window(reference),
		Hours: slots.HourLabels(),
	})
}

// Venues returns the deck around lat/lng. Missing coordinates resolve to the
// default location; provider failures resolve to the seed catalogue.
func (h *CatalogHandler) Venues(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.venues == nil {
		http.Error(w, "catalog handler not configured", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	var locator venues.Locator
	query := r.URL.Query()
	if query.Has("lat") || query.Has("lng") {
		lat, latErr := strconv.ParseFloat(query.Get("lat"), 64)
		lng, lngErr := strconv.ParseFloat(query.Get("lng"), 64)
		if latErr != nil || lngErr != nil {
			h.responder.writeError(ctx, w, http.StatusBadRequest, errInvalidCoordinate)
			return
		}
		locator = venues.StaticLocator{Coordinate: venues.Coordinate{Lat: lat, Lng: lng}}
	}

	at := venues.ResolveLocation(ctx, locator, h.locateTimeout)
	deck := h.venues.Nearby(ctx, at)
	h.log(ctx, "Venues").DebugContext(ctx, "venue deck built", "lat", at.Lat, "lng", at.Lng, "venues", len(deck))

	h.responder.writeJSON(ctx, w, http.StatusOK, venueListResponse{Location: at, Venues: deck})
}

func (h *CatalogHandler) FindMatches(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.matches == nil {
		http.Error(w, "catalog handler not configured", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	var req findMatchesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(ctx, "FindMatches").WarnContext(ctx, "invalid request body", "error", err)
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	h.responder.writeJSON(ctx, w, http.StatusOK, matchListResponse{Matches: h.matches.FindMatches(ctx, req.VenueIDs)})
}

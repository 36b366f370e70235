package venues

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// MinUsable is the smallest fetched deck that is shown instead of the
	// seed catalogue.
	MinUsable = 3

	// DefaultRadiusMeters is the search radius used when none is configured.
	DefaultRadiusMeters = 1500
)

// LookupOptions configures a Lookup.
type LookupOptions struct {
	RadiusMeters int
	Timeout      time.Duration
	Logger       *slog.Logger
}

// Lookup returns the venue deck for a location and remembers fetched venues
// so their ids resolve later.
type Lookup struct {
	provider Provider
	radius   int
	timeout  time.Duration
	logger   *slog.Logger
	known    *expirable.LRU[string, Venue]
}

// NewLookup wraps provider. A nil provider always yields the seed catalogue.
func NewLookup(provider Provider, opts LookupOptions) *Lookup {
	if opts.RadiusMeters <= 0 {
		opts.RadiusMeters = DefaultRadiusMeters
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Lookup{
		provider: provider,
		radius:   opts.RadiusMeters,
		timeout:  opts.Timeout,
		logger:   logger.With("component", "venues"),
		known:    expirable.NewLRU[string, Venue](512, nil, 24*time.Hour),
	}
}

// Nearby returns venues around at. Provider failures and decks smaller than
// MinUsable fall back to the seed catalogue; Nearby never fails.
func (l *Lookup) Nearby(ctx context.Context, at Coordinate) []Venue {
	if l == nil || l.provider == nil {
		return Seed()
	}

	fetchCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	fetched, err := l.provider.FetchNearby(fetchCtx, at.Lat, at.Lng, l.radius)
	if err != nil {
		if !errors.Is(err, ErrProviderUnavailable) {
			err = fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
		}
		l.logger.WarnContext(ctx, "venue lookup failed, using seed venues", "error", err)
		return Seed()
	}
	if len(fetched) < MinUsable {
		l.logger.InfoContext(ctx, "too few venues nearby, using seed venues", "fetched", len(fetched))
		return Seed()
	}

	venues := Reconcile(fetched, seed)
	for _, v := range venues {
		l.known.Add(v.ID, v)
	}
	return venues
}

// Resolve returns the venue with id from the seed catalogue or from recent
// Nearby results.
func (l *Lookup) Resolve(id string) (Venue, bool) {
	if v, ok := SeedByID(id); ok {
		return v, true
	}
	if l == nil {
		return Venue{}, false
	}
	return l.known.Get(id)
}

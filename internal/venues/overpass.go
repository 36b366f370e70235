package venues

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// DefaultOverpassURL is the public Overpass API interpreter endpoint.
const DefaultOverpassURL = "https://overpass-api.de/api/interpreter"

const (
	maxFetched     = 12
	cacheSize      = 128
	maxBodyBytes   = 4 << 20
	defaultHours   = "7am – 7pm"
	defaultAddress = "Nearby"
)

// Provider returns venues near a coordinate.
type Provider interface {
	FetchNearby(ctx context.Context, lat, lon float64, radiusMeters int) ([]Venue, error)
}

// OverpassConfig configures an OverpassProvider.
type OverpassConfig struct {
	Endpoint      string
	Timeout       time.Duration
	RatePerMinute int
	CacheTTL      time.Duration
	HTTPClient    *http.Client
}

// OverpassProvider fetches named cafes from OpenStreetMap through the
// Overpass API. Requests are rate limited and responses cached per rounded
// coordinate.
type OverpassProvider struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
	cache    *expirable.LRU[string, []Venue]
}

// NewOverpassProvider builds a provider from cfg, filling unset fields with
// defaults.
func NewOverpassProvider(cfg OverpassConfig) *OverpassProvider {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultOverpassURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RatePerMinute <= 0 {
		cfg.RatePerMinute = 30
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &OverpassProvider{
		endpoint: cfg.Endpoint,
		client:   client,
		limiter:  rate.NewLimiter(rate.Limit(float64(cfg.RatePerMinute)/60.0), 1),
		cache:    expirable.NewLRU[string, []Venue](cacheSize, nil, cfg.CacheTTL),
	}
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

// FetchNearby returns up to 12 named cafes within radiusMeters of the point.
func (p *OverpassProvider) FetchNearby(ctx context.Context, lat, lon float64, radiusMeters int) ([]Venue, error) {
	key := cacheKey(lat, lon, radiusMeters)
	if cached, ok := p.cache.Get(key); ok {
		return cloneVenues(cached), nil
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit: %v", ErrProviderUnavailable, err)
	}

	query := fmt.Sprintf(`[out:json][timeout:10];node["amenity"="cafe"](around:%d,%f,%f);out body;`, radiusMeters, lat, lon)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, strings.NewReader(query))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrProviderUnavailable, err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, fmt.Errorf("%w: unexpected status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var payload overpassResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrProviderUnavailable, err)
	}

	venues := make([]Venue, 0, maxFetched)
	for _, el := range payload.Elements {
		if len(venues) == maxFetched {
			break
		}
		name := strings.TrimSpace(el.Tags["name"])
		if name == "" {
			continue
		}
		venues = append(venues, Venue{
			ID:      fmt.Sprintf("osm_%d", el.ID),
			Name:    name,
			Address: address(el.Tags),
			Rating:  rating(el.ID),
			Tags:    amenityTags(el.Tags),
			Hours:   hours(el.Tags),
			Lat:     el.Lat,
			Lon:     el.Lon,
			Image:   images[len(venues)%len(images)],
		})
	}

	p.cache.Add(key, cloneVenues(venues))
	return venues, nil
}

func cacheKey(lat, lon float64, radius int) string {
	// Three decimals is roughly 100 m.
	return fmt.Sprintf("%.3f,%.3f,%d", lat, lon, radius)
}

func address(tags map[string]string) string {
	parts := make([]string, 0, 3)
	for _, key := range []string{"addr:housenumber", "addr:street", "addr:city"} {
		if v := strings.TrimSpace(tags[key]); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return defaultAddress
	}
	return strings.Join(parts, ", ")
}

func amenityTags(tags map[string]string) []string {
	out := make([]string, 0, 3)
	if tags["wifi"] == "yes" || tags["internet_access"] == "wlan" {
		out = append(out, "wifi")
	}
	if tags["outdoor_seating"] == "yes" {
		out = append(out, "outdoor")
	}
	if tags["takeaway"] == "yes" {
		out = append(out, "takeaway")
	}
	if len(out) == 0 {
		out = append(out, "espresso", "cozy")
	}
	return out
}

func hours(tags map[string]string) string {
	if v := strings.TrimSpace(tags["opening_hours"]); v != "" {
		return v
	}
	return defaultHours
}

// rating derives a stable 3.8 to 5.0 score from the OSM id, which carries
// no rating of its own.
func rating(id int64) float64 {
	if id < 0 {
		id = -id
	}
	return float64(38+id%13) / 10
}

func cloneVenues(in []Venue) []Venue {
	out := make([]Venue, len(in))
	for i, v := range in {
		v.Tags = append([]string(nil), v.Tags...)
		out[i] = v
	}
	return out
}

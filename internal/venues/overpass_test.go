package venues

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

const overpassBody = `{"elements":[
 {"type":"node","id":101,"lat":37.7583,"lon":-122.4213,"tags":{"name":"Ritual Coffee Roasters","addr:housenumber":"1026","addr:street":"Valencia St","wifi":"yes","outdoor_seating":"yes","opening_hours":"Mo-Su 07:00-20:00"}},
 {"type":"node","id":102,"lat":37.7600,"lon":-122.4200,"tags":{"amenity":"cafe"}},
 {"type":"node","id":103,"lat":37.7610,"lon":-122.4190,"tags":{"name":"Corner Cafe"}}
]}`

func TestOverpassProviderFetchNearby(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `node["amenity"="cafe"](around:1500,37.758300,-122.421300)`) {
			t.Errorf("unexpected query %s", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, overpassBody)
	}))
	t.Cleanup(server.Close)

	provider := NewOverpassProvider(OverpassConfig{Endpoint: server.URL, RatePerMinute: 600})
	venues, err := provider.FetchNearby(context.Background(), 37.7583, -122.4213, 1500)
	if err != nil {
		t.Fatalf("FetchNearby failed: %v", err)
	}
	if len(venues) != 2 {
		t.Fatalf("expected 2 named venues, got %d", len(venues))
	}

	first := venues[0]
	if first.ID != "osm_101" || first.Address != "1026, Valencia St" || first.Hours != "Mo-Su 07:00-20:00" {
		t.Fatalf("unexpected first venue %+v", first)
	}
	if strings.Join(first.Tags, ",") != "wifi,outdoor" {
		t.Fatalf("unexpected tags %v", first.Tags)
	}
	if first.Rating < 3.8 || first.Rating > 5.0 {
		t.Fatalf("rating out of range: %v", first.Rating)
	}

	second := venues[1]
	if second.Address != "Nearby" || second.Hours != "7am – 7pm" || strings.Join(second.Tags, ",") != "espresso,cozy" {
		t.Fatalf("unexpected defaults %+v", second)
	}

	if _, err := provider.FetchNearby(context.Background(), 37.7583, -122.4213, 1500); err != nil {
		t.Fatalf("cached FetchNearby failed: %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected cached second call, got %d requests", calls.Load())
	}
}

func TestOverpassProviderLimitsResults(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString(`{"elements":[`)
	for i := 0; i < 20; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"type":"node","id":%d,"lat":1,"lon":1,"tags":{"name":"Cafe %d"}}`, i, i)
	}
	b.WriteString(`]}`)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, b.String())
	}))
	t.Cleanup(server.Close)

	venues, err := NewOverpassProvider(OverpassConfig{Endpoint: server.URL}).FetchNearby(context.Background(), 1, 1, 500)
	if err != nil {
		t.Fatalf("FetchNearby failed: %v", err)
	}
	if len(venues) != 12 {
		t.Fatalf("expected 12 venues, got %d", len(venues))
	}
}

func TestOverpassProviderErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{name: "server error", handler: func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "busy", http.StatusTooManyRequests)
		}},
		{name: "invalid json", handler: func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "<html>")
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(tt.handler)
			t.Cleanup(server.Close)

			_, err := NewOverpassProvider(OverpassConfig{Endpoint: server.URL}).FetchNearby(context.Background(), 1, 1, 500)
			if !errors.Is(err, ErrProviderUnavailable) {
				t.Fatalf("expected ErrProviderUnavailable, got %v", err)
			}
		})
	}
}

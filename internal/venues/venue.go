// Package venues supplies the coffee shops shown in the swipe deck. Nearby
// venues come from a Provider; when it fails or returns too little, the fixed
// seed catalogue is used so venue identifiers stay resolvable across sessions.
package venues

import (
	"errors"
	"math"
)

// ErrProviderUnavailable marks a failed venue or location lookup. Lookup and
// ResolveLocation absorb it and fall back to fixed data.
var ErrProviderUnavailable = errors.New("venues: provider unavailable")

// Venue is one swipeable location.
type Venue struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Rating  float64  `json:"rating"`
	Tags    []string `json:"tags"`
	Hours   string   `json:"hours"`
	Lat     float64  `json:"lat"`
	Lon     float64  `json:"lon"`
	Image   string   `json:"image"`
}

// Coordinate is a WGS84 position.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether c lies within latitude and longitude bounds.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180 &&
		!math.IsNaN(c.Lat) && !math.IsNaN(c.Lng)
}

const earthRadiusMeters = 6371000

// distanceMeters returns the haversine distance between two points.
func distanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}

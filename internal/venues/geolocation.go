package venues

import (
	"context"
	"fmt"
	"time"
)

// DefaultCoordinate is used when no location is available (San Francisco).
var DefaultCoordinate = Coordinate{Lat: 37.7749, Lng: -122.4194}

// DefaultLocateTimeout bounds how long ResolveLocation waits for a Locator.
const DefaultLocateTimeout = 5 * time.Second

// Locator reports the caller's position.
type Locator interface {
	Locate(ctx context.Context) (Coordinate, error)
}

// StaticLocator reports a fixed coordinate, typically supplied by a client.
type StaticLocator struct {
	Coordinate Coordinate
}

// Locate implements Locator.
func (s StaticLocator) Locate(context.Context) (Coordinate, error) {
	if !s.Coordinate.Valid() {
		return Coordinate{}, fmt.Errorf("%w: coordinate out of range", ErrProviderUnavailable)
	}
	return s.Coordinate, nil
}

// ResolveLocation asks locator for a position, returning DefaultCoordinate
// when the locator is nil, fails, or does not answer within timeout.
func ResolveLocation(ctx context.Context, locator Locator, timeout time.Duration) Coordinate {
	if locator == nil {
		return DefaultCoordinate
	}
	if timeout <= 0 {
		timeout = DefaultLocateTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		at  Coordinate
		err error
	}
	done := make(chan result, 1)
	go func() {
		at, err := locator.Locate(ctx)
		done <- result{at: at, err: err}
	}()

	select {
	case <-ctx.Done():
		return DefaultCoordinate
	case r := <-done:
		if r.err != nil || !r.at.Valid() {
			return DefaultCoordinate
		}
		return r.at
	}
}

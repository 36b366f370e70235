// Package config reads the server configuration from ROAST_* environment
// variables.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store schemes accepted in ROAST_STORE_DSN.
const (
	SchemeMemory = "memory"
	SchemeBolt   = "bolt"
	SchemeSQLite = "sqlite"
)

// Config captures environment driven configuration values for the roast server.
type Config struct {
	HTTPPort  int        `env:"ROAST_HTTP_PORT"  envDefault:"8080"`
	StoreDSN  string     `env:"ROAST_STORE_DSN"  envDefault:"bolt://roast.db"`
	KeyPrefix string     `env:"ROAST_KEY_PREFIX" envDefault:"roast_"`
	LogLevel  slog.Level `env:"ROAST_LOG_LEVEL"  envDefault:"INFO"`

	OverpassURL        string        `env:"ROAST_OVERPASS_URL"         envDefault:"https://overpass-api.de/api/interpreter"`
	VenueRadiusMeters  int           `env:"ROAST_VENUE_RADIUS_METERS"  envDefault:"1500"`
	VenueTimeout       time.Duration `env:"ROAST_VENUE_TIMEOUT"        envDefault:"10s"`
	VenueRatePerMinute int           `env:"ROAST_VENUE_RATE_PER_MINUTE" envDefault:"30"`
	VenueCacheTTL      time.Duration `env:"ROAST_VENUE_CACHE_TTL"      envDefault:"10m"`
	GeoTimeout         time.Duration `env:"ROAST_GEO_TIMEOUT"          envDefault:"5s"`

	// OTelEndpoint enables trace export when set, e.g. "http://localhost:4318".
	OTelEndpoint string `env:"ROAST_OTEL_ENDPOINT"`
}

// Load parses configuration values from the current process environment.
//
// Values that parse but make no sense are reported together by variable name.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	invalid := make([]string, 0, 4)
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		invalid = append(invalid, "ROAST_HTTP_PORT")
	}
	if _, _, err := cfg.Store(); err != nil {
		invalid = append(invalid, "ROAST_STORE_DSN")
	}
	if strings.TrimSpace(cfg.OverpassURL) == "" {
		invalid = append(invalid, "ROAST_OVERPASS_URL")
	}
	if cfg.VenueRadiusMeters <= 0 {
		invalid = append(invalid, "ROAST_VENUE_RADIUS_METERS")
	}
	if cfg.VenueTimeout <= 0 {
		invalid = append(invalid, "ROAST_VENUE_TIMEOUT")
	}
	if cfg.VenueRatePerMinute <= 0 {
		invalid = append(invalid, "ROAST_VENUE_RATE_PER_MINUTE")
	}
	if cfg.VenueCacheTTL <= 0 {
		invalid = append(invalid, "ROAST_VENUE_CACHE_TTL")
	}
	if cfg.GeoTimeout <= 0 {
		invalid = append(invalid, "ROAST_GEO_TIMEOUT")
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}
	return cfg, nil
}

// Store splits StoreDSN into its scheme and location. The location is a file
// path for bolt and sqlite and empty for memory.
func (c Config) Store() (scheme, location string, err error) {
	u, err := url.Parse(strings.TrimSpace(c.StoreDSN))
	if err != nil {
		return "", "", fmt.Errorf("parse store dsn: %w", err)
	}

	location = u.Host + u.Path
	switch u.Scheme {
	case SchemeMemory:
		return SchemeMemory, "", nil
	case SchemeBolt, SchemeSQLite:
		if location == "" {
			return "", "", fmt.Errorf("store dsn %q has no path", c.StoreDSN)
		}
		return u.Scheme, location, nil
	default:
		return "", "", fmt.Errorf("unsupported store scheme %q", u.Scheme)
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

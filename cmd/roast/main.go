package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/coffee-chat/internal/application"
	"github.com/example/coffee-chat/internal/config"
	httptransport "github.com/example/coffee-chat/internal/http"
	"github.com/example/coffee-chat/internal/matcher"
	"github.com/example/coffee-chat/internal/persistence"
	"github.com/example/coffee-chat/internal/persistence/bolt"
	"github.com/example/coffee-chat/internal/persistence/memory"
	"github.com/example/coffee-chat/internal/persistence/sqlite"
	"github.com/example/coffee-chat/internal/telemetry"
	"github.com/example/coffee-chat/internal/venues"
)

const serviceName = "roast"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("failed to flush traces", "error", err)
		}
	}()

	store, closer, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newHandler(cfg, store, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("roast API listening", "addr", server.Addr, "store", cfg.StoreDSN)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// openStore opens the backend named by cfg.StoreDSN and scopes it under
// cfg.KeyPrefix.
func openStore(ctx context.Context, cfg config.Config) (persistence.Store, io.Closer, error) {
	scheme, location, err := cfg.Store()
	if err != nil {
		return nil, nil, err
	}

	var (
		base   persistence.Store
		closer io.Closer
	)
	switch scheme {
	case config.SchemeMemory:
		storage := memory.Open()
		base, closer = storage, storage
	case config.SchemeBolt:
		storage, err := bolt.Open(location)
		if err != nil {
			return nil, nil, fmt.Errorf("open bolt store: %w", err)
		}
		base, closer = storage, storage
	case config.SchemeSQLite:
		storage, err := sqlite.Open(ctx, location)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		base, closer = storage, storage
	default:
		return nil, nil, fmt.Errorf("unsupported store scheme %q", scheme)
	}

	return persistence.Namespace(base, cfg.KeyPrefix), closer, nil
}

func newHandler(cfg config.Config, store persistence.Store, logger *slog.Logger) http.Handler {
	now := time.Now

	sessions := application.NewSessionServiceWithLogger(store, application.NewSessionID, now, logger)
	meetings := application.NewMeetingServiceWithLogger(store, application.NewMeetingCode, now, logger)
	matches := application.NewMatchServiceWithLogger(matcher.New(matcher.Alumni()), meetings, logger)

	provider := venues.NewOverpassProvider(venues.OverpassConfig{
		Endpoint:      cfg.OverpassURL,
		Timeout:       cfg.VenueTimeout,
		RatePerMinute: cfg.VenueRatePerMinute,
		CacheTTL:      cfg.VenueCacheTTL,
	})
	lookup := venues.NewLookup(provider, venues.LookupOptions{
		RadiusMeters: cfg.VenueRadiusMeters,
		Timeout:      cfg.VenueTimeout,
		Logger:       logger,
	})

	return httptransport.NewRouter(httptransport.RouterConfig{
		Sessions: httptransport.NewSessionHandler(sessions, logger),
		Meetings: httptransport.NewMeetingHandler(meetings, matches, lookup, logger),
		Catalog: httptransport.NewCatalogHandler(lookup, matches, httptransport.CatalogOptions{
			Now:           now,
			LocateTimeout: cfg.GeoTimeout,
			Logger:        logger,
		}),
		RequireSession: httptransport.RequireSession(sessions, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.Tracing(nil),
			httptransport.RequestLogger(logger),
		},
	})
}

// Command offlined runs the SportsEdge offline core as a standalone
// process: it opens the local store, starts the connectivity prober and
// sync coordinator, and serves the loopback diagnostics API. In the
// mobile shell the same wiring happens in-process; this binary exists
// for development and integration testing against a real backend.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/sportsedge/offline-core/internal/api"
	"github.com/sportsedge/offline-core/internal/config"
	"github.com/sportsedge/offline-core/internal/connectivity"
	httpapi "github.com/sportsedge/offline-core/internal/http"
	"github.com/sportsedge/offline-core/internal/observability"
	"github.com/sportsedge/offline-core/internal/repo"
	"github.com/sportsedge/offline-core/internal/services"
	"github.com/sportsedge/offline-core/internal/sysutil"
)

// version is stamped by the build.
var version = "dev"

func main() {
	_ = godotenv.Load()
	cfg := config.MustLoad()
	logger := sysutil.SetupLogger(cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		logger.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownOTel(shutdownCtx)
	}()

	// Storage. Initialization failure degrades to network-only mode
	// rather than killing the process.
	var store *services.OfflineStore
	db, err := repo.OpenSQLite(cfg.DBPath, cfg.OTEL.Enabled)
	if err != nil {
		logger.Error().Err(err).Msg("offline storage unavailable, running network-only")
	} else {
		store = services.NewOfflineStore(db, logger)
		store.Retention.EntityMaxAge = cfg.Cache.EntityMaxAge
		store.Retention.ActionMaxAge = cfg.Cache.ActionMaxAge
		store.Retention.AnalyticsMaxAge = cfg.Cache.AnalyticsMaxAge
		if err := store.Initialize(ctx); err != nil {
			logger.Error().Err(err).Msg("offline storage init failed, running network-only")
			store = nil
		}
	}

	// Connectivity.
	monitor := connectivity.NewMonitor()
	prober := connectivity.NewProber(monitor, logger)
	prober.URL = cfg.Connectivity.ProbeURL
	prober.Interval = cfg.Connectivity.ProbeInterval
	prober.Client = &http.Client{Timeout: cfg.Connectivity.ProbeTimeout}
	go prober.Run(ctx)

	client := api.NewHTTPClient(cfg.APIBaseURL, cfg.APITimeout, logger)
	if token := os.Getenv("API_TOKEN"); token != "" {
		client.AuthToken = token
	}

	if store == nil {
		logger.Warn().Msg("no offline store; diagnostics server disabled")
		<-ctx.Done()
		return
	}

	coordinator := services.NewSyncCoordinator(store, client, monitor, logger)
	coordinator.MaxRetries = cfg.Sync.MaxRetries
	coordinator.AnalyticsBatchSize = cfg.Sync.AnalyticsBatchSize
	if cfg.Sync.ReplayRPS > 0 {
		coordinator.Limiter = rate.NewLimiter(rate.Limit(cfg.Sync.ReplayRPS), cfg.Sync.ReplayBurst)
	}
	stopSync := coordinator.Start(ctx)
	defer stopSync()

	router := httpapi.NewRouter(cfg, httpapi.Deps{
		Store:   store,
		Sync:    coordinator,
		Monitor: monitor,
	})
	srv := &http.Server{
		Addr:              cfg.DebugAddr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	go func() {
		logger.Info().Str("addr", cfg.DebugAddr).Msg("diagnostics server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("diagnostics server failed")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("diagnostics server shutdown")
	}
	log.Info().Msg("bye")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/ndewijer/Trading-Journal-Backend/internal/api"
	"github.com/ndewijer/Trading-Journal-Backend/internal/app"
	"github.com/ndewijer/Trading-Journal-Backend/internal/config"
	"github.com/ndewijer/Trading-Journal-Backend/internal/logging"
	"github.com/ndewijer/Trading-Journal-Backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logging.New(cfg.Log)
	zlog.Logger = log
	log.Info().Str("version", version.Version).Msg("starting trading journal")

	// Wait for interrupt signal for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("server exited")
}

// run serves the API until ctx is cancelled or the listener fails. The
// database is closed before run returns on every path.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	application, err := app.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialise application: %w", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close application")
			return
		}
		log.Debug().Msg("database closed")
	}()

	snapshots := application.Services.Snapshot
	if err := snapshots.Schedule(cfg.Journal.SnapshotSchedule); err != nil {
		return fmt.Errorf("failed to schedule snapshots: %w", err)
	}
	snapshots.Start()

	// Create router
	router := api.NewRouter(application.Services, cfg, logging.Component(log, "http"))

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	case err := <-serveErr:
		runErr = fmt.Errorf("server failed to start: %w", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	select {
	case <-snapshots.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn().Msg("snapshot job still running at shutdown")
	}

	return runErr
}

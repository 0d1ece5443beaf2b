// Package app wires configuration, storage and services together for the
// server and the command-line tool.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Trading-Journal-Backend/internal/api"
	"github.com/ndewijer/Trading-Journal-Backend/internal/config"
	"github.com/ndewijer/Trading-Journal-Backend/internal/database"
	"github.com/ndewijer/Trading-Journal-Backend/internal/repository"
	"github.com/ndewijer/Trading-Journal-Backend/internal/service"
)

// App holds the open database and every service built on it.
type App struct {
	DB       *sql.DB
	Config   *config.Config
	Services api.Services
}

// New opens the database, applies pending migrations and builds the services.
// The caller owns the returned App and must Close it.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	applied, err := database.Migrate(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	log.Info().Str("path", cfg.Database.Path).Int("migrations_applied", applied).Msg("database ready")

	return &App{
		DB:       db,
		Config:   cfg,
		Services: NewServices(db, cfg, log),
	}, nil
}

// NewServices builds the service graph on an already migrated database.
func NewServices(db *sql.DB, cfg *config.Config, log zerolog.Logger) api.Services {
	// Create repositories
	tradeRepo := repository.NewTradeRepository(db, log)
	transferRepo := repository.NewTransferRepository(db, log)
	snapshotRepo := repository.NewSnapshotRepository(db, log)

	// Create services
	settings := service.JournalSettings{
		InitialCapital: cfg.Journal.InitialCapital,
		BuyingPower:    cfg.Journal.BuyingPower,
	}
	metricsService := service.NewMetricsService(tradeRepo, transferRepo, cfg.Journal.Instruments, settings, log)

	return api.Services{
		System: service.NewSystemService(db, map[string]bool{
			"cumulative_return":  true,
			"strike_estimates":   true,
			"scheduled_snapshot": cfg.Journal.SnapshotSchedule != "",
		}),
		Trade:    service.NewTradeService(db, tradeRepo, cfg.Journal.Instruments, log),
		Transfer: service.NewTransferService(transferRepo, log),
		Metrics:  metricsService,
		Snapshot: service.NewSnapshotService(metricsService, snapshotRepo, log),
	}
}

// Close releases the database connection.
func (a *App) Close() error {
	if err := a.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

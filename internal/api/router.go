package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Trading-Journal-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Trading-Journal-Backend/internal/api/middleware"
	"github.com/ndewijer/Trading-Journal-Backend/internal/config"
	"github.com/ndewijer/Trading-Journal-Backend/internal/service"
)

// Services bundles the services the router exposes.
type Services struct {
	System   *service.SystemService
	Trade    *service.TradeService
	Transfer *service.TransferService
	Metrics  *service.MetricsService
	Snapshot *service.SnapshotService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	r.Use(custommiddleware.CORS(cfg.CORS))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/trade", func(r chi.Router) {
			tradeHandler := handlers.NewTradeHandler(services.Trade)
			r.Get("/", tradeHandler.Trades)
			r.Post("/", tradeHandler.CreateTrade)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.RequireUUIDParam("uuid"))
				r.Get("/", tradeHandler.GetTrade)
				r.Put("/", tradeHandler.UpdateTrade)
				r.Delete("/", tradeHandler.DeleteTrade)
				r.Post("/close", tradeHandler.CloseTrade)
			})
		})

		r.Route("/transfer", func(r chi.Router) {
			transferHandler := handlers.NewTransferHandler(services.Transfer)
			r.Get("/", transferHandler.Transfers)
			r.Post("/", transferHandler.CreateTransfer)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.RequireUUIDParam("uuid"))
				r.Get("/", transferHandler.GetTransfer)
				r.Delete("/", transferHandler.DeleteTransfer)
			})
		})

		r.Route("/metrics", func(r chi.Router) {
			metricsHandler := handlers.NewMetricsHandler(services.Metrics, services.Snapshot)
			r.Get("/summary", metricsHandler.Summary)
			r.Post("/estimate", metricsHandler.Estimate)
			r.Get("/history", metricsHandler.History)
			r.With(custommiddleware.APIKeyMiddleware).Post("/snapshot", metricsHandler.CreateSnapshot)
		})

		r.Route("/instrument", func(r chi.Router) {
			instrumentHandler := handlers.NewInstrumentHandler(cfg.Journal.Instruments)
			r.Get("/", instrumentHandler.Instruments)
		})
	})

	return r
}

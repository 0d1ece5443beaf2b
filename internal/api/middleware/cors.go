package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/ndewijer/Trading-Journal-Backend/internal/config"
)

// CORS allows the journal frontend to call the API from the configured origins.
// The admin headers are allowed so the snapshot trigger works cross-origin.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", APIKeyHeader, TimeTokenHeader},
		ExposedHeaders: []string{"Content-Type", "X-Request-Id"},
		MaxAge:         300,
	})
}

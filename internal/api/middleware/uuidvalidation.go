// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Trading-Journal-Backend/internal/api/response"
	"github.com/ndewijer/Trading-Journal-Backend/internal/validation"
)

// RequireUUIDParam rejects requests whose chi URL parameter param is missing or
// not a UUID. Trade and transfer routes mount it on their /{uuid} subrouters.
func RequireUUIDParam(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, param)
			if id == "" {
				response.RespondError(w, http.StatusBadRequest, param+" is required", "")
				return
			}
			if err := validation.ValidateUUID(id); err != nil {
				response.RespondError(w, http.StatusBadRequest, "invalid "+param+" format", err.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

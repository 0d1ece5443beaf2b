package handlers

import (
	"errors"
	"net/http"

	"github.com/ndewijer/Trading-Journal-Backend/internal/api/request"
	"github.com/ndewijer/Trading-Journal-Backend/internal/api/response"
	"github.com/ndewijer/Trading-Journal-Backend/internal/apperrors"
	"github.com/ndewijer/Trading-Journal-Backend/internal/metrics"
	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
	"github.com/ndewijer/Trading-Journal-Backend/internal/service"
	"github.com/ndewijer/Trading-Journal-Backend/internal/validation"
)

// MetricsHandler handles HTTP requests for the dashboard metrics.
type MetricsHandler struct {
	metricsService  *service.MetricsService
	snapshotService *service.SnapshotService
}

// NewMetricsHandler creates a new MetricsHandler with the provided service dependencies.
func NewMetricsHandler(metricsService *service.MetricsService, snapshotService *service.SnapshotService) *MetricsHandler {
	return &MetricsHandler{
		metricsService:  metricsService,
		snapshotService: snapshotService,
	}
}

// EstimateResponse wraps the estimator result. Available is false, and both
// figures are null, when the legs do not form a supported spread.
type EstimateResponse struct {
	Available bool     `json:"available"`
	MaxProfit *float64 `json:"maxProfit"`
	MaxLoss   *float64 `json:"maxLoss"`
}

// Summary handles GET requests for the portfolio summary of a view.
// Includes the snapshot figures, per-trade rows and, outside the active view,
// the cumulative return.
//
// Endpoint: GET /api/metrics/summary?status=active|closed
// Response: 200 OK with service.Summary
// Error: 400 Bad Request if status is not active or closed
// Error: 500 Internal Server Error if computation fails
func (h *MetricsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if err := validation.ValidateTradeStatus(status); err != nil {
		response.RespondValidationError(w, err)
		return
	}

	summary, err := h.metricsService.Summary(r.Context(), status)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Estimate handles POST requests to estimate the max profit and loss of a spread
// from its strike legs, using the instrument's lot size.
//
// Endpoint: POST /api/metrics/estimate
// Request Body: EstimateRequest (instrumentName, strikes)
// Response: 200 OK with EstimateResponse
// Error: 400 Bad Request if validation fails or request body is invalid
func (h *MetricsHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.EstimateRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateEstimate(req); err != nil {
		response.RespondValidationError(w, err)
		return
	}

	legs := make([]model.StrikeLeg, len(req.Strikes))
	for i, leg := range req.Strikes {
		legs[i] = model.StrikeLeg{
			Strike:     leg.Strike,
			OptionType: leg.OptionType,
			Position:   leg.Position,
			Lots:       leg.Lots,
			LTP:        leg.LTP,
		}
	}

	response.RespondJSON(w, http.StatusOK, estimateResponse(h.metricsService.Estimate(req.InstrumentName, legs)))
}

func estimateResponse(estimate *metrics.Estimate) EstimateResponse {
	if estimate == nil {
		return EstimateResponse{}
	}
	return EstimateResponse{
		Available: true,
		MaxProfit: &estimate.MaxProfit,
		MaxLoss:   &estimate.MaxLoss,
	}
}

// History handles GET requests for stored daily snapshots.
//
// Endpoint: GET /api/metrics/history?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD&view=active|closed&sort_dir=asc|desc
// Response: 200 OK with array of MetricsSnapshot
// Error: 400 Bad Request if a filter is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *MetricsHandler) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters, err := request.ParseHistoryFilters(q.Get("start_date"), q.Get("end_date"), q.Get("view"), q.Get("sort_dir"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filters", err.Error())
		return
	}

	history, err := h.snapshotService.GetHistory(r.Context(), *filters)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidDateRange) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDateRange.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetHistory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, history)
}

// CreateSnapshot handles POST requests to capture today's snapshots on demand.
// Protected by the API key middleware.
//
// Endpoint: POST /api/metrics/snapshot
// Response: 201 Created with array of MetricsSnapshot
// Error: 401 Unauthorized if the API key or time token is missing or invalid
// Error: 500 Internal Server Error if the capture fails
func (h *MetricsHandler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.snapshotService.CaptureSnapshots(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCreateSnapshot.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, snapshots)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Trading-Journal-Backend/internal/api/request"
	"github.com/ndewijer/Trading-Journal-Backend/internal/api/response"
	"github.com/ndewijer/Trading-Journal-Backend/internal/apperrors"
	"github.com/ndewijer/Trading-Journal-Backend/internal/service"
	"github.com/ndewijer/Trading-Journal-Backend/internal/validation"
)

// TransferHandler handles HTTP requests for capital transfer endpoints.
type TransferHandler struct {
	transferService *service.TransferService
}

// NewTransferHandler creates a new TransferHandler with the provided service dependency.
func NewTransferHandler(transferService *service.TransferService) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
	}
}

// Transfers handles GET requests to list every transfer in date order.
//
// Endpoint: GET /api/transfer
// Response: 200 OK with array of Transfer
// Error: 500 Internal Server Error if retrieval fails
func (h *TransferHandler) Transfers(w http.ResponseWriter, r *http.Request) {
	transfers, err := h.transferService.ListTransfers(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransfers.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transfers)
}

// GetTransfer handles GET requests to retrieve a single transfer.
//
// Endpoint: GET /api/transfer/{uuid}
// Response: 200 OK with Transfer
// Error: 404 Not Found if transfer not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransferHandler) GetTransfer(w http.ResponseWriter, r *http.Request) {
	transferID := chi.URLParam(r, "uuid")

	transfer, err := h.transferService.GetTransfer(r.Context(), transferID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransferNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransferNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransfer.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transfer)
}

// CreateTransfer handles POST requests to record a deposit or withdrawal.
//
// Endpoint: POST /api/transfer
// Request Body: CreateTransferRequest (date, type, amount, method, notes)
// Response: 201 Created with Transfer
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *TransferHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransferRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransfer(req); err != nil {
		response.RespondValidationError(w, err)
		return
	}

	transfer, err := h.transferService.CreateTransfer(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create transfer", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, transfer)
}

// DeleteTransfer handles DELETE requests to remove a transfer.
//
// Endpoint: DELETE /api/transfer/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if transfer not found
// Error: 500 Internal Server Error if deletion fails
func (h *TransferHandler) DeleteTransfer(w http.ResponseWriter, r *http.Request) {
	transferID := chi.URLParam(r, "uuid")

	if err := h.transferService.DeleteTransfer(r.Context(), transferID); err != nil {
		if errors.Is(err, apperrors.ErrTransferNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransferNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete transfer", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

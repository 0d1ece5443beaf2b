package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Trading-Journal-Backend/internal/api/request"
	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
	"github.com/ndewijer/Trading-Journal-Backend/internal/repository"
)

// TransferService handles capital deposits and withdrawals.
type TransferService struct {
	transferRepo *repository.TransferRepository
	log          zerolog.Logger
}

// NewTransferService creates a new TransferService with the provided repository dependencies.
func NewTransferService(transferRepo *repository.TransferRepository, log zerolog.Logger) *TransferService {
	return &TransferService{
		transferRepo: transferRepo,
		log:          log.With().Str("service", "transfer").Logger(),
	}
}

// ListTransfers returns every transfer in date order.
func (s *TransferService) ListTransfers(ctx context.Context) ([]model.Transfer, error) {
	return s.transferRepo.GetTransfers(ctx)
}

// GetTransfer retrieves a single transfer by its ID.
func (s *TransferService) GetTransfer(ctx context.Context, transferID string) (model.Transfer, error) {
	return s.transferRepo.GetTransfer(ctx, transferID)
}

// CreateTransfer records a deposit or withdrawal.
func (s *TransferService) CreateTransfer(ctx context.Context, req request.CreateTransferRequest) (*model.Transfer, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	transfer := &model.Transfer{
		ID:        uuid.New().String(),
		Date:      date,
		Type:      req.Type,
		Amount:    req.Amount,
		Method:    req.Method,
		Notes:     normalizeNotes(req.Notes),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.transferRepo.InsertTransfer(ctx, transfer); err != nil {
		return nil, fmt.Errorf("failed to create transfer: %w", err)
	}

	s.log.Info().Str("transfer_id", transfer.ID).Str("type", transfer.Type).Float64("amount", transfer.Amount).Msg("transfer created")
	return transfer, nil
}

// DeleteTransfer removes a transfer.
// Returns ErrTransferNotFound if the transfer doesn't exist.
func (s *TransferService) DeleteTransfer(ctx context.Context, transferID string) error {
	return s.transferRepo.DeleteTransfer(ctx, transferID)
}

package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Trading-Journal-Backend/internal/api/request"
	"github.com/ndewijer/Trading-Journal-Backend/internal/apperrors"
	"github.com/ndewijer/Trading-Journal-Backend/internal/metrics"
	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
	"github.com/ndewijer/Trading-Journal-Backend/internal/repository"
	"github.com/ndewijer/Trading-Journal-Backend/internal/validation"
)

// LotSizer resolves the contract multiplier of an instrument.
type LotSizer interface {
	LotSize(name string) float64
}

// TradeService handles trade-related business logic operations.
type TradeService struct {
	db        *sql.DB
	tradeRepo *repository.TradeRepository
	lotSizes  LotSizer
	log       zerolog.Logger
	now       func() time.Time
}

// NewTradeService creates a new TradeService with the provided repository dependencies.
func NewTradeService(
	db *sql.DB,
	tradeRepo *repository.TradeRepository,
	lotSizes LotSizer,
	log zerolog.Logger,
) *TradeService {
	return &TradeService{
		db:        db,
		tradeRepo: tradeRepo,
		lotSizes:  lotSizes,
		log:       log.With().Str("service", "trade").Logger(),
		now:       time.Now,
	}
}

// ListTrades returns the trades with the given status, or every trade when status is empty.
// Returns ErrInvalidStatus for any other status value.
func (s *TradeService) ListTrades(ctx context.Context, status string) ([]model.Trade, error) {
	if status != "" && status != model.TradeStatusActive && status != model.TradeStatusClosed {
		return nil, apperrors.ErrInvalidStatus
	}
	return s.tradeRepo.GetTrades(ctx, model.TradeFilter{Status: status})
}

// GetTrade retrieves a single trade with its strike legs.
func (s *TradeService) GetTrade(ctx context.Context, tradeID string) (model.Trade, error) {
	return s.tradeRepo.GetTrade(ctx, tradeID)
}

// CreateTrade stores a new active trade. Strike legs get fresh IDs and the
// calculated max profit/loss is derived from them with the instrument's lot size.
//
// Returns a *validation.Error if the request asks for any status other than
// active or carries a closing date; trades are closed through CloseTrade.
func (s *TradeService) CreateTrade(ctx context.Context, req request.CreateTradeRequest) (*model.Trade, error) {
	if err := validation.ValidateNewTrade(req.Status, req.ClosingDate); err != nil {
		return nil, err
	}

	createdDate, err := parseDate(req.CreatedDate)
	if err != nil {
		return nil, fmt.Errorf("invalid createdDate: %w", err)
	}
	strikes, err := strikeLegs(req.Strikes)
	if err != nil {
		return nil, fmt.Errorf("invalid strike expiry: %w", err)
	}

	now := s.now().UTC()
	trade := &model.Trade{
		ID:                  uuid.New().String(),
		Status:              model.TradeStatusActive,
		InstrumentName:      req.InstrumentName,
		InstrumentType:      req.InstrumentType,
		Bias:                req.Bias,
		Setup:               req.Setup,
		Strategy:            req.Strategy,
		Capital:             string(req.Capital),
		ProfitLoss:          string(req.ProfitLoss),
		IsProfit:            req.IsProfit,
		MaxProfit:           string(req.MaxProfit),
		MaxProfitPercentage: req.MaxProfitPercentage,
		MaxLoss:             string(req.MaxLoss),
		MaxLossPercentage:   req.MaxLossPercentage,
		Strikes:             strikes,
		CreatedDate:         createdDate,
		Notes:               normalizeNotes(req.Notes),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	for i := range trade.Strikes {
		trade.Strikes[i].ID = uuid.New().String()
	}
	s.applyEstimate(trade)

	err = s.inTx(ctx, func(repo *repository.TradeRepository) error {
		return repo.InsertTrade(ctx, trade)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create trade: %w", err)
	}

	s.log.Info().Str("trade_id", trade.ID).Str("instrument", trade.InstrumentName).Msg("trade created")
	return trade, nil
}

// UpdateTrade modifies an existing trade. Only provided fields in the request are
// updated; omitted fields remain unchanged. The calculated max profit/loss is
// always recomputed.
//
// Returns ErrTradeNotFound if the trade doesn't exist, and a *validation.Error
// when a change to strategy or strikes leaves a strategy that needs strike legs
// without any.
//
//nolint:gocyclo // One branch per optional field
func (s *TradeService) UpdateTrade(ctx context.Context, tradeID string, req request.UpdateTradeRequest) (*model.Trade, error) {
	trade, err := s.tradeRepo.GetTrade(ctx, tradeID)
	if err != nil {
		return nil, err
	}

	if req.InstrumentName != nil {
		trade.InstrumentName = *req.InstrumentName
	}
	if req.InstrumentType != nil {
		trade.InstrumentType = *req.InstrumentType
	}
	if req.Bias != nil {
		trade.Bias = *req.Bias
	}
	if req.Setup != nil {
		trade.Setup = *req.Setup
	}
	if req.Strategy != nil {
		trade.Strategy = *req.Strategy
	}
	if req.Capital != nil {
		trade.Capital = string(*req.Capital)
	}
	if req.ProfitLoss != nil {
		trade.ProfitLoss = string(*req.ProfitLoss)
	}
	if req.IsProfit != nil {
		trade.IsProfit = req.IsProfit
	}
	if req.MaxProfit != nil {
		trade.MaxProfit = string(*req.MaxProfit)
	}
	if req.MaxProfitPercentage != nil {
		trade.MaxProfitPercentage = *req.MaxProfitPercentage
	}
	if req.MaxLoss != nil {
		trade.MaxLoss = string(*req.MaxLoss)
	}
	if req.MaxLossPercentage != nil {
		trade.MaxLossPercentage = *req.MaxLossPercentage
	}
	if req.CreatedDate != nil {
		createdDate, err := parseDate(*req.CreatedDate)
		if err != nil {
			return nil, fmt.Errorf("invalid createdDate: %w", err)
		}
		trade.CreatedDate = createdDate
	}
	if req.ClosingDate != nil {
		if *req.ClosingDate == "" {
			trade.ClosingDate = nil
		} else {
			closingDate, err := parseDate(*req.ClosingDate)
			if err != nil {
				return nil, fmt.Errorf("invalid closingDate: %w", err)
			}
			trade.ClosingDate = &closingDate
		}
	}
	if req.Notes != nil {
		trade.Notes = normalizeNotes(req.Notes)
	}
	if req.Strikes != nil {
		strikes, err := strikeLegs(*req.Strikes)
		if err != nil {
			return nil, fmt.Errorf("invalid strike expiry: %w", err)
		}
		for i := range strikes {
			strikes[i].ID = uuid.New().String()
		}
		trade.Strikes = strikes
	}

	if req.Strategy != nil || req.Strikes != nil {
		if err := validation.ValidateStrategyStrikes(trade.Strategy, len(trade.Strikes)); err != nil {
			return nil, err
		}
	}
	if trade.ClosingDate != nil && trade.ClosingDate.Before(trade.CreatedDate) {
		return nil, fmt.Errorf("closingDate cannot be before createdDate: %w", apperrors.ErrInvalidDateRange)
	}

	trade.UpdatedAt = s.now().UTC()
	s.applyEstimate(&trade)

	err = s.inTx(ctx, func(repo *repository.TradeRepository) error {
		return repo.UpdateTrade(ctx, &trade)
	})
	if err != nil {
		return nil, err
	}

	return &trade, nil
}

// CloseTrade moves an active trade to closed, recording its closing date and
// final P&L. A trade is closed exactly once.
//
// Returns:
//   - apperrors.ErrTradeNotFound if the trade doesn't exist
//   - apperrors.ErrTradeAlreadyClosed if the trade is already closed
func (s *TradeService) CloseTrade(ctx context.Context, tradeID string, req request.CloseTradeRequest) (*model.Trade, error) {
	trade, err := s.tradeRepo.GetTrade(ctx, tradeID)
	if err != nil {
		return nil, err
	}
	if trade.IsClosed() {
		return nil, apperrors.ErrTradeAlreadyClosed
	}

	now := s.now().UTC()
	closingDate := today(now)
	if req.ClosingDate != nil && *req.ClosingDate != "" {
		closingDate, err = parseDate(*req.ClosingDate)
		if err != nil {
			return nil, fmt.Errorf("invalid closingDate: %w", err)
		}
	}
	if closingDate.Before(trade.CreatedDate) {
		return nil, fmt.Errorf("closingDate cannot be before createdDate: %w", apperrors.ErrInvalidDateRange)
	}

	trade.Status = model.TradeStatusClosed
	trade.ClosingDate = &closingDate
	trade.ProfitLoss = string(req.ProfitLoss)
	trade.IsProfit = req.IsProfit
	if req.Notes != nil {
		trade.Notes = normalizeNotes(req.Notes)
	}
	trade.UpdatedAt = now

	err = s.inTx(ctx, func(repo *repository.TradeRepository) error {
		return repo.UpdateTrade(ctx, &trade)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("trade_id", trade.ID).
		Float64("pnl", metrics.SignedPnL(trade)).
		Msg("trade closed")
	return &trade, nil
}

// DeleteTrade removes a trade and its strike legs.
// Returns ErrTradeNotFound if the trade doesn't exist.
func (s *TradeService) DeleteTrade(ctx context.Context, tradeID string) error {
	return s.inTx(ctx, func(repo *repository.TradeRepository) error {
		return repo.DeleteTrade(ctx, tradeID)
	})
}

// applyEstimate recomputes the strike-derived figures. No estimate leaves both nil.
func (s *TradeService) applyEstimate(trade *model.Trade) {
	trade.CalculatedMaxProfit = nil
	trade.CalculatedMaxLoss = nil

	estimate := metrics.EstimateMaxProfitLoss(trade.Strikes, s.lotSizes.LotSize(trade.InstrumentName))
	if estimate == nil {
		return
	}
	maxProfit, maxLoss := estimate.MaxProfit, estimate.MaxLoss
	trade.CalculatedMaxProfit = &maxProfit
	trade.CalculatedMaxLoss = &maxLoss
}

// inTx runs fn against a transaction-scoped repository and commits on success.
func (s *TradeService) inTx(ctx context.Context, fn func(repo *repository.TradeRepository) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		//nolint:errcheck // Rollback after Commit returns ErrTxDone and is harmless
		tx.Rollback()
	}()

	if err := fn(s.tradeRepo.WithTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

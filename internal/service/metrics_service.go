package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Trading-Journal-Backend/internal/apperrors"
	"github.com/ndewijer/Trading-Journal-Backend/internal/metrics"
	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
	"github.com/ndewijer/Trading-Journal-Backend/internal/repository"
)

// JournalSettings are the account-level scalars the metrics are computed against.
type JournalSettings struct {
	InitialCapital float64
	BuyingPower    float64
}

// Summary is the dashboard payload for one view of the journal.
type Summary struct {
	View             string                    `json:"view"`
	Snapshot         metrics.Snapshot          `json:"snapshot"`
	CumulativeReturn *metrics.CumulativeReturn `json:"cumulativeReturn"`
	Trades           []metrics.TradeRow        `json:"trades"`
}

// MetricsService assembles summaries from stored trades and transfers.
type MetricsService struct {
	tradeRepo    *repository.TradeRepository
	transferRepo *repository.TransferRepository
	lotSizes     LotSizer
	settings     JournalSettings
	log          zerolog.Logger
}

// NewMetricsService creates a new MetricsService with the provided repository dependencies.
func NewMetricsService(
	tradeRepo *repository.TradeRepository,
	transferRepo *repository.TransferRepository,
	lotSizes LotSizer,
	settings JournalSettings,
	log zerolog.Logger,
) *MetricsService {
	return &MetricsService{
		tradeRepo:    tradeRepo,
		transferRepo: transferRepo,
		lotSizes:     lotSizes,
		settings:     settings,
		log:          log.With().Str("service", "metrics").Logger(),
	}
}

// Summary computes the snapshot and per-trade rows for a view. status may be
// "active", "closed" or empty for every trade. Every view except "active" also
// carries the cumulative return over closed trades and all transfers, starting
// from the configured initial capital.
//
// Trades and transfers are loaded concurrently.
func (s *MetricsService) Summary(ctx context.Context, status string) (*Summary, error) {
	if status != "" && status != model.TradeStatusActive && status != model.TradeStatusClosed {
		return nil, apperrors.ErrInvalidStatus
	}
	withReturn := status != model.TradeStatusActive

	var trades []model.Trade
	var transfers []model.Transfer

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trades, err = s.tradeRepo.GetTrades(gctx, model.TradeFilter{})
		if err != nil {
			return fmt.Errorf("failed to load trades: %w", err)
		}
		return nil
	})
	if withReturn {
		g.Go(func() error {
			var err error
			transfers, err = s.transferRepo.GetTransfers(gctx)
			if err != nil {
				return fmt.Errorf("failed to load transfers: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := metrics.FilterByStatus(trades, status)
	summary := &Summary{
		View:     status,
		Snapshot: metrics.ComputeSnapshot(view, s.settings.BuyingPower),
		Trades:   metrics.DescribeTrades(view),
	}

	if withReturn {
		closed := metrics.FilterByStatus(trades, model.TradeStatusClosed)
		cumulative := metrics.ComputeCumulativeReturn(closed, transfers, s.settings.InitialCapital)
		summary.CumulativeReturn = &cumulative
	}

	s.log.Debug().
		Str("view", status).
		Int("trades", summary.Snapshot.TradeCount).
		Float64("total_pnl", summary.Snapshot.TotalPnL).
		Msg("summary computed")

	return summary, nil
}

// Estimate returns the strike-derived max profit/loss for the given legs, or
// nil when they do not form a supported spread.
func (s *MetricsService) Estimate(instrumentName string, strikes []model.StrikeLeg) *metrics.Estimate {
	return metrics.EstimateMaxProfitLoss(strikes, s.lotSizes.LotSize(instrumentName))
}

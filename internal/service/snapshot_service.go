package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Trading-Journal-Backend/internal/apperrors"
	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
	"github.com/ndewijer/Trading-Journal-Backend/internal/repository"
)

// DefaultHistoryDays is the window returned by GetHistory when no start date is given.
const DefaultHistoryDays = 90

// snapshotViews are the summaries captured by every run.
var snapshotViews = []string{model.TradeStatusActive, model.TradeStatusClosed}

// SnapshotService persists daily copies of the summary figures and serves them back as history.
type SnapshotService struct {
	metricsService *MetricsService
	snapshotRepo   *repository.SnapshotRepository
	log            zerolog.Logger
	now            func() time.Time
	cron           *cron.Cron
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(
	metricsService *MetricsService,
	snapshotRepo *repository.SnapshotRepository,
	log zerolog.Logger,
) *SnapshotService {
	return &SnapshotService{
		metricsService: metricsService,
		snapshotRepo:   snapshotRepo,
		log:            log.With().Str("service", "snapshot").Logger(),
		now:            time.Now,
	}
}

// CaptureSnapshots computes the active and closed summaries and stores one row
// per view for today's date, replacing rows already captured today.
func (s *SnapshotService) CaptureSnapshots(ctx context.Context) ([]model.MetricsSnapshot, error) {
	now := s.now().UTC()
	date := today(now)

	snapshots := make([]model.MetricsSnapshot, 0, len(snapshotViews))
	for _, view := range snapshotViews {
		summary, err := s.metricsService.Summary(ctx, view)
		if err != nil {
			return nil, fmt.Errorf("failed to compute %s summary: %w", view, err)
		}

		record := model.MetricsSnapshot{
			ID:                    uuid.New().String(),
			Date:                  date,
			View:                  view,
			TradeCount:            summary.Snapshot.TradeCount,
			TotalPnL:              round(summary.Snapshot.TotalPnL),
			PercentageReturn:      round(summary.Snapshot.PercentageReturn),
			TotalCapital:          round(summary.Snapshot.TotalCapital),
			TotalMaxProfit:        round(summary.Snapshot.TotalMaxProfit),
			TotalMaxLoss:          round(summary.Snapshot.TotalMaxLoss),
			BuyingPowerPercentage: round(summary.Snapshot.BuyingPowerPercentage),
			TotalRisk:             round(summary.Snapshot.TotalRisk),
			WinRate:               round(summary.Snapshot.WinRate),
			CalculatedAt:          now,
		}
		if summary.CumulativeReturn != nil {
			record.CumulativeReturn = round(summary.CumulativeReturn.CumulativeReturn)
			record.FinalCapital = round(summary.CumulativeReturn.FinalCapital)
		}

		if err := s.snapshotRepo.UpsertSnapshot(ctx, record); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, record)
	}

	s.log.Info().Str("date", date.Format("2006-01-02")).Int("views", len(snapshots)).Msg("metrics snapshots captured")
	return snapshots, nil
}

// GetHistory returns stored snapshots matching the filters. A missing end date
// means today and a missing start date means DefaultHistoryDays before the end.
//
// Returns ErrInvalidDateRange if the start date is after the end date.
func (s *SnapshotService) GetHistory(ctx context.Context, filters model.HistoryFilters) ([]model.MetricsSnapshot, error) {
	endDate := today(s.now())
	if filters.EndDate != nil {
		endDate = *filters.EndDate
	}
	startDate := endDate.AddDate(0, 0, -DefaultHistoryDays)
	if filters.StartDate != nil {
		startDate = *filters.StartDate
	}
	if startDate.After(endDate) {
		return nil, apperrors.ErrInvalidDateRange
	}

	history := []model.MetricsSnapshot{}
	err := s.snapshotRepo.GetSnapshots(ctx, startDate, endDate, func(record model.MetricsSnapshot) error {
		if filters.View == "" || record.View == filters.View {
			history = append(history, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if filters.SortDir == "desc" {
		sort.SliceStable(history, func(i, j int) bool {
			return history[i].Date.After(history[j].Date)
		})
	}

	return history, nil
}

// Schedule registers CaptureSnapshots on a cron spec such as "@daily" or
// "0 18 * * 1-5". An empty spec disables the job. Call Start to run it.
func (s *SnapshotService) Schedule(spec string) error {
	if spec == "" {
		s.log.Info().Msg("snapshot schedule disabled")
		return nil
	}

	c := cron.New(cron.WithLocation(time.UTC))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := s.CaptureSnapshots(ctx); err != nil {
			s.log.Error().Err(err).Msg("scheduled snapshot failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid snapshot schedule %q: %w", spec, err)
	}

	s.cron = c
	s.log.Info().Str("schedule", spec).Msg("snapshot job scheduled")
	return nil
}

// Scheduled reports whether a snapshot job is registered.
func (s *SnapshotService) Scheduled() bool {
	return s.cron != nil
}

// Start runs the scheduler in the background. It is a no-op without a schedule.
func (s *SnapshotService) Start() {
	if s.cron != nil {
		s.cron.Start()
	}
}

// Stop halts the scheduler and returns a context that is done once a running
// job has finished.
func (s *SnapshotService) Stop() context.Context {
	if s.cron == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	return s.cron.Stop()
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
)

// SnapshotRepository provides data access methods for the metrics_snapshot table.
type SnapshotRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSnapshotRepository creates a new repository instance.
func NewSnapshotRepository(db *sql.DB, log zerolog.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		db:  db,
		log: log.With().Str("repo", "metrics_snapshot").Logger(),
	}
}

// GetSnapshots streams stored snapshots within [startDate, endDate] to callback,
// ordered by date and view.
//
// The callback pattern lets the caller process records one at a time without
// loading the entire range into memory.
//
// Returns an error if the query fails or if the callback returns an error.
func (r *SnapshotRepository) GetSnapshots(
	ctx context.Context,
	startDate, endDate time.Time,
	callback func(record model.MetricsSnapshot) error,
) error {
	query := `
		SELECT id, date, view, trade_count, total_pnl, percentage_return, total_capital,
		       total_max_profit, total_max_loss, buying_power_percentage, total_risk,
		       win_rate, cumulative_return, final_capital, calculated_at
		FROM metrics_snapshot
		WHERE date >= ?
		AND date <= ?
		ORDER BY date ASC, view ASC
	`

	rows, err := r.db.QueryContext(ctx, query, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("failed to query metrics_snapshot: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var record model.MetricsSnapshot
		var dateStr, calculatedAtStr string

		err := rows.Scan(
			&record.ID,
			&dateStr,
			&record.View,
			&record.TradeCount,
			&record.TotalPnL,
			&record.PercentageReturn,
			&record.TotalCapital,
			&record.TotalMaxProfit,
			&record.TotalMaxLoss,
			&record.BuyingPowerPercentage,
			&record.TotalRisk,
			&record.WinRate,
			&record.CumulativeReturn,
			&record.FinalCapital,
			&calculatedAtStr,
		)
		if err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}

		record.Date, err = ParseTime(dateStr)
		if err != nil {
			return fmt.Errorf("failed to parse date: %w", err)
		}

		record.CalculatedAt, err = ParseTime(calculatedAtStr)
		if err != nil {
			return fmt.Errorf("failed to parse calculated_at: %w", err)
		}

		if err := callback(record); err != nil {
			return err
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}

	return nil
}

// UpsertSnapshot stores a snapshot, replacing any existing row for the same date and view.
// The stored row keeps its original ID on replacement.
func (r *SnapshotRepository) UpsertSnapshot(ctx context.Context, s model.MetricsSnapshot) error {
	query := `
		INSERT INTO metrics_snapshot (
			id, date, view, trade_count, total_pnl, percentage_return, total_capital,
			total_max_profit, total_max_loss, buying_power_percentage, total_risk,
			win_rate, cumulative_return, final_capital, calculated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date, view) DO UPDATE SET
			trade_count = excluded.trade_count,
			total_pnl = excluded.total_pnl,
			percentage_return = excluded.percentage_return,
			total_capital = excluded.total_capital,
			total_max_profit = excluded.total_max_profit,
			total_max_loss = excluded.total_max_loss,
			buying_power_percentage = excluded.buying_power_percentage,
			total_risk = excluded.total_risk,
			win_rate = excluded.win_rate,
			cumulative_return = excluded.cumulative_return,
			final_capital = excluded.final_capital,
			calculated_at = excluded.calculated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Date.Format("2006-01-02"),
		s.View,
		s.TradeCount,
		s.TotalPnL,
		s.PercentageReturn,
		s.TotalCapital,
		s.TotalMaxProfit,
		s.TotalMaxLoss,
		s.BuyingPowerPercentage,
		s.TotalRisk,
		s.WinRate,
		s.CumulativeReturn,
		s.FinalCapital,
		s.CalculatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert metrics_snapshot: %w", err)
	}

	r.log.Debug().Str("date", s.Date.Format("2006-01-02")).Str("view", s.View).Msg("snapshot stored")
	return nil
}

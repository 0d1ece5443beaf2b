package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Trading-Journal-Backend/internal/apperrors"
	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
)

// tradeColumns must stay in the order scanTrade expects.
const tradeColumns = `id, status, instrument_name, instrument_type, bias, setup, strategy,
	capital, profit_loss, is_profit, max_profit, max_profit_percentage, max_loss,
	max_loss_percentage, calculated_max_profit, calculated_max_loss, created_date,
	closing_date, notes, created_at, updated_at`

// TradeRepository provides data access methods for the trade and trade_strike tables.
type TradeRepository struct {
	db  *sql.DB
	tx  *sql.Tx
	log zerolog.Logger
}

// NewTradeRepository creates a new TradeRepository with the provided database connection.
func NewTradeRepository(db *sql.DB, log zerolog.Logger) *TradeRepository {
	return &TradeRepository{
		db:  db,
		log: log.With().Str("repo", "trade").Logger(),
	}
}

// WithTx returns a new TradeRepository scoped to the provided transaction.
func (r *TradeRepository) WithTx(tx *sql.Tx) *TradeRepository {
	return &TradeRepository{
		db:  r.db,
		tx:  tx,
		log: r.log,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *TradeRepository) getQuerier() interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

type rowScanner interface {
	Scan(dest ...any) error
}

// GetTrades retrieves trades matching the filter, ordered by creation date and
// insertion time. Strike legs are attached to every returned trade.
//
// Returns an empty slice when nothing matches.
func (r *TradeRepository) GetTrades(ctx context.Context, filter model.TradeFilter) ([]model.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trade`
	var args []any
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY created_date ASC, created_at ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade table: %w", err)
	}
	defer rows.Close()

	trades := []model.Trade{}
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade table: %w", err)
	}
	// rows must be closed before the strike query when running on a single connection
	rows.Close()

	if len(trades) == 0 {
		return trades, nil
	}

	ids := make([]string, len(trades))
	for i, t := range trades {
		ids[i] = t.ID
	}
	strikes, err := r.getStrikes(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range trades {
		trades[i].Strikes = strikes[trades[i].ID]
		if trades[i].Strikes == nil {
			trades[i].Strikes = []model.StrikeLeg{}
		}
	}

	return trades, nil
}

// GetTrade retrieves a single trade with its strike legs.
// Returns ErrTradeNotFound if no trade with the given ID exists.
func (r *TradeRepository) GetTrade(ctx context.Context, tradeID string) (model.Trade, error) {
	query := `SELECT ` + tradeColumns + ` FROM trade WHERE id = ?`

	t, err := scanTrade(r.getQuerier().QueryRowContext(ctx, query, tradeID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Trade{}, apperrors.ErrTradeNotFound
	}
	if err != nil {
		return model.Trade{}, err
	}

	strikes, err := r.getStrikes(ctx, []string{tradeID})
	if err != nil {
		return model.Trade{}, err
	}
	t.Strikes = strikes[tradeID]
	if t.Strikes == nil {
		t.Strikes = []model.StrikeLeg{}
	}

	return t, nil
}

func (r *TradeRepository) getStrikes(ctx context.Context, tradeIDs []string) (map[string][]model.StrikeLeg, error) {
	placeholders := make([]string, len(tradeIDs))
	args := make([]any, len(tradeIDs))
	for i, id := range tradeIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := `
		SELECT id, trade_id, strike, option_type, position, lots, expiry, ltp
		FROM trade_strike
		WHERE trade_id IN (` + strings.Join(placeholders, ",") + `)
		ORDER BY rowid ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade_strike table: %w", err)
	}
	defer rows.Close()

	strikes := make(map[string][]model.StrikeLeg)
	for rows.Next() {
		var s model.StrikeLeg
		var expiryStr string
		if err := rows.Scan(&s.ID, &s.TradeID, &s.Strike, &s.OptionType, &s.Position, &s.Lots, &expiryStr, &s.LTP); err != nil {
			return nil, fmt.Errorf("failed to scan trade_strike table results: %w", err)
		}
		s.Expiry, err = ParseTime(expiryStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse expiry: %w", err)
		}
		strikes[s.TradeID] = append(strikes[s.TradeID], s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade_strike table: %w", err)
	}

	return strikes, nil
}

func scanTrade(row rowScanner) (model.Trade, error) {
	var t model.Trade
	var isProfit sql.NullBool
	var calcProfit, calcLoss sql.NullFloat64
	var createdDateStr, createdAtStr, updatedAtStr string
	var closingDateStr, notes sql.NullString

	err := row.Scan(
		&t.ID,
		&t.Status,
		&t.InstrumentName,
		&t.InstrumentType,
		&t.Bias,
		&t.Setup,
		&t.Strategy,
		&t.Capital,
		&t.ProfitLoss,
		&isProfit,
		&t.MaxProfit,
		&t.MaxProfitPercentage,
		&t.MaxLoss,
		&t.MaxLossPercentage,
		&calcProfit,
		&calcLoss,
		&createdDateStr,
		&closingDateStr,
		&notes,
		&createdAtStr,
		&updatedAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return t, err
	}
	if err != nil {
		return t, fmt.Errorf("failed to scan trade table results: %w", err)
	}

	if isProfit.Valid {
		t.IsProfit = &isProfit.Bool
	}
	if calcProfit.Valid {
		t.CalculatedMaxProfit = &calcProfit.Float64
	}
	if calcLoss.Valid {
		t.CalculatedMaxLoss = &calcLoss.Float64
	}
	if notes.Valid {
		t.Notes = &notes.String
	}

	t.CreatedDate, err = ParseTime(createdDateStr)
	if err != nil {
		return t, fmt.Errorf("failed to parse created_date: %w", err)
	}
	if closingDateStr.Valid && closingDateStr.String != "" {
		closing, err := ParseTime(closingDateStr.String)
		if err != nil {
			return t, fmt.Errorf("failed to parse closing_date: %w", err)
		}
		t.ClosingDate = &closing
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return t, fmt.Errorf("failed to parse created_at: %w", err)
	}
	t.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return t, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return t, nil
}

// InsertTrade stores a new trade and its strike legs.
// Run it through WithTx so the trade and its legs land together.
func (r *TradeRepository) InsertTrade(ctx context.Context, t *model.Trade) error {
	query := `INSERT INTO trade (` + tradeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.getQuerier().ExecContext(ctx, query, tradeArgs(t)...)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}

	if err := r.ReplaceStrikes(ctx, t.ID, t.Strikes); err != nil {
		return err
	}

	r.log.Debug().Str("trade_id", t.ID).Int("strikes", len(t.Strikes)).Msg("trade inserted")
	return nil
}

// UpdateTrade overwrites every column of an existing trade and replaces its strike legs.
// Returns ErrTradeNotFound if no trade with the given ID exists.
func (r *TradeRepository) UpdateTrade(ctx context.Context, t *model.Trade) error {
	query := `
		UPDATE trade
		SET status = ?, instrument_name = ?, instrument_type = ?, bias = ?, setup = ?,
		    strategy = ?, capital = ?, profit_loss = ?, is_profit = ?, max_profit = ?,
		    max_profit_percentage = ?, max_loss = ?, max_loss_percentage = ?,
		    calculated_max_profit = ?, calculated_max_loss = ?, created_date = ?,
		    closing_date = ?, notes = ?, created_at = ?, updated_at = ?
		WHERE id = ?
	`

	args := tradeArgs(t)
	args = append(args[1:], t.ID)

	result, err := r.getQuerier().ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update trade: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrTradeNotFound
	}

	return r.ReplaceStrikes(ctx, t.ID, t.Strikes)
}

// ReplaceStrikes deletes the strike legs of a trade and inserts the given ones.
// The legs' ID and TradeID fields are filled in place.
func (r *TradeRepository) ReplaceStrikes(ctx context.Context, tradeID string, strikes []model.StrikeLeg) error {
	if _, err := r.getQuerier().ExecContext(ctx, `DELETE FROM trade_strike WHERE trade_id = ?`, tradeID); err != nil {
		return fmt.Errorf("failed to delete trade_strike: %w", err)
	}

	query := `
		INSERT INTO trade_strike (id, trade_id, strike, option_type, position, lots, expiry, ltp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i := range strikes {
		s := &strikes[i]
		s.TradeID = tradeID
		_, err := r.getQuerier().ExecContext(ctx, query,
			s.ID,
			s.TradeID,
			s.Strike,
			s.OptionType,
			s.Position,
			s.Lots,
			s.Expiry.Format("2006-01-02"),
			s.LTP,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trade_strike: %w", err)
		}
	}

	return nil
}

// DeleteTrade removes a trade and its strike legs.
// Returns ErrTradeNotFound if no trade with the given ID exists.
func (r *TradeRepository) DeleteTrade(ctx context.Context, tradeID string) error {
	if _, err := r.getQuerier().ExecContext(ctx, `DELETE FROM trade_strike WHERE trade_id = ?`, tradeID); err != nil {
		return fmt.Errorf("failed to delete trade_strike: %w", err)
	}

	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM trade WHERE id = ?`, tradeID)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrTradeNotFound
	}

	r.log.Debug().Str("trade_id", tradeID).Msg("trade deleted")
	return nil
}

func tradeArgs(t *model.Trade) []any {
	var closingDate any
	if t.ClosingDate != nil && !t.ClosingDate.IsZero() {
		closingDate = t.ClosingDate.Format("2006-01-02")
	}
	return []any{
		t.ID,
		t.Status,
		t.InstrumentName,
		t.InstrumentType,
		t.Bias,
		t.Setup,
		t.Strategy,
		t.Capital,
		t.ProfitLoss,
		nullBool(t.IsProfit),
		t.MaxProfit,
		t.MaxProfitPercentage,
		t.MaxLoss,
		t.MaxLossPercentage,
		nullFloat(t.CalculatedMaxProfit),
		nullFloat(t.CalculatedMaxLoss),
		t.CreatedDate.Format("2006-01-02"),
		closingDate,
		nullString(t.Notes),
		t.CreatedAt.UTC().Format(time.RFC3339),
		t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

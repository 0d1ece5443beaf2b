package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Trading-Journal-Backend/internal/apperrors"
	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
)

// TransferRepository provides data access methods for the transfer table.
type TransferRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewTransferRepository creates a new TransferRepository with the provided database connection.
func NewTransferRepository(db *sql.DB, log zerolog.Logger) *TransferRepository {
	return &TransferRepository{
		db:  db,
		log: log.With().Str("repo", "transfer").Logger(),
	}
}

// GetTransfers retrieves every transfer in ascending date order. Transfers on
// the same date keep their insertion order.
func (r *TransferRepository) GetTransfers(ctx context.Context) ([]model.Transfer, error) {
	query := `
		SELECT id, date, type, amount, method, notes, created_at
		FROM transfer
		ORDER BY date ASC, rowid ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfer table: %w", err)
	}
	defer rows.Close()

	transfers := []model.Transfer{}
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transfer table: %w", err)
	}

	return transfers, nil
}

// GetTransfer retrieves a single transfer by its ID.
// Returns ErrTransferNotFound if no transfer with the given ID exists.
func (r *TransferRepository) GetTransfer(ctx context.Context, transferID string) (model.Transfer, error) {
	query := `
		SELECT id, date, type, amount, method, notes, created_at
		FROM transfer
		WHERE id = ?
	`

	t, err := scanTransfer(r.db.QueryRowContext(ctx, query, transferID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transfer{}, apperrors.ErrTransferNotFound
	}
	if err != nil {
		return model.Transfer{}, err
	}
	return t, nil
}

func scanTransfer(row rowScanner) (model.Transfer, error) {
	var t model.Transfer
	var dateStr, createdAtStr string
	var notes sql.NullString

	err := row.Scan(&t.ID, &dateStr, &t.Type, &t.Amount, &t.Method, &notes, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return t, err
	}
	if err != nil {
		return t, fmt.Errorf("failed to scan transfer table results: %w", err)
	}

	if notes.Valid {
		t.Notes = &notes.String
	}
	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return t, fmt.Errorf("failed to parse date: %w", err)
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return t, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return t, nil
}

// InsertTransfer stores a new transfer.
func (r *TransferRepository) InsertTransfer(ctx context.Context, t *model.Transfer) error {
	query := `
		INSERT INTO transfer (id, date, type, amount, method, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Date.Format("2006-01-02"),
		t.Type,
		t.Amount,
		t.Method,
		nullString(t.Notes),
		t.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transfer: %w", err)
	}

	r.log.Debug().Str("transfer_id", t.ID).Str("type", t.Type).Msg("transfer inserted")
	return nil
}

// DeleteTransfer removes a transfer by its ID.
// Returns ErrTransferNotFound if no transfer with the given ID exists.
func (r *TransferRepository) DeleteTransfer(ctx context.Context, transferID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transfer WHERE id = ?`, transferID)
	if err != nil {
		return fmt.Errorf("failed to delete transfer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrTransferNotFound
	}

	return nil
}

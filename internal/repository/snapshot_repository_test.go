package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
	"github.com/ndewijer/Trading-Journal-Backend/internal/repository"
	"github.com/ndewijer/Trading-Journal-Backend/internal/testutil"
)

func TestSnapshotRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db, zerolog.Nop())

	date := testutil.MustDate(t, "2024-04-01")
	original := model.MetricsSnapshot{
		ID:           testutil.MakeID(),
		Date:         date,
		View:         model.TradeStatusClosed,
		TradeCount:   3,
		TotalPnL:     1200,
		CalculatedAt: time.Now().UTC(),
	}

	t.Run("upsert replaces the row for the same date and view", func(t *testing.T) {
		if err := repo.UpsertSnapshot(ctx, original); err != nil {
			t.Fatalf("UpsertSnapshot() returned unexpected error: %v", err)
		}

		replacement := original
		replacement.ID = testutil.MakeID()
		replacement.TradeCount = 4
		replacement.TotalPnL = 1800
		if err := repo.UpsertSnapshot(ctx, replacement); err != nil {
			t.Fatalf("UpsertSnapshot() returned unexpected error: %v", err)
		}

		testutil.AssertRowCount(t, db, "metrics_snapshot", 1)

		var got []model.MetricsSnapshot
		err := repo.GetSnapshots(ctx, date, date, func(record model.MetricsSnapshot) error {
			got = append(got, record)
			return nil
		})
		if err != nil {
			t.Fatalf("GetSnapshots() returned unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("Expected 1 snapshot, got %d", len(got))
		}
		if got[0].ID != original.ID {
			t.Errorf("Expected original ID to be kept, got %s", got[0].ID)
		}
		if got[0].TradeCount != 4 || got[0].TotalPnL != 1800 {
			t.Errorf("Expected replaced figures, got %+v", got[0])
		}
		if !got[0].Date.Equal(date) {
			t.Errorf("Expected date %v, got %v", date, got[0].Date)
		}
	})

	t.Run("callback error stops iteration", func(t *testing.T) {
		testutil.NewSnapshot().WithDate(date).Build(t, db)
		stop := errors.New("stop")

		calls := 0
		err := repo.GetSnapshots(ctx, date, date, func(model.MetricsSnapshot) error {
			calls++
			return stop
		})
		if !errors.Is(err, stop) {
			t.Errorf("Expected callback error, got %v", err)
		}
		if calls != 1 {
			t.Errorf("Expected 1 callback call, got %d", calls)
		}
	})
}

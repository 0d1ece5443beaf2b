package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Trading-Journal-Backend/internal/apperrors"
	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
	"github.com/ndewijer/Trading-Journal-Backend/internal/repository"
	"github.com/ndewijer/Trading-Journal-Backend/internal/testutil"
)

func TestTradeRepository_GetTrades(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewTradeRepository(db, zerolog.Nop())

	second := testutil.NewTrade().WithCreatedDate(testutil.MustDate(t, "2024-02-01")).Build(t, db)
	first := testutil.NewTrade().
		WithCreatedDate(testutil.MustDate(t, "2024-01-05")).
		WithStrikes(testutil.CreditSpreadLegs()...).
		Build(t, db)
	closed := testutil.NewTrade().Closed(testutil.MustDate(t, "2024-01-20")).Build(t, db)

	t.Run("returns all trades ordered by created date with strikes", func(t *testing.T) {
		trades, err := repo.GetTrades(ctx, model.TradeFilter{})
		if err != nil {
			t.Fatalf("GetTrades() returned unexpected error: %v", err)
		}
		if len(trades) != 3 {
			t.Fatalf("Expected 3 trades, got %d", len(trades))
		}
		if trades[0].ID != first.ID || trades[2].ID != second.ID {
			t.Errorf("Expected trades ordered by created date, got %s, %s, %s", trades[0].ID, trades[1].ID, trades[2].ID)
		}
		if len(trades[0].Strikes) != 2 {
			t.Errorf("Expected 2 strikes on first trade, got %d", len(trades[0].Strikes))
		}
		if trades[0].Strikes[0].Position != model.PositionSell {
			t.Errorf("Expected strikes in insertion order, got %s first", trades[0].Strikes[0].Position)
		}
		if trades[2].Strikes == nil || len(trades[2].Strikes) != 0 {
			t.Errorf("Expected empty strikes slice, got %v", trades[2].Strikes)
		}
	})

	t.Run("filters by status", func(t *testing.T) {
		trades, err := repo.GetTrades(ctx, model.TradeFilter{Status: model.TradeStatusClosed})
		if err != nil {
			t.Fatalf("GetTrades() returned unexpected error: %v", err)
		}
		if len(trades) != 1 || trades[0].ID != closed.ID {
			t.Errorf("Expected only the closed trade, got %+v", trades)
		}
		if trades[0].ClosingDate == nil || trades[0].ClosingDate.Format("2006-01-02") != "2024-01-20" {
			t.Errorf("Expected closing date 2024-01-20, got %v", trades[0].ClosingDate)
		}
	})

	t.Run("returns empty slice when nothing matches", func(t *testing.T) {
		emptyDB := testutil.SetupTestDB(t)
		trades, err := repository.NewTradeRepository(emptyDB, zerolog.Nop()).GetTrades(ctx, model.TradeFilter{})
		if err != nil {
			t.Fatalf("GetTrades() returned unexpected error: %v", err)
		}
		if trades == nil || len(trades) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", trades)
		}
	})
}

func TestTradeRepository_InsertAndGet(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewTradeRepository(db, zerolog.Nop())

	t.Run("round-trips nullable columns", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Second)
		trade := &model.Trade{
			ID:             testutil.MakeID(),
			Status:         model.TradeStatusActive,
			InstrumentName: "NIFTY",
			InstrumentType: model.InstrumentTypeIndex,
			Bias:           "bearish",
			Capital:        "₹1,20,000",
			CreatedDate:    testutil.MustDate(t, "2024-03-01"),
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if err := repo.InsertTrade(ctx, trade); err != nil {
			t.Fatalf("InsertTrade() returned unexpected error: %v", err)
		}

		stored, err := repo.GetTrade(ctx, trade.ID)
		if err != nil {
			t.Fatalf("GetTrade() returned unexpected error: %v", err)
		}
		if stored.IsProfit != nil || stored.CalculatedMaxProfit != nil || stored.ClosingDate != nil || stored.Notes != nil {
			t.Errorf("Expected nullable columns to stay nil, got %+v", stored)
		}
		if !stored.CreatedDate.Equal(trade.CreatedDate) {
			t.Errorf("Expected created date %v, got %v", trade.CreatedDate, stored.CreatedDate)
		}
		if stored.Capital != "₹1,20,000" {
			t.Errorf("Expected capital as entered, got %q", stored.Capital)
		}
	})

	t.Run("returns not found for missing trade", func(t *testing.T) {
		_, err := repo.GetTrade(ctx, testutil.MakeID())
		if !errors.Is(err, apperrors.ErrTradeNotFound) {
			t.Errorf("Expected ErrTradeNotFound, got %v", err)
		}
	})
}

func TestTradeRepository_UpdateTrade(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewTradeRepository(db, zerolog.Nop())

	t.Run("replaces strikes", func(t *testing.T) {
		trade := testutil.NewTrade().WithStrikes(testutil.CreditSpreadLegs()...).Build(t, db)

		trade.Strikes = testutil.CreditSpreadLegs()[:1]
		trade.Strikes[0].ID = testutil.MakeID()
		if err := repo.UpdateTrade(ctx, &trade); err != nil {
			t.Fatalf("UpdateTrade() returned unexpected error: %v", err)
		}

		stored, err := repo.GetTrade(ctx, trade.ID)
		if err != nil {
			t.Fatalf("GetTrade() returned unexpected error: %v", err)
		}
		if len(stored.Strikes) != 1 {
			t.Errorf("Expected 1 strike after update, got %d", len(stored.Strikes))
		}
	})

	t.Run("returns not found for missing trade", func(t *testing.T) {
		trade := model.Trade{ID: testutil.MakeID(), CreatedDate: time.Now()}
		if err := repo.UpdateTrade(ctx, &trade); !errors.Is(err, apperrors.ErrTradeNotFound) {
			t.Errorf("Expected ErrTradeNotFound, got %v", err)
		}
	})
}

func TestTradeRepository_WithTx(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	repo := repository.NewTradeRepository(db, zerolog.Nop())
	existing := testutil.NewTrade().Build(t, db)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("BeginTx() returned unexpected error: %v", err)
	}

	if err := repo.WithTx(tx).DeleteTrade(ctx, existing.ID); err != nil {
		t.Fatalf("DeleteTrade() returned unexpected error: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback() returned unexpected error: %v", err)
	}

	testutil.AssertRowCount(t, db, "trade", 1)

	if err := repo.DeleteTrade(ctx, existing.ID); err != nil {
		t.Fatalf("DeleteTrade() returned unexpected error: %v", err)
	}
	testutil.AssertRowCount(t, db, "trade", 0)

	if err := repo.DeleteTrade(ctx, existing.ID); !errors.Is(err, apperrors.ErrTradeNotFound) {
		t.Errorf("Expected ErrTradeNotFound on second delete, got %v", err)
	}
}

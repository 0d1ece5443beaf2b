package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
)

func boolPtr(b bool) *bool           { return &b }
func floatPtr(f float64) *float64    { return &f }
func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func activeTrade(id, capital, pnl string, isProfit bool) model.Trade {
	return model.Trade{
		ID:          id,
		Status:      model.TradeStatusActive,
		Capital:     capital,
		ProfitLoss:  pnl,
		IsProfit:    boolPtr(isProfit),
		CreatedDate: day(1),
	}
}

func closedTrade(id, pnl string, isProfit bool, closed time.Time) model.Trade {
	return model.Trade{
		ID:          id,
		Status:      model.TradeStatusClosed,
		Capital:     "₹1,00,000",
		ProfitLoss:  pnl,
		IsProfit:    boolPtr(isProfit),
		CreatedDate: day(1),
		ClosingDate: timePtr(closed),
	}
}

func deposit(id string, amount float64, date time.Time) model.Transfer {
	return model.Transfer{ID: id, Type: model.TransferTypeDeposit, Amount: amount, Date: date}
}

func withdrawal(id string, amount float64, date time.Time) model.Transfer {
	return model.Transfer{ID: id, Type: model.TransferTypeWithdrawal, Amount: amount, Date: date}
}

func expectFloat(t *testing.T, field string, got, want float64) {
	t.Helper()
	if got != want {
		t.Errorf("Expected %s %v, got %v", field, want, got)
	}
}

func expectFinite(t *testing.T, field string, got float64) {
	t.Helper()
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("Expected finite %s, got %v", field, got)
	}
}

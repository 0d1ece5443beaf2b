package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
)

// SignedPnL returns the trade's profit or loss with its direction applied.
// The stored IsProfit flag decides the sign when present; the sign written in
// the ProfitLoss string is only used when the flag is missing.
func SignedPnL(t model.Trade) float64 {
	return signedPnL(t).InexactFloat64()
}

func signedPnL(t model.Trade) decimal.Decimal {
	pnl := parseAmount(t.ProfitLoss)
	if t.IsProfit == nil {
		return pnl
	}
	if *t.IsProfit {
		return pnl.Abs()
	}
	return pnl.Abs().Neg()
}

// IsWin reports whether the trade counts as a winner. IsProfit is
// authoritative; without it the trade wins when its P&L is positive.
func IsWin(t model.Trade) bool {
	if t.IsProfit != nil {
		return *t.IsProfit
	}
	return signedPnL(t).IsPositive()
}

// IsLoss reports whether the trade counts as a loser. A trade with no flag and
// a P&L of exactly zero is neither a win nor a loss.
func IsLoss(t model.Trade) bool {
	if t.IsProfit != nil {
		return !*t.IsProfit
	}
	return signedPnL(t).IsNegative()
}

// EffectiveMaxProfit returns the strike-derived max profit when available,
// otherwise the stored MaxProfit field.
func EffectiveMaxProfit(t model.Trade) float64 {
	return effectiveMaxProfit(t).InexactFloat64()
}

// EffectiveMaxLoss returns the strike-derived max loss when available,
// otherwise the stored MaxLoss field. Losses are reported as magnitudes.
func EffectiveMaxLoss(t model.Trade) float64 {
	return effectiveMaxLoss(t).InexactFloat64()
}

func effectiveMaxProfit(t model.Trade) decimal.Decimal {
	if t.CalculatedMaxProfit != nil {
		return decimalOf(*t.CalculatedMaxProfit).Abs()
	}
	return parseAmount(t.MaxProfit).Abs()
}

func effectiveMaxLoss(t model.Trade) decimal.Decimal {
	if t.CalculatedMaxLoss != nil {
		return decimalOf(*t.CalculatedMaxLoss).Abs()
	}
	return parseAmount(t.MaxLoss).Abs()
}

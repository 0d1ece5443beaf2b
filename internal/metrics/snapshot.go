package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
)

// Snapshot holds the portfolio-level figures for one set of trades.
// Percentages are in percent units (2.0 means 2%).
type Snapshot struct {
	TradeCount            int     `json:"tradeCount"`
	WinCount              int     `json:"winCount"`
	LossCount             int     `json:"lossCount"`
	WinRate               float64 `json:"winRate"`
	TotalPnL              float64 `json:"totalPnL"`
	PercentageReturn      float64 `json:"percentageReturn"`
	TotalCapital          float64 `json:"totalCapital"`
	TotalMaxProfit        float64 `json:"totalMaxProfit"`
	TotalMaxLoss          float64 `json:"totalMaxLoss"`
	BuyingPower           float64 `json:"buyingPower"`
	BuyingPowerUsed       float64 `json:"buyingPowerUsed"`
	BuyingPowerPercentage float64 `json:"buyingPowerPercentage"`
	TotalRisk             float64 `json:"totalRisk"`
	Tone                  Tone    `json:"tone"`
}

// ComputeSnapshot aggregates an already filtered set of trades. Callers pick the
// view (active or closed) before calling; buyingPower is the configured ceiling
// that deployed capital is measured against.
//
// An empty slice yields zero sums and zero percentages.
func ComputeSnapshot(trades []model.Trade, buyingPower float64) Snapshot {
	var totalPnL, totalCapital, totalMaxProfit, totalMaxLoss decimal.Decimal
	var wins, losses int

	for _, t := range trades {
		totalPnL = totalPnL.Add(signedPnL(t))
		totalCapital = totalCapital.Add(parseAmount(t.Capital))
		totalMaxProfit = totalMaxProfit.Add(effectiveMaxProfit(t))
		totalMaxLoss = totalMaxLoss.Add(effectiveMaxLoss(t))

		switch {
		case IsWin(t):
			wins++
		case IsLoss(t):
			losses++
		}
	}

	power := decimalOf(buyingPower)
	pnl := totalPnL.InexactFloat64()

	snapshot := Snapshot{
		TradeCount:            len(trades),
		WinCount:              wins,
		LossCount:             losses,
		TotalPnL:              pnl,
		PercentageReturn:      percentOf(totalPnL, totalCapital).InexactFloat64(),
		TotalCapital:          totalCapital.InexactFloat64(),
		TotalMaxProfit:        totalMaxProfit.InexactFloat64(),
		TotalMaxLoss:          totalMaxLoss.InexactFloat64(),
		BuyingPower:           power.InexactFloat64(),
		BuyingPowerUsed:       totalCapital.InexactFloat64(),
		BuyingPowerPercentage: percentOf(totalCapital, power).InexactFloat64(),
		TotalRisk:             percentOf(totalMaxLoss, totalCapital).InexactFloat64(),
		Tone:                  ToneFor(pnl),
	}
	if len(trades) > 0 {
		snapshot.WinRate = decimal.NewFromInt(int64(wins)).
			Mul(hundred).
			Div(decimal.NewFromInt(int64(len(trades)))).
			InexactFloat64()
	}

	return snapshot
}

// FilterByStatus returns the trades with the given status, preserving order.
// An empty status keeps every trade. The input slice is not modified.
func FilterByStatus(trades []model.Trade, status string) []model.Trade {
	filtered := make([]model.Trade, 0, len(trades))
	for _, t := range trades {
		if status == "" || t.Status == status {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

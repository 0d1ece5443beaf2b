package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
)

// RatioBar splits the max-profit/max-loss range of a trade. Shares are
// percentages of Range and add up to 100 whenever Range is positive.
type RatioBar struct {
	Range       float64 `json:"range"`
	ProfitShare float64 `json:"profitShare"`
	LossShare   float64 `json:"lossShare"`
}

// DateBadge is the short month/day pair shown next to a trade.
type DateBadge struct {
	Month string `json:"month"`
	Day   string `json:"day"`
}

// TradeRow is everything a trades table shows for one trade, computed once so
// the summary boxes and the table cells always agree.
type TradeRow struct {
	TradeID             string    `json:"tradeId"`
	Status              string    `json:"status"`
	Capital             float64   `json:"capital"`
	PnL                 float64   `json:"pnl"`
	PnLPercentage       string    `json:"pnlPercentage"`
	MaxProfit           float64   `json:"maxProfit"`
	MaxProfitPercentage string    `json:"maxProfitPercentage"`
	MaxLoss             float64   `json:"maxLoss"`
	MaxLossPercentage   string    `json:"maxLossPercentage"`
	Ratio               RatioBar  `json:"ratio"`
	Tone                Tone      `json:"tone"`
	Badge               DateBadge `json:"badge"`
	Notes               string    `json:"notes"`
	HasNotes            bool      `json:"hasNotes"`
	HasStrikeData       bool      `json:"hasStrikeData"`
}

// DescribeTrade builds the row view of a single trade.
func DescribeTrade(t model.Trade) TradeRow {
	capital := parseAmount(t.Capital)
	pnl := signedPnL(t)
	maxProfit := effectiveMaxProfit(t)
	maxLoss := effectiveMaxLoss(t)

	row := TradeRow{
		TradeID:             t.ID,
		Status:              t.Status,
		Capital:             capital.InexactFloat64(),
		PnL:                 pnl.InexactFloat64(),
		PnLPercentage:       FormatPercent(percentOf(pnl, capital).InexactFloat64()),
		MaxProfit:           maxProfit.InexactFloat64(),
		MaxProfitPercentage: FormatPercent(percentOf(maxProfit, capital).InexactFloat64()),
		MaxLoss:             maxLoss.InexactFloat64(),
		MaxLossPercentage:   FormatPercent(percentOf(maxLoss, capital).InexactFloat64()),
		Ratio:               ratioBar(maxProfit, maxLoss),
		Tone:                ToneForTrade(t),
		Badge:               badgeFor(t),
		HasStrikeData:       t.CalculatedMaxProfit != nil || t.CalculatedMaxLoss != nil,
	}
	if t.Notes != nil && *t.Notes != "" {
		row.Notes = *t.Notes
		row.HasNotes = true
	}

	return row
}

// DescribeTrades builds one row per trade, in input order.
func DescribeTrades(trades []model.Trade) []TradeRow {
	rows := make([]TradeRow, len(trades))
	for i, t := range trades {
		rows[i] = DescribeTrade(t)
	}
	return rows
}

func ratioBar(maxProfit, maxLoss decimal.Decimal) RatioBar {
	total := maxProfit.Add(maxLoss)
	return RatioBar{
		Range:       total.InexactFloat64(),
		ProfitShare: percentOf(maxProfit, total).InexactFloat64(),
		LossShare:   percentOf(maxLoss, total).InexactFloat64(),
	}
}

func badgeFor(t model.Trade) DateBadge {
	d := t.EventDate()
	if d.IsZero() {
		return DateBadge{}
	}
	return DateBadge{
		Month: d.Format("Jan"),
		Day:   d.Format("02"),
	}
}

package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
)

// Estimate is the theoretical max profit and max loss of a two-leg spread.
// Both values are non-negative magnitudes in account currency.
type Estimate struct {
	MaxProfit float64 `json:"maxProfit"`
	MaxLoss   float64 `json:"maxLoss"`
}

// EstimateMaxProfitLoss derives max profit and max loss from a vertical spread.
//
// The legs must be exactly one BUY and one SELL of the same option type with
// equal positive lot counts, positive strikes and non-negative premiums (LTP).
// Anything else returns nil, meaning no estimate is available.
//
// With qty = lots * lotSize, width = |sell.Strike - buy.Strike| and
// net = sell.LTP - buy.LTP:
//
//	credit (net >= 0): maxProfit = net * qty,           maxLoss = (width - net) * qty
//	debit  (net < 0):  maxProfit = (width - |net|) * qty, maxLoss = |net| * qty
//
// Both results are clamped at zero. A lotSize of zero or less counts as 1.
func EstimateMaxProfitLoss(strikes []model.StrikeLeg, lotSize float64) *Estimate {
	buy, sell, ok := spreadLegs(strikes)
	if !ok {
		return nil
	}

	size := decimalOf(lotSize)
	if !size.IsPositive() {
		size = decimal.NewFromInt(1)
	}
	qty := decimal.NewFromInt(int64(sell.Lots)).Mul(size)

	width := decimalOf(sell.Strike).Sub(decimalOf(buy.Strike)).Abs()
	net := decimalOf(sell.LTP).Sub(decimalOf(buy.LTP))

	var profit, loss decimal.Decimal
	if !net.IsNegative() {
		profit = net
		loss = width.Sub(net)
	} else {
		debit := net.Abs()
		profit = width.Sub(debit)
		loss = debit
	}

	return &Estimate{
		MaxProfit: decimal.Max(profit, decimal.Zero).Mul(qty).InexactFloat64(),
		MaxLoss:   decimal.Max(loss, decimal.Zero).Mul(qty).InexactFloat64(),
	}
}

// spreadLegs picks out the BUY and SELL legs of a well-formed spread.
func spreadLegs(strikes []model.StrikeLeg) (buy, sell model.StrikeLeg, ok bool) {
	if len(strikes) != 2 {
		return buy, sell, false
	}

	var buys, sells int
	for _, leg := range strikes {
		switch leg.Position {
		case model.PositionBuy:
			buy = leg
			buys++
		case model.PositionSell:
			sell = leg
			sells++
		}
	}
	if buys != 1 || sells != 1 {
		return buy, sell, false
	}

	if buy.OptionType != sell.OptionType {
		return buy, sell, false
	}
	if buy.OptionType != model.OptionTypeCall && buy.OptionType != model.OptionTypePut {
		return buy, sell, false
	}
	if buy.Lots <= 0 || buy.Lots != sell.Lots {
		return buy, sell, false
	}
	if finite(buy.Strike) <= 0 || finite(sell.Strike) <= 0 {
		return buy, sell, false
	}
	if finite(buy.LTP) < 0 || finite(sell.LTP) < 0 {
		return buy, sell, false
	}

	return buy, sell, true
}

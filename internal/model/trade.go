package model

import "time"

// Trade status values. A trade is created active and is closed exactly once.
const (
	TradeStatusActive = "active"
	TradeStatusClosed = "closed"
)

// Strategies whose trades must carry a BUY and a SELL strike leg.
const (
	StrategyBullPutSpread  = "Bull put spread"
	StrategyBearCallSpread = "Bear call spread"
)

// Strike leg option types and positions.
const (
	OptionTypeCall = "CE"
	OptionTypePut  = "PE"
	PositionBuy    = "BUY"
	PositionSell   = "SELL"
)

// Trade represents one options-style position recorded in the journal.
// Currency fields are kept exactly as entered (e.g. "₹1,20,000") and are only
// turned into numbers by the metrics package.
type Trade struct {
	ID                  string      `json:"id"`
	Status              string      `json:"status"`
	InstrumentName      string      `json:"instrumentName"`
	InstrumentType      string      `json:"instrumentType"`
	Bias                string      `json:"bias"`
	Setup               string      `json:"setup"`
	Strategy            string      `json:"strategy"`
	Capital             string      `json:"capital"`
	ProfitLoss          string      `json:"profitLoss"`
	IsProfit            *bool       `json:"isProfit"`
	MaxProfit           string      `json:"maxProfit"`
	MaxProfitPercentage string      `json:"maxProfitPercentage"`
	MaxLoss             string      `json:"maxLoss"`
	MaxLossPercentage   string      `json:"maxLossPercentage"`
	CalculatedMaxProfit *float64    `json:"calculatedMaxProfit"`
	CalculatedMaxLoss   *float64    `json:"calculatedMaxLoss"`
	Strikes             []StrikeLeg `json:"strikes"`
	CreatedDate         time.Time   `json:"createdDate"`
	ClosingDate         *time.Time  `json:"closingDate"`
	Notes               *string     `json:"notes"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

// IsClosed reports whether the trade has been closed.
func (t Trade) IsClosed() bool {
	return t.Status == TradeStatusClosed
}

// EventDate returns the date the trade is ordered on: the closing date when
// present, otherwise the creation date.
func (t Trade) EventDate() time.Time {
	if t.ClosingDate != nil && !t.ClosingDate.IsZero() {
		return *t.ClosingDate
	}
	return t.CreatedDate
}

// StrikeLeg is one side of a spread.
type StrikeLeg struct {
	ID         string    `json:"id"`
	TradeID    string    `json:"tradeId"`
	Strike     float64   `json:"strike"`
	OptionType string    `json:"optionType"`
	Position   string    `json:"position"`
	Lots       int       `json:"lots"`
	Expiry     time.Time `json:"expiry"`
	LTP        float64   `json:"ltp"`
}

// TradeFilter for querying trades. An empty Status returns every trade.
type TradeFilter struct {
	Status string
}

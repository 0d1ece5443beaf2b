package request

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a currency field as entered by the user. It accepts either a JSON
// string ("₹1,20,000") or a bare number and keeps the raw text; parsing into a
// number happens in the metrics package.
type Amount string

// UnmarshalJSON accepts strings, numbers and null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*a = Amount(plainNumber(n))
		return nil
	}
}

// plainNumber spells a JSON number without exponent notation so it reads the
// same as a typed amount. Numbers outside float64 range are kept as sent.
func plainNumber(n json.Number) string {
	s := n.String()
	if !strings.ContainsAny(s, "eE") {
		return s
	}
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// StrikeLegRequest is one leg of a spread as submitted by the client.
type StrikeLegRequest struct {
	Strike     float64 `json:"strike"`
	OptionType string  `json:"optionType"`
	Position   string  `json:"position"`
	Lots       int     `json:"lots"`
	Expiry     string  `json:"expiry"`
	LTP        float64 `json:"ltp"`
}

type CreateTradeRequest struct {
	Status              string             `json:"status"`
	InstrumentName      string             `json:"instrumentName"`
	InstrumentType      string             `json:"instrumentType"`
	Bias                string             `json:"bias"`
	Setup               string             `json:"setup"`
	Strategy            string             `json:"strategy"`
	Capital             Amount             `json:"capital"`
	ProfitLoss          Amount             `json:"profitLoss"`
	IsProfit            *bool              `json:"isProfit,omitempty"`
	MaxProfit           Amount             `json:"maxProfit"`
	MaxProfitPercentage string             `json:"maxProfitPercentage"`
	MaxLoss             Amount             `json:"maxLoss"`
	MaxLossPercentage   string             `json:"maxLossPercentage"`
	CreatedDate         string             `json:"createdDate"`
	ClosingDate         *string            `json:"closingDate,omitempty"`
	Notes               *string            `json:"notes,omitempty"`
	Strikes             []StrikeLegRequest `json:"strikes"`
}

type UpdateTradeRequest struct {
	InstrumentName      *string             `json:"instrumentName,omitempty"`
	InstrumentType      *string             `json:"instrumentType,omitempty"`
	Bias                *string             `json:"bias,omitempty"`
	Setup               *string             `json:"setup,omitempty"`
	Strategy            *string             `json:"strategy,omitempty"`
	Capital             *Amount             `json:"capital,omitempty"`
	ProfitLoss          *Amount             `json:"profitLoss,omitempty"`
	IsProfit            *bool               `json:"isProfit,omitempty"`
	MaxProfit           *Amount             `json:"maxProfit,omitempty"`
	MaxProfitPercentage *string             `json:"maxProfitPercentage,omitempty"`
	MaxLoss             *Amount             `json:"maxLoss,omitempty"`
	MaxLossPercentage   *string             `json:"maxLossPercentage,omitempty"`
	CreatedDate         *string             `json:"createdDate,omitempty"`
	ClosingDate         *string             `json:"closingDate,omitempty"`
	Notes               *string             `json:"notes,omitempty"`
	Strikes             *[]StrikeLegRequest `json:"strikes,omitempty"`
}

// CloseTradeRequest moves an active trade to closed. ClosingDate defaults to today.
type CloseTradeRequest struct {
	ClosingDate *string `json:"closingDate,omitempty"`
	ProfitLoss  Amount  `json:"profitLoss"`
	IsProfit    *bool   `json:"isProfit,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// EstimateRequest asks for the strike-derived max profit/loss of a spread.
type EstimateRequest struct {
	InstrumentName string             `json:"instrumentName"`
	Strikes        []StrikeLegRequest `json:"strikes"`
}

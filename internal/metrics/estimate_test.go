package metrics

import (
	"testing"

	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
)

func leg(position, optionType string, strike, ltp float64, lots int) model.StrikeLeg {
	return model.StrikeLeg{
		Strike:     strike,
		OptionType: optionType,
		Position:   position,
		Lots:       lots,
		Expiry:     day(25),
		LTP:        ltp,
	}
}

func TestEstimateMaxProfitLoss(t *testing.T) {
	spreads := []struct {
		name          string
		strikes       []model.StrikeLeg
		lotSize       float64
		wantMaxProfit float64
		wantMaxLoss   float64
	}{
		{
			name: "bull put spread credit",
			strikes: []model.StrikeLeg{
				leg(model.PositionSell, model.OptionTypePut, 22000, 120, 2),
				leg(model.PositionBuy, model.OptionTypePut, 21900, 70, 2),
			},
			lotSize:       75,
			wantMaxProfit: 7500,
			wantMaxLoss:   7500,
		},
		{
			name: "bear call spread credit",
			strikes: []model.StrikeLeg{
				leg(model.PositionBuy, model.OptionTypeCall, 24200, 30, 1),
				leg(model.PositionSell, model.OptionTypeCall, 24000, 80, 1),
			},
			lotSize:       75,
			wantMaxProfit: 3750,
			wantMaxLoss:   11250,
		},
		{
			name: "debit spread",
			strikes: []model.StrikeLeg{
				leg(model.PositionBuy, model.OptionTypeCall, 24000, 90, 1),
				leg(model.PositionSell, model.OptionTypeCall, 24100, 50, 1),
			},
			lotSize:       10,
			wantMaxProfit: 600,
			wantMaxLoss:   400,
		},
		{
			name: "premium wider than strikes clamps loss at zero",
			strikes: []model.StrikeLeg{
				leg(model.PositionSell, model.OptionTypePut, 100, 30, 1),
				leg(model.PositionBuy, model.OptionTypePut, 90, 10, 1),
			},
			lotSize:       1,
			wantMaxProfit: 20,
			wantMaxLoss:   0,
		},
		{
			name: "non-positive lot size counts as one",
			strikes: []model.StrikeLeg{
				leg(model.PositionSell, model.OptionTypePut, 110, 5, 1),
				leg(model.PositionBuy, model.OptionTypePut, 100, 2, 1),
			},
			lotSize:       0,
			wantMaxProfit: 3,
			wantMaxLoss:   7,
		},
	}

	for _, tt := range spreads {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateMaxProfitLoss(tt.strikes, tt.lotSize)
			if got == nil {
				t.Fatal("Expected an estimate, got nil")
			}
			expectFloat(t, "max profit", got.MaxProfit, tt.wantMaxProfit)
			expectFloat(t, "max loss", got.MaxLoss, tt.wantMaxLoss)
		})
	}

	malformed := map[string][]model.StrikeLeg{
		"no strikes": nil,
		"single leg": {leg(model.PositionSell, model.OptionTypePut, 100, 5, 1)},
		"two sells": {
			leg(model.PositionSell, model.OptionTypePut, 100, 5, 1),
			leg(model.PositionSell, model.OptionTypePut, 90, 2, 1),
		},
		"three legs": {
			leg(model.PositionSell, model.OptionTypePut, 100, 5, 1),
			leg(model.PositionBuy, model.OptionTypePut, 90, 2, 1),
			leg(model.PositionBuy, model.OptionTypePut, 80, 1, 1),
		},
		"mixed option types": {
			leg(model.PositionSell, model.OptionTypePut, 100, 5, 1),
			leg(model.PositionBuy, model.OptionTypeCall, 90, 2, 1),
		},
		"unknown option type": {
			leg(model.PositionSell, "XX", 100, 5, 1),
			leg(model.PositionBuy, "XX", 90, 2, 1),
		},
		"mismatched lots": {
			leg(model.PositionSell, model.OptionTypePut, 100, 5, 2),
			leg(model.PositionBuy, model.OptionTypePut, 90, 2, 1),
		},
		"zero lots": {
			leg(model.PositionSell, model.OptionTypePut, 100, 5, 0),
			leg(model.PositionBuy, model.OptionTypePut, 90, 2, 0),
		},
		"zero strike": {
			leg(model.PositionSell, model.OptionTypePut, 0, 5, 1),
			leg(model.PositionBuy, model.OptionTypePut, 90, 2, 1),
		},
		"negative premium": {
			leg(model.PositionSell, model.OptionTypePut, 100, -5, 1),
			leg(model.PositionBuy, model.OptionTypePut, 90, 2, 1),
		},
		"unknown position": {
			leg("HOLD", model.OptionTypePut, 100, 5, 1),
			leg(model.PositionBuy, model.OptionTypePut, 90, 2, 1),
		},
	}
	for name, strikes := range malformed {
		t.Run("returns nil for "+name, func(t *testing.T) {
			if got := EstimateMaxProfitLoss(strikes, 75); got != nil {
				t.Errorf("Expected nil estimate, got %+v", *got)
			}
		})
	}
}

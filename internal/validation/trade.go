package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/Trading-Journal-Backend/internal/api/request"
	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
)

// ValidTradeStatus contains the allowed trade status values.
var ValidTradeStatus = map[string]bool{
	model.TradeStatusActive: true, model.TradeStatusClosed: true,
}

// ValidInstrumentType contains the allowed instrument type values.
var ValidInstrumentType = map[string]bool{
	model.InstrumentTypeIndex: true, model.InstrumentTypeStock: true,
}

// ValidBias contains the allowed market bias values.
var ValidBias = map[string]bool{
	"bullish": true, "bearish": true, "neutral": true,
}

// StrategiesRequiringStrikes lists strategies whose trades must carry strike legs.
var StrategiesRequiringStrikes = map[string]bool{
	model.StrategyBullPutSpread: true, model.StrategyBearCallSpread: true,
}

var validOptionType = map[string]bool{
	model.OptionTypeCall: true, model.OptionTypePut: true,
}

var validPosition = map[string]bool{
	model.PositionBuy: true, model.PositionSell: true,
}

// ValidateTradeStatus checks an optional status filter. Empty means "all".
func ValidateTradeStatus(status string) error {
	if status == "" || ValidTradeStatus[status] {
		return nil
	}
	return &Error{Fields: map[string]string{"status": fmt.Sprintf("invalid status: %s", status)}}
}

// ValidateCreateTrade validates a trade creation request.
//
// Required fields:
//   - instrumentName: Must not be blank
//   - instrumentType: Must be one of: index, stock
//   - bias: Must be one of: bullish, bearish, neutral
//   - createdDate: Must be in YYYY-MM-DD format
//
// Optional fields (validated if provided):
//   - status: Must be active; trades are closed through the close action
//   - closingDate: Must be absent; it is recorded when the trade is closed
//   - strikes: Every leg must be well formed; spreads must have legs
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTrade(req request.CreateTradeRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.InstrumentName) == "" {
		errors["instrumentName"] = "instrumentName is required"
	}
	validateInstrumentType(errors, req.InstrumentType)
	validateBias(errors, req.Bias)

	validateNewTrade(errors, req.Status, req.ClosingDate)
	validateDate(errors, "createdDate", req.CreatedDate)

	validateStrikes(errors, req.Strategy, req.Strikes)

	return collected(errors)
}

// ValidateUpdateTrade validates a trade update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateTrade(req request.UpdateTradeRequest) error {
	errors := make(map[string]string)

	if req.InstrumentName != nil && strings.TrimSpace(*req.InstrumentName) == "" {
		errors["instrumentName"] = "instrumentName is required"
	}
	if req.InstrumentType != nil {
		validateInstrumentType(errors, *req.InstrumentType)
	}
	if req.Bias != nil {
		validateBias(errors, *req.Bias)
	}
	if req.CreatedDate != nil {
		validateDate(errors, "createdDate", *req.CreatedDate)
	}
	if req.ClosingDate != nil && strings.TrimSpace(*req.ClosingDate) != "" {
		validateDate(errors, "closingDate", *req.ClosingDate)
	}
	if req.Strikes != nil {
		strategy := ""
		if req.Strategy != nil {
			strategy = *req.Strategy
		}
		validateStrikes(errors, strategy, *req.Strikes)
	}

	return collected(errors)
}

// ValidateCloseTrade validates a close request. profitLoss is required.
func ValidateCloseTrade(req request.CloseTradeRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(string(req.ProfitLoss)) == "" {
		errors["profitLoss"] = "profitLoss is required"
	}
	if req.ClosingDate != nil && strings.TrimSpace(*req.ClosingDate) != "" {
		validateDate(errors, "closingDate", *req.ClosingDate)
	}

	return collected(errors)
}

// ValidateEstimate validates an estimate request. Legs are checked for shape
// only; whether they form a spread is decided by the estimator.
func ValidateEstimate(req request.EstimateRequest) error {
	errors := make(map[string]string)

	if len(req.Strikes) == 0 {
		errors["strikes"] = "strikes are required"
	}
	validateStrikeLegs(errors, req.Strikes)

	return collected(errors)
}

// ValidateNewTrade checks the lifecycle fields of a trade being created. A new
// trade is always active and has no closing date.
func ValidateNewTrade(status string, closingDate *string) error {
	errors := make(map[string]string)
	validateNewTrade(errors, status, closingDate)
	return collected(errors)
}

// ValidateStrategyStrikes checks that a strategy which needs strike legs has at
// least one. Used on the merged trade after a partial update.
func ValidateStrategyStrikes(strategy string, legs int) error {
	errors := make(map[string]string)
	requireStrikes(errors, strategy, legs)
	return collected(errors)
}

func validateNewTrade(errors map[string]string, status string, closingDate *string) {
	switch {
	case status == "" || status == model.TradeStatusActive:
	case ValidTradeStatus[status]:
		errors["status"] = fmt.Sprintf("new trades must be active, got %s", status)
	default:
		errors["status"] = fmt.Sprintf("invalid status: %s", status)
	}
	if closingDate != nil && strings.TrimSpace(*closingDate) != "" {
		errors["closingDate"] = "closingDate is recorded when the trade is closed"
	}
}

func requireStrikes(errors map[string]string, strategy string, legs int) {
	if StrategiesRequiringStrikes[strategy] && legs == 0 {
		errors["strikes"] = fmt.Sprintf("strikes are required for %s", strategy)
	}
}

func validateInstrumentType(errors map[string]string, instrumentType string) {
	if strings.TrimSpace(instrumentType) == "" {
		errors["instrumentType"] = "instrumentType is required"
	} else if !ValidInstrumentType[instrumentType] {
		errors["instrumentType"] = fmt.Sprintf("invalid instrumentType: %s", instrumentType)
	}
}

func validateBias(errors map[string]string, bias string) {
	if strings.TrimSpace(bias) == "" {
		errors["bias"] = "bias is required"
	} else if !ValidBias[bias] {
		errors["bias"] = fmt.Sprintf("invalid bias: %s", bias)
	}
}

func validateDate(errors map[string]string, field, value string) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		errors[field] = field + " is required"
		return time.Time{}, false
	}
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		errors[field] = err.Error()
		return time.Time{}, false
	}
	return d, true
}

func validateStrikes(errors map[string]string, strategy string, strikes []request.StrikeLegRequest) {
	requireStrikes(errors, strategy, len(strikes))
	validateStrikeLegs(errors, strikes)
}

func validateStrikeLegs(errors map[string]string, strikes []request.StrikeLegRequest) {
	for i, leg := range strikes {
		prefix := fmt.Sprintf("strikes[%d].", i)
		if leg.Strike <= 0 {
			errors[prefix+"strike"] = "strike must be positive"
		}
		if !validOptionType[leg.OptionType] {
			errors[prefix+"optionType"] = fmt.Sprintf("invalid optionType: %s", leg.OptionType)
		}
		if !validPosition[leg.Position] {
			errors[prefix+"position"] = fmt.Sprintf("invalid position: %s", leg.Position)
		}
		if leg.Lots <= 0 {
			errors[prefix+"lots"] = "lots must be positive"
		}
		if leg.LTP < 0 {
			errors[prefix+"ltp"] = "ltp cannot be negative"
		}
		validateDate(errors, prefix+"expiry", leg.Expiry)
	}
}

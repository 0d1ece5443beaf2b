package service

import (
	"math"
	"strings"
	"time"

	"github.com/ndewijer/Trading-Journal-Backend/internal/api/request"
	"github.com/ndewijer/Trading-Journal-Backend/internal/model"
)

// RoundingPrecision is the multiplier used by round: 100 keeps two decimals.
const RoundingPrecision = 100.0

// round rounds a float64 value to two decimal places using the package RoundingPrecision constant.
// Stored snapshot figures go through it so repeated captures compare equal.
//
// Example:
//
//	round(123.456789)  // returns 123.46
//	round(1.994)       // returns 1.99
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}

// normalizeNotes maps absent notes to nil. Legacy clients send "0" for "no notes".
func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" || trimmed == "0" {
		return nil
	}
	return &trimmed
}

// parseDate parses a YYYY-MM-DD string as a UTC date.
func parseDate(value string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, err
	}
	return d.UTC(), nil
}

// today returns the current UTC date at midnight.
func today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// strikeLegs converts request legs to model legs. IDs are assigned by the caller.
func strikeLegs(legs []request.StrikeLegRequest) ([]model.StrikeLeg, error) {
	out := make([]model.StrikeLeg, 0, len(legs))
	for _, leg := range legs {
		expiry, err := parseDate(leg.Expiry)
		if err != nil {
			return nil, err
		}
		out = append(out, model.StrikeLeg{
			Strike:     leg.Strike,
			OptionType: leg.OptionType,
			Position:   leg.Position,
			Lots:       leg.Lots,
			Expiry:     expiry,
			LTP:        leg.LTP,
		})
	}
	return out, nil
}

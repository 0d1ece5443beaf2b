package metrics

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PercentOf returns value as a percentage of base. A zero or negative base
// yields 0 instead of a division error.
func PercentOf(value, base float64) float64 {
	return percentOf(decimalOf(value), decimalOf(base)).InexactFloat64()
}

func percentOf(value, base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	return value.Mul(hundred).Div(base)
}

// FormatPercent renders a percentage with one decimal place ("12.5%").
// Non-finite values and values that round to zero render as "0.0%".
func FormatPercent(v float64) string {
	v = finite(v)
	if math.Abs(v) < 0.05 {
		v = 0
	}
	return fmt.Sprintf("%.1f%%", v)
}

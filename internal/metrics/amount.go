package metrics

import (
	"encoding/json"
	"math"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// currencyCodes are textual currency prefixes/suffixes stripped before parsing.
// Longer codes come first so "Rs." is removed before "Rs".
var currencyCodes = []string{"INR", "USD", "EUR", "GBP", "RS.", "RS"}

// groupingReplacer removes thousands separators of any locale grouping
// (1,234,567 and 12,34,567 alike) plus the space variants some locales use.
var groupingReplacer = strings.NewReplacer(
	",", "",
	"_", "",
	"'", "",
	" ", "",
	"\u00a0", "",
	"\u2009", "",
	"\u202f", "",
)

// maxIntegerDigits bounds the integer part of a parsed amount. Larger values
// are treated as malformed so aggregates stay finite.
const maxIntegerDigits = 15

// ParseAmount converts a currency-formatted value into a number.
//
// Strings may carry a currency glyph or code, grouping separators, a percent
// sign and a leading "+" or "-" (before or after the glyph). What remains must
// be plain digits with at most one decimal point; exponent notation is
// rejected. Numeric inputs are passed through. Anything empty, non-numeric,
// non-finite or beyond 15 integer digits resolves to 0.
//
//	ParseAmount("₹12,34,567.89") // 1234567.89
//	ParseAmount("+5,000")        // 5000
//	ParseAmount("-₹2,000")       // -2000
//	ParseAmount("abc")           // 0
func ParseAmount(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case string:
		return finite(parseAmount(v).InexactFloat64())
	case *string:
		if v == nil {
			return 0
		}
		return finite(parseAmount(*v).InexactFloat64())
	case json.Number:
		return finite(parseAmount(string(v)).InexactFloat64())
	case decimal.Decimal:
		return finite(v.InexactFloat64())
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// parseAmount is the decimal form of ParseAmount used by the aggregators so
// sums do not accumulate binary rounding noise.
func parseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s, neg := stripPrefixNoise(s)
	negative = negative || neg
	s = stripSuffixNoise(s)
	s = groupingReplacer.Replace(s)
	if !isPlainNumber(s) {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		d = d.Abs().Neg()
	}
	return d
}

// isPlainNumber reports whether s is ASCII digits with at most one decimal
// point and no more than maxIntegerDigits significant integer digits.
func isPlainNumber(s string) bool {
	digits, intDigits, dot := 0, 0, false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
			if !dot && (intDigits > 0 || r != '0') {
				intDigits++
			}
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return digits > 0 && intDigits <= maxIntegerDigits
}

// stripPrefixNoise removes signs, whitespace, currency glyphs and currency
// codes in front of the first digit. It reports whether a minus sign was seen.
func stripPrefixNoise(s string) (string, bool) {
	negative := false
	for {
		trimmed := strings.TrimLeftFunc(s, unicode.IsSpace)
		if trimmed == "" {
			return "", negative
		}

		r := []rune(trimmed)[0]
		switch {
		case r == '-' || r == '−':
			negative = true
			trimmed = trimmed[len(string(r)):]
		case r == '+':
			trimmed = trimmed[1:]
		case unicode.Is(unicode.Sc, r):
			trimmed = trimmed[len(string(r)):]
		default:
			if code := currencyPrefix(trimmed); code != "" {
				trimmed = trimmed[len(code):]
			}
		}

		if trimmed == s {
			return s, negative
		}
		s = trimmed
	}
}

// stripSuffixNoise removes a trailing percent sign, currency glyph or code.
func stripSuffixNoise(s string) string {
	for {
		trimmed := strings.TrimRightFunc(s, func(r rune) bool {
			return unicode.IsSpace(r) || r == '%' || unicode.Is(unicode.Sc, r)
		})
		for _, code := range currencyCodes {
			if n := len(trimmed) - len(code); n >= 0 && strings.EqualFold(trimmed[n:], code) {
				trimmed = trimmed[:n]
				break
			}
		}
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}

func currencyPrefix(s string) string {
	for _, code := range currencyCodes {
		if len(s) >= len(code) && strings.EqualFold(s[:len(code)], code) {
			return s[:len(code)]
		}
	}
	return ""
}

// finite maps NaN and ±Inf to zero.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// decimalOf converts a float into a decimal, dropping non-finite values.
func decimalOf(v float64) decimal.Decimal {
	return decimal.NewFromFloat(finite(v))
}

// Package money holds the minor-unit arithmetic shared by the presentation and pricing
// engines. Amounts are int64 minor units; rates are decimals so no float rounding leaks in.
package money

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Rate parses a decimal rate such as "0.05". It panics on malformed input and is meant for
// package-level tables.
func Rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Apply returns amount*rate rounded half up to a whole minor unit.
func Apply(amount int64, rate decimal.Decimal) int64 {
	return RoundHalfUp(decimal.NewFromInt(amount).Mul(rate))
}

// RoundHalfUp rounds to the nearest integer, halves away from zero. Money is never negative
// here, so this is half-up.
func RoundHalfUp(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// PercentOf returns round(part/whole*100). whole must be positive.
func PercentOf(part, whole int64) int64 {
	if whole <= 0 {
		return 0
	}
	return RoundHalfUp(decimal.NewFromInt(part).Mul(hundred).Div(decimal.NewFromInt(whole)))
}

// RoundTo rounds f to the given number of decimal places, halves away from zero.
func RoundTo(f float64, places int32) float64 {
	return decimal.NewFromFloat(f).Round(places).InexactFloat64()
}

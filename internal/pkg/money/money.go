// Package money holds the rounding and conversion rules shared by every
// monetary figure the engine produces.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places kept on every published amount.
const Places = 2

var (
	sixty   = decimal.NewFromInt(60)
	hundred = decimal.NewFromInt(100)
)

// Round rounds half-up (half away from zero) to two places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Sum adds the given amounts without intermediate rounding.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Percent converts a percentage such as 5 into the rate 0.05.
func Percent(p float64) decimal.Decimal {
	return decimal.NewFromFloat(p).Div(hundred)
}

// HoursFromMinutes converts whole minutes to hours rounded to two places.
func HoursFromMinutes(minutes int64) decimal.Decimal {
	return Round(decimal.NewFromInt(minutes).Div(sixty))
}

// MinutesFromHours converts decimal hours back to whole minutes, truncating.
func MinutesFromHours(hours decimal.Decimal) int64 {
	return hours.Mul(sixty).IntPart()
}

// Parse reads an amount such as "15000" or "1234.5" and rounds it.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Round(d), nil
}

// MaxZero returns d, or zero when d is negative.
func MaxZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ValueOr dereferences d, falling back when nil.
func ValueOr(d *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if d == nil {
		return fallback
	}
	return *d
}

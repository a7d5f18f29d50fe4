package numeric

import (
	"math"
	"strconv"
	"strings"
)

// ParseDecimalOrZero converts free-form user or catalog input into a decimal.
// Anything that does not parse cleanly (including NaN and infinities) becomes
// zero. This is the single place the lenient numeric policy lives; callers
// must not re-implement it inline.
func ParseDecimalOrZero(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

// ParseQuantityOrZero resolves a quantity field to a non-negative integer.
// Negative and non-numeric input both collapse to zero; fractional input is
// truncated toward zero.
func ParseQuantityOrZero(raw string) int {
	value := ParseDecimalOrZero(raw)
	if value <= 0 {
		return 0
	}
	return int(value)
}

// Round2 rounds to two decimal places, ties rounding upward.
func Round2(value float64) float64 {
	return math.Floor(value*100+0.5) / 100
}

package core

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 rounds v to 2 decimal places, half away from zero, on the shortest
// decimal representation of v. Non-finite input returns 0.
func Round2(v float64) float64 {
	if !IsFinite(v) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Trim2 formats v with at most 2 decimals and no trailing zeros ("2", "2.5", "1.33").
func Trim2(v float64) string {
	if !IsFinite(v) {
		return ""
	}
	return decimal.NewFromFloat(v).Round(2).String()
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Finite returns the value behind p and whether it is present and finite.
func Finite(p *float64) (float64, bool) {
	if p == nil || !IsFinite(*p) {
		return 0, false
	}
	return *p, true
}

// Positive is Finite with the extra requirement that the value is > 0.
func Positive(p *float64) (float64, bool) {
	v, ok := Finite(p)
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}

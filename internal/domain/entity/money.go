package entity

import "math"

// PaiseFromDecimal converts a decimal rupee amount to integer paise, rounding
// half away from zero
func PaiseFromDecimal(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

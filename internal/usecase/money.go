package usecase

import "math"

// toMinorUnits converts a decimal amount to integer cents using banker's
// rounding, so repeated conversions of the same total stay stable.
func toMinorUnits(amount float64) int64 {
	return int64(math.RoundToEven(amount * 100))
}

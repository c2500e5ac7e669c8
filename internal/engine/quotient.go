package engine

import (
	"fmt"
	"math"

	"github.com/Veraticus/grocery-manager/internal/common"
)

// ErrDivisionByZero is returned when a quotient would divide by zero, which
// happens when no grocery days are configured.
var ErrDivisionByZero = fmt.Errorf("%w: division by zero", common.ErrConfiguration)

// ComputeQuotient returns how much an item's countdown advances per grocery
// day: frequency / (timeFrameWeight * groceryDaysPerWeek), rounded to the
// nearest 0.05 with ties to even.
//
// Quotients above 1.0 are returned unchanged. Whether such an item may be
// created is decided by RequirementChecker.
func ComputeQuotient(frequency, timeFrameWeight, groceryDaysPerWeek int) (float64, error) {
	divisor := timeFrameWeight * groceryDaysPerWeek
	if divisor == 0 {
		return 0, fmt.Errorf("%w: frequency %d, time frame %d, %d grocery days a week",
			ErrDivisionByZero, frequency, timeFrameWeight, groceryDaysPerWeek)
	}
	return roundToTwentieth(float64(frequency) / float64(divisor)), nil
}

func roundToTwentieth(v float64) float64 {
	return math.RoundToEven(v*20) / 20
}

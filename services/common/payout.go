package common

import "math"

// PariMutuelPayout returns the floored share of the pool owed to a winning
// stake. Integer division floors for non-negative operands; fractional points
// lost to rounding stay in the house and are not redistributed.
func PariMutuelPayout(stake, pool, totalWinningStake int64) int64 {
	if totalWinningStake <= 0 {
		return 0
	}
	return stake * pool / totalWinningStake
}

// ParlayMultiplier maps leg count to the fixed-odds multiplier. It is a
// policy knob, not a derived quantity; deployments can swap the curve.
var ParlayMultiplier = func(legCount int) float64 {
	switch {
	case legCount < 2:
		return 0
	case legCount == 2:
		return 2.5
	case legCount == 3:
		return 5
	case legCount == 4:
		return 10
	default:
		return 15
	}
}

// ParlayPayout is the potential payout precomputed at placement: stake times
// the multiplier, floored to whole points.
func ParlayPayout(amount int64, multiplier float64) int64 {
	return int64(math.Floor(float64(amount) * multiplier))
}

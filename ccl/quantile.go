package ccl

import (
	"math"
	"slices"
)

// quantileLinear returns the q-quantile of values, linearly interpolating
// between the two closest ranks. Returns NaN for an empty set
func quantileLinear(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	var (
		pos = q * float64(len(sorted)-1)
		lo  = int(math.Floor(pos))
		hi  = int(math.Ceil(pos))
	)

	if lo == hi {
		return sorted[lo]
	}

	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

// quantileNearest returns the q-quantile of values as the observed value
// at the nearest rank. Halfway positions round to the even rank.
// Returns NaN for an empty set
func quantileNearest(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	pos := int(math.RoundToEven(q * float64(len(sorted)-1)))

	return sorted[pos]
}

package inference

import (
	"math"
	"sort"
)

// quantile computes the q-quantile (q in [0, 1]) of data using linear
// interpolation between order statistics, so small simulation counts do not
// produce staircase artifacts when the requested probability falls between
// discrete draws.
func quantile(data []float64, q float64) float64 {
	if len(data) == 0 {
		return 0
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	index := q * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

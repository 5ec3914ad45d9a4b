package pitchmap

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Statistical helpers over raw data slices, using gonum where it matches
// the required convention.

func mean(data []float64) float64 {
	return stat.Mean(data, nil)
}

func median(data []float64) float64 {
	return percentile(data, 50)
}

// percentile computes the p-th percentile (p in [0,100]) with linear
// interpolation between order statistics: rank h = (n-1)*p/100, value
// interpolated between floor(h) and ceil(h).
func percentile(data []float64, p float64) float64 {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	h := float64(len(sorted)-1) * p / 100.0
	lo := int(h)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

package batch

import (
	"math"
	"sort"

	"soptcli/pkg/contracts/domain"
)

// computeStats calculates the five-number summary over the given samples.
// The slice must contain only non-missing values; the caller filters NaN out.
//
// N=0 leaves every statistic NaN with SampleCount 0 so callers can
// distinguish "no data" from "degenerate but present data" (N=1, where only
// the standard deviation is NaN under the N-1 convention).
func computeStats(values []float64) domain.VariableStats {
	stats := domain.VariableStats{
		Mean:        math.NaN(),
		Median:      math.NaN(),
		Max:         math.NaN(),
		Min:         math.NaN(),
		StdDev:      math.NaN(),
		SampleCount: len(values),
	}
	if len(values) == 0 {
		return stats
	}

	stats.Mean = mean(values)
	stats.Median = median(values)
	stats.Min, stats.Max = minMax(values)
	stats.StdDev = sampleStdDev(values, stats.Mean)

	return stats
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// median returns the middle value, or the mean of the two middle values for
// an even sample count. The input slice is not modified.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func minMax(values []float64) (float64, float64) {
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// sampleStdDev returns the sample standard deviation (normalized by N-1).
// A single sample has no defined deviation and yields NaN rather than zero.
func sampleStdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

package batch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name       string
		values     []float64
		wantMean   float64
		wantMedian float64
		wantMax    float64
		wantMin    float64
		wantStdDev float64
	}{
		{
			name:       "three samples",
			values:     []float64{70.0, 72.0, 71.0},
			wantMean:   71.0,
			wantMedian: 71.0,
			wantMax:    72.0,
			wantMin:    70.0,
			wantStdDev: 1.0,
		},
		{
			name:       "even sample count medians between middles",
			values:     []float64{1.0, 2.0, 3.0, 4.0},
			wantMean:   2.5,
			wantMedian: 2.5,
			wantMax:    4.0,
			wantMin:    1.0,
			wantStdDev: math.Sqrt(5.0 / 3.0),
		},
		{
			name:       "constant series has zero deviation",
			values:     []float64{5.0, 5.0, 5.0},
			wantMean:   5.0,
			wantMedian: 5.0,
			wantMax:    5.0,
			wantMin:    5.0,
			wantStdDev: 0.0,
		},
		{
			name:       "negative values",
			values:     []float64{-2.0, 0.0, 2.0},
			wantMean:   0.0,
			wantMedian: 0.0,
			wantMax:    2.0,
			wantMin:    -2.0,
			wantStdDev: 2.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := computeStats(tt.values)

			assert.Equal(t, len(tt.values), stats.SampleCount)
			assert.True(t, stats.Defined())
			assert.InDelta(t, tt.wantMean, stats.Mean, 1e-9)
			assert.InDelta(t, tt.wantMedian, stats.Median, 1e-9)
			assert.InDelta(t, tt.wantMax, stats.Max, 1e-9)
			assert.InDelta(t, tt.wantMin, stats.Min, 1e-9)
			assert.InDelta(t, tt.wantStdDev, stats.StdDev, 1e-9)
		})
	}
}

func TestComputeStats_SingleSample(t *testing.T) {
	stats := computeStats([]float64{70.0})

	assert.Equal(t, 1, stats.SampleCount)
	assert.True(t, stats.Defined())
	assert.True(t, stats.Degenerate())
	assert.Equal(t, 70.0, stats.Mean)
	assert.Equal(t, 70.0, stats.Median)
	assert.Equal(t, 70.0, stats.Max)
	assert.Equal(t, 70.0, stats.Min)
	assert.True(t, math.IsNaN(stats.StdDev), "std dev must be undefined for N=1, not zero")
}

func TestComputeStats_NoSamples(t *testing.T) {
	stats := computeStats(nil)

	assert.Equal(t, 0, stats.SampleCount)
	assert.False(t, stats.Defined())
	assert.False(t, stats.Degenerate())
	assert.True(t, math.IsNaN(stats.Mean))
	assert.True(t, math.IsNaN(stats.Median))
	assert.True(t, math.IsNaN(stats.Max))
	assert.True(t, math.IsNaN(stats.Min))
	assert.True(t, math.IsNaN(stats.StdDev))
}

func TestMedian_DoesNotMutateInput(t *testing.T) {
	values := []float64{3.0, 1.0, 2.0}
	median(values)
	assert.Equal(t, []float64{3.0, 1.0, 2.0}, values)
}

package domain

import (
	"encoding/json"
	"math"
	"time"
)

// VariableStats is the five-number statistical summary of one variable over
// one batch, computed only over non-missing samples. SampleCount records how
// many samples contributed: zero means every statistic is undefined, one
// means the standard deviation alone is undefined (N-1 convention).
// Undefined statistics are NaN in memory and null in JSON, never zero.
type VariableStats struct {
	Mean        float64
	Median      float64
	Max         float64
	Min         float64
	StdDev      float64
	SampleCount int
}

// Defined reports whether the summary statistics carry any information,
// i.e. the variable had at least one non-missing sample in the batch.
func (s VariableStats) Defined() bool {
	return s.SampleCount > 0
}

// Degenerate reports whether the batch had exactly one sample for the
// variable, in which case the standard deviation is undefined but the
// remaining statistics are valid.
func (s VariableStats) Degenerate() bool {
	return s.SampleCount == 1
}

// MarshalJSON emits null for undefined statistics so the presentation layer
// can render "insufficient data" instead of misleading zeros. encoding/json
// rejects NaN, so this also keeps the summary serializable.
func (s VariableStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Mean        *float64 `json:"mean"`
		Median      *float64 `json:"median"`
		Max         *float64 `json:"max"`
		Min         *float64 `json:"min"`
		StdDev      *float64 `json:"std_dev"`
		SampleCount int      `json:"sample_count"`
	}{
		Mean:        nullableFloat(s.Mean),
		Median:      nullableFloat(s.Median),
		Max:         nullableFloat(s.Max),
		Min:         nullableFloat(s.Min),
		StdDev:      nullableFloat(s.StdDev),
		SampleCount: s.SampleCount,
	})
}

// UnmarshalJSON restores NaN for null statistics.
func (s *VariableStats) UnmarshalJSON(data []byte) error {
	var raw struct {
		Mean        *float64 `json:"mean"`
		Median      *float64 `json:"median"`
		Max         *float64 `json:"max"`
		Min         *float64 `json:"min"`
		StdDev      *float64 `json:"std_dev"`
		SampleCount int      `json:"sample_count"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Mean = floatOrNaN(raw.Mean)
	s.Median = floatOrNaN(raw.Median)
	s.Max = floatOrNaN(raw.Max)
	s.Min = floatOrNaN(raw.Min)
	s.StdDev = floatOrNaN(raw.StdDev)
	s.SampleCount = raw.SampleCount
	return nil
}

func nullableFloat(f float64) *float64 {
	if math.IsNaN(f) {
		return nil
	}
	return &f
}

func floatOrNaN(f *float64) float64 {
	if f == nil {
		return math.NaN()
	}
	return *f
}

// BatchSummary is the derived, read-only summary for one batch: its time
// window, duration and per-variable statistics. It is computed on demand for
// each selection and never cached or mutated.
type BatchSummary struct {
	BatchID         string                     `json:"batch_id"`
	StartTime       time.Time                  `json:"start_time"`
	EndTime         time.Time                  `json:"end_time"`
	DurationMinutes float64                    `json:"duration_minutes"`
	Stats           map[Variable]VariableStats `json:"stats"`
}

// Point is one charting sample: a timestamp and the variable's value at
// that instant.
type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

package exporter

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soptcli/pkg/contracts/domain"
)

func sampleSummary() *domain.BatchSummary {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	stats := make(map[domain.Variable]domain.VariableStats)
	for _, v := range domain.Variables() {
		stats[v] = domain.VariableStats{
			Mean: 71.0, Median: 71.0, Max: 72.0, Min: 70.0, StdDev: 1.0, SampleCount: 3,
		}
	}
	// One variable entirely missing.
	stats[domain.VariableValveOpening] = domain.VariableStats{
		Mean:   math.NaN(),
		Median: math.NaN(),
		Max:    math.NaN(),
		Min:    math.NaN(),
		StdDev: math.NaN(),
	}
	return &domain.BatchSummary{
		BatchID:         "3",
		StartTime:       start,
		EndTime:         start.Add(2 * time.Minute),
		DurationMinutes: 2.0,
		Stats:           stats,
	}
}

func TestSummaryWriter_WriteCSV(t *testing.T) {
	writer := NewSummaryWriter(slog.Default())
	path := filepath.Join(t.TempDir(), "reports", "summary.csv")

	err := writer.WriteCSV(context.Background(), path, []*domain.BatchSummary{sampleSummary()})
	require.NoError(t, err)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	// Header plus one row per variable.
	require.Len(t, rows, 1+len(domain.Variables()))
	assert.Equal(t, "BatchID", rows[0][0])

	for _, row := range rows[1:] {
		assert.Equal(t, "3", row[0])
		if row[4] == string(domain.VariableValveOpening) {
			assert.Empty(t, row[5], "undefined mean must be blank, not zero")
			assert.Equal(t, "0", row[10])
		} else {
			assert.Equal(t, "71.0000", row[5])
			assert.Equal(t, "3", row[10])
		}
	}
}

func TestSummaryWriter_WriteJSON(t *testing.T) {
	writer := NewSummaryWriter(slog.Default())
	path := filepath.Join(t.TempDir(), "reports", "summary.json")

	err := writer.WriteJSON(context.Background(), path, []*domain.BatchSummary{sampleSummary()})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Batches []domain.BatchSummary `json:"batches"`
		Count   int                   `json:"count"`
		Format  string                `json:"format"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, 1, decoded.Count)
	assert.Equal(t, "batch_summary_v1", decoded.Format)
	require.Len(t, decoded.Batches, 1)

	valve := decoded.Batches[0].Stats[domain.VariableValveOpening]
	assert.True(t, math.IsNaN(valve.Mean), "null round-trips to NaN")
	assert.Equal(t, 0, valve.SampleCount)

	temp := decoded.Batches[0].Stats[domain.VariableProcessTemp]
	assert.Equal(t, 71.0, temp.Mean)
}

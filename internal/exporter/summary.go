// Package exporter writes batch summaries to CSV and JSON report files for
// offline use, in the same shape the HTTP API serves.
package exporter

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	apperrors "soptcli/internal/errors"
	"soptcli/pkg/contracts/domain"
)

// SummaryWriter exports batch summaries.
type SummaryWriter struct {
	logger *slog.Logger
}

// NewSummaryWriter creates a summary writer with the given logger.
func NewSummaryWriter(logger *slog.Logger) *SummaryWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryWriter{logger: logger.With(slog.String("component", "summary_writer"))}
}

// WriteCSV writes one row per batch and variable. Undefined statistics are
// written as empty cells, never as zeros.
func (w *SummaryWriter) WriteCSV(ctx context.Context, path string, summaries []*domain.BatchSummary) error {
	w.logger.InfoContext(ctx, "writing batch summaries to CSV",
		slog.String("path", path),
		slog.Int("summary_count", len(summaries)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory for CSV output", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create CSV file for batch summaries", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"BatchID", "StartTime", "EndTime", "DurationMinutes",
		"Variable", "Mean", "Median", "Max", "Min", "StdDev", "SampleCount"}
	if err := writer.Write(header); err != nil {
		return apperrors.NewStorageError("failed to write CSV header row", err)
	}

	for _, summary := range summaries {
		for _, v := range domain.Variables() {
			stats := summary.Stats[v]
			row := []string{
				summary.BatchID,
				summary.StartTime.Format(time.RFC3339),
				summary.EndTime.Format(time.RFC3339),
				fmt.Sprintf("%.4f", summary.DurationMinutes),
				string(v),
				formatStat(stats.Mean),
				formatStat(stats.Median),
				formatStat(stats.Max),
				formatStat(stats.Min),
				formatStat(stats.StdDev),
				fmt.Sprintf("%d", stats.SampleCount),
			}
			if err := writer.Write(row); err != nil {
				return apperrors.NewStorageError("failed to write CSV data row", err)
			}
		}
	}

	w.logger.InfoContext(ctx, "successfully wrote batch summaries to CSV",
		slog.String("path", path))

	return nil
}

// WriteJSON writes summaries with metadata. VariableStats marshals undefined
// statistics as null, so the output stays valid JSON.
func (w *SummaryWriter) WriteJSON(ctx context.Context, path string, summaries []*domain.BatchSummary) error {
	w.logger.InfoContext(ctx, "writing batch summaries to JSON",
		slog.String("path", path),
		slog.Int("summary_count", len(summaries)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory for JSON output", err)
	}

	jsonData := map[string]interface{}{
		"batches":      summaries,
		"count":        len(summaries),
		"generated_at": time.Now().Format(time.RFC3339),
		"format":       "batch_summary_v1",
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create JSON file for batch summaries", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(jsonData); err != nil {
		return apperrors.NewStorageError("failed to encode batch summaries to JSON", err)
	}

	w.logger.InfoContext(ctx, "successfully wrote batch summaries to JSON",
		slog.String("path", path))

	return nil
}

// formatStat renders a statistic for CSV, leaving undefined values blank.
func formatStat(value float64) string {
	if math.IsNaN(value) {
		return ""
	}
	return fmt.Sprintf("%.4f", value)
}

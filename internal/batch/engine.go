package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"soptcli/pkg/contracts/domain"
)

// Engine computes batch views over a loaded table. Every method is a pure,
// side-effect-free transformation of the table: calling it twice with the
// same arguments on an unchanged table yields identical results, and the
// table is never mutated, so concurrent calls need no locking.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates an analytics engine with the given logger.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger.With(slog.String("component", "batch_engine"))}
}

// ListBatchIDs returns the distinct batch identifiers in the table, each
// exactly once, in ascending natural order: numeric identifiers sort
// numerically so "10" does not sort before "2"; otherwise lexically.
func (e *Engine) ListBatchIDs(table *domain.Table) []string {
	seen := make(map[string]struct{}, len(table.Readings))
	ids := make([]string, 0)
	for i := range table.Readings {
		id := table.Readings[i].BatchID
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	sortBatchIDs(ids)
	return ids
}

// sortBatchIDs sorts ascending, numerically when every identifier parses as
// a number and lexically otherwise.
func sortBatchIDs(ids []string) {
	numeric := make(map[string]float64, len(ids))
	allNumeric := true
	for _, id := range ids {
		n, err := strconv.ParseFloat(id, 64)
		if err != nil {
			allNumeric = false
			break
		}
		numeric[id] = n
	}

	if allNumeric {
		sort.Slice(ids, func(i, j int) bool {
			if numeric[ids[i]] != numeric[ids[j]] {
				return numeric[ids[i]] < numeric[ids[j]]
			}
			return ids[i] < ids[j]
		})
		return
	}
	sort.Strings(ids)
}

// Summarize computes the time window, duration and per-variable statistics
// for one batch. Returns ErrBatchNotFound when no reading carries the given
// identifier; it never fabricates a default summary.
func (e *Engine) Summarize(ctx context.Context, table *domain.Table, batchID string) (*domain.BatchSummary, error) {
	readings := filterBatch(table, batchID)
	if len(readings) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrBatchNotFound, batchID)
	}

	summary := &domain.BatchSummary{
		BatchID:   batchID,
		StartTime: readings[0].Timestamp,
		EndTime:   readings[0].Timestamp,
		Stats:     make(map[domain.Variable]domain.VariableStats, len(domain.Variables())),
	}
	for _, r := range readings[1:] {
		if r.Timestamp.Before(summary.StartTime) {
			summary.StartTime = r.Timestamp
		}
		if r.Timestamp.After(summary.EndTime) {
			summary.EndTime = r.Timestamp
		}
	}
	summary.DurationMinutes = summary.EndTime.Sub(summary.StartTime).Minutes()

	for _, v := range domain.Variables() {
		values := make([]float64, 0, len(readings))
		for i := range readings {
			if value := readings[i].Value(v); !domain.IsMissing(value) {
				values = append(values, value)
			}
		}
		summary.Stats[v] = computeStats(values)
	}

	e.logger.DebugContext(ctx, "batch summarized",
		slog.String("batch_id", batchID),
		slog.Int("readings", len(readings)),
		slog.Float64("duration_minutes", summary.DurationMinutes))

	return summary, nil
}

// SeriesFor returns the batch's samples for one variable, sorted by
// timestamp ascending. This is the one place sort order is guaranteed, since
// charts require a monotonic time axis. Missing samples are omitted so the
// renderer never sees NaN.
func (e *Engine) SeriesFor(ctx context.Context, table *domain.Table, batchID string, variable string) ([]domain.Point, error) {
	if !domain.IsValidVariable(variable) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, variable)
	}

	readings := filterBatch(table, batchID)
	if len(readings) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrBatchNotFound, batchID)
	}

	v := domain.Variable(variable)
	points := make([]domain.Point, 0, len(readings))
	for i := range readings {
		value := readings[i].Value(v)
		if domain.IsMissing(value) {
			continue
		}
		points = append(points, domain.Point{
			Timestamp: readings[i].Timestamp,
			Value:     value,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})

	e.logger.DebugContext(ctx, "series extracted",
		slog.String("batch_id", batchID),
		slog.String("variable", variable),
		slog.Int("points", len(points)))

	return points, nil
}

// filterBatch returns the readings carrying the given batch identifier, in
// table order.
func filterBatch(table *domain.Table, batchID string) []domain.Reading {
	readings := make([]domain.Reading, 0)
	for i := range table.Readings {
		if table.Readings[i].BatchID == batchID {
			readings = append(readings, table.Readings[i])
		}
	}
	return readings
}

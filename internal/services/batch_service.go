package services

import (
	"context"
	"log/slog"

	"soptcli/internal/batch"
	"soptcli/internal/config"
	apperrors "soptcli/internal/errors"
	"soptcli/pkg/contracts/domain"
)

// BatchService owns the session's table handle and exposes the analytics
// engine to the transport layer. The table is loaded exactly once, at
// construction (session start), and is immutable afterwards: there is no
// implicit re-fetch, and concurrent summarization calls need no locking.
type BatchService struct {
	table  *domain.Table
	engine *batch.Engine
	logger *slog.Logger
}

// NewBatchService loads the configured sensor log and returns the service.
// A missing or malformed source is terminal for the session: the caller gets
// the loader's error and decides whether to exit or serve a degraded state.
func NewBatchService(cfg *config.Config, logger *slog.Logger) (*BatchService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	loader := batch.NewLoader(logger)
	table, err := loader.Load(cfg.Data.SourceFile)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to load batch table", err).
			WithContext("source", cfg.Data.SourceFile)
	}

	logger.Info("BatchService initialized",
		slog.String("source", table.Source),
		slog.Int("readings", table.Len()))

	return &BatchService{
		table:  table,
		engine: batch.NewEngine(logger),
		logger: logger,
	}, nil
}

// NewBatchServiceWithTable builds the service around an already-loaded
// table. Used by tests and by the report CLI, which drives the loader
// itself.
func NewBatchServiceWithTable(table *domain.Table, logger *slog.Logger) *BatchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchService{
		table:  table,
		engine: batch.NewEngine(logger),
		logger: logger,
	}
}

// BatchIDs returns the distinct batch identifiers in ascending natural order.
func (s *BatchService) BatchIDs(ctx context.Context) []string {
	return s.engine.ListBatchIDs(s.table)
}

// Summary computes the summary for one batch. Errors wrap
// batch.ErrBatchNotFound when the identifier is not present.
func (s *BatchService) Summary(ctx context.Context, batchID string) (*domain.BatchSummary, error) {
	return s.engine.Summarize(ctx, s.table, batchID)
}

// Series returns the timestamp-sorted samples of one variable for one batch.
func (s *BatchService) Series(ctx context.Context, batchID, variable string) ([]domain.Point, error) {
	return s.engine.SeriesFor(ctx, s.table, batchID, variable)
}

// Variables returns the tracked process variables in presentation order.
func (s *BatchService) Variables() []domain.Variable {
	return domain.Variables()
}

// Source returns the path the session's table was loaded from.
func (s *BatchService) Source() string {
	return s.table.Source
}

// ReadingCount returns the number of readings in the session's table.
func (s *BatchService) ReadingCount() int {
	return s.table.Len()
}

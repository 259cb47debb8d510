package http

import (
	"context"

	"soptcli/pkg/contracts/domain"
)

// BatchServiceInterface defines what the batch handler needs from the
// service layer. Kept narrow so handler tests can substitute a stub.
type BatchServiceInterface interface {
	BatchIDs(ctx context.Context) []string
	Summary(ctx context.Context, batchID string) (*domain.BatchSummary, error)
	Series(ctx context.Context, batchID, variable string) ([]domain.Point, error)
	Variables() []domain.Variable
}

package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soptcli/internal/batch"
	"soptcli/internal/config"
	apperrors "soptcli/internal/errors"
	"soptcli/pkg/contracts/domain"
)

const sampleCSV = `Timestamp,batch_id,Process Temp,Process Temp SP,Pressure SP,Inlet Steam Pressure,Outlet Steam Pressure,Steam Flow Rate,QualSteam Valve Opening
2024-03-01 10:00:00,3,70.0,71.0,2.5,3.1,2.4,480,62.5
2024-03-01 10:01:00,3,72.0,71.0,2.5,3.0,2.4,485,63.0
2024-03-01 10:02:00,3,71.0,71.0,2.5,3.0,2.4,482,62.8
2024-03-01 11:00:00,1,68.0,71.0,2.5,3.1,2.4,470,61.0
2024-03-01 12:00:00,10,69.0,71.0,2.5,3.1,2.4,475,61.5
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "readings.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	cfg := config.Default()
	cfg.Data.SourceFile = path
	return &cfg
}

func TestNewBatchService(t *testing.T) {
	svc, err := NewBatchService(testConfig(t), slog.Default())

	require.NoError(t, err)
	assert.Equal(t, 5, svc.ReadingCount())
}

func TestNewBatchService_SourceNotFound(t *testing.T) {
	cfg := config.Default()
	cfg.Data.SourceFile = filepath.Join(t.TempDir(), "missing.csv")

	svc, err := NewBatchService(&cfg, slog.Default())

	require.Error(t, err)
	assert.ErrorIs(t, err, batch.ErrSourceNotFound)
	assert.Nil(t, svc)

	// Load failures surface as parsing errors carrying the source path,
	// with the loader sentinel still reachable through the chain.
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)
	assert.Equal(t, cfg.Data.SourceFile, appErr.Context["source"])
}

func TestBatchService_BatchIDs(t *testing.T) {
	svc, err := NewBatchService(testConfig(t), slog.Default())
	require.NoError(t, err)

	ids := svc.BatchIDs(context.Background())
	assert.Equal(t, []string{"1", "3", "10"}, ids, "numeric order, 10 after 3")
}

func TestBatchService_Summary(t *testing.T) {
	svc, err := NewBatchService(testConfig(t), slog.Default())
	require.NoError(t, err)

	summary, err := svc.Summary(context.Background(), "3")
	require.NoError(t, err)

	assert.Equal(t, "3", summary.BatchID)
	assert.InDelta(t, 2.0, summary.DurationMinutes, 1e-9)

	temp := summary.Stats[domain.VariableProcessTemp]
	assert.InDelta(t, 71.0, temp.Mean, 1e-9)
	assert.InDelta(t, 1.0, temp.StdDev, 1e-9)
}

func TestBatchService_Summary_NotFound(t *testing.T) {
	svc, err := NewBatchService(testConfig(t), slog.Default())
	require.NoError(t, err)

	_, err = svc.Summary(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, batch.ErrBatchNotFound)
}

func TestBatchService_Series(t *testing.T) {
	svc, err := NewBatchService(testConfig(t), slog.Default())
	require.NoError(t, err)

	points, err := svc.Series(context.Background(), "3", string(domain.VariableProcessTemp))
	require.NoError(t, err)

	require.Len(t, points, 3)
	for i := 1; i < len(points); i++ {
		assert.False(t, points[i].Timestamp.Before(points[i-1].Timestamp),
			"series must be sorted by timestamp ascending")
	}
}

func TestHealthService(t *testing.T) {
	svc, err := NewBatchService(testConfig(t), slog.Default())
	require.NoError(t, err)

	health := NewHealthService("test", time.Now().Format(time.RFC3339), svc, slog.Default())
	ctx := context.Background()

	assert.Equal(t, "healthy", health.HealthCheck(ctx)["status"])
	assert.Equal(t, "ready", health.ReadinessCheck(ctx)["status"])
	assert.Equal(t, "alive", health.LivenessCheck(ctx)["status"])
}

func TestHealthService_Degraded(t *testing.T) {
	health := NewHealthService("test", "", nil, slog.Default())
	ctx := context.Background()

	assert.Equal(t, "degraded", health.HealthCheck(ctx)["status"])
	assert.Equal(t, "not_ready", health.ReadinessCheck(ctx)["status"])
}

package services

import (
	"context"
	"log/slog"
	"time"

	"soptcli/pkg/contracts"
)

// HealthService reports liveness, readiness and build information.
type HealthService struct {
	version   string
	buildTime string
	startedAt time.Time
	batches   *BatchService
	logger    *slog.Logger
}

// NewHealthService creates a health service with build info. The batch
// service may be nil when the table failed to load; readiness then reports
// the degraded state instead of crashing.
func NewHealthService(version, buildTime string, batches *BatchService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		buildTime: buildTime,
		startedAt: time.Now(),
		batches:   batches,
		logger:    logger,
	}
}

// HealthCheck returns the overall health snapshot.
func (s *HealthService) HealthCheck(ctx context.Context) map[string]interface{} {
	status := "healthy"
	if s.batches == nil {
		status = "degraded"
	}
	result := map[string]interface{}{
		"status":         status,
		"version":        s.version,
		"uptime_seconds": int(time.Since(s.startedAt).Seconds()),
	}
	if s.batches != nil {
		result["data_source"] = s.batches.Source()
		result["readings"] = s.batches.ReadingCount()
		result["batches"] = len(s.batches.BatchIDs(ctx))
	}
	return result
}

// LivenessCheck reports that the process is running.
func (s *HealthService) LivenessCheck(ctx context.Context) map[string]interface{} {
	return map[string]interface{}{"status": "alive"}
}

// ReadinessCheck reports whether the table is loaded and batches can be
// served.
func (s *HealthService) ReadinessCheck(ctx context.Context) map[string]interface{} {
	if s.batches == nil {
		return map[string]interface{}{
			"status": "not_ready",
			"reason": "batch table not loaded",
		}
	}
	return map[string]interface{}{"status": "ready"}
}

// Version returns build information.
func (s *HealthService) Version() map[string]interface{} {
	info := contracts.GetVersionInfo()
	return map[string]interface{}{
		"version":     s.version,
		"build_time":  s.buildTime,
		"go_version":  info.GoVersion,
		"api_version": info.APIVersion,
	}
}

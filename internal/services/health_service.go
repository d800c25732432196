package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"volvedash/pkg/contracts"
)

// DatasetStatusProvider reports the state of the production dataset
type DatasetStatusProvider interface {
	Status() LoadStatus
}

// Health states reported by HealthService
const (
	StatusOK       = "ok"
	StatusAlive    = "alive"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
	StatusDegraded = "degraded"
)

// HealthService provides health check functionality
type HealthService struct {
	version    string
	buildTime  string
	gitCommit  string
	imagePath  string
	production DatasetStatusProvider
	startTime  time.Time
	logger     *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   map[string]interface{}   `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// NewHealthService creates a new health service with injected dependencies
func NewHealthService(production DatasetStatusProvider, imagePath string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", contracts.Version),
		slog.String("build_time", contracts.BuildTime),
		slog.String("git_commit", contracts.GitCommit))

	return &HealthService{
		version:    contracts.Version,
		buildTime:  contracts.BuildTime,
		gitCommit:  contracts.GitCommit,
		imagePath:  imagePath,
		production: production,
		startTime:  time.Now(),
		logger:     logger,
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    StatusOK,
		Timestamp: time.Now(),
		Version:   hs.version,
	}

	hs.logger.DebugContext(ctx, "HealthCheck: completed",
		slog.String("status", status.Status),
		slog.String("uptime", time.Since(hs.startTime).String()))

	return status
}

// ReadinessCheck reports whether the dataset has been loaded. A dataset
// that has never been requested is still considered ready because it is
// loaded lazily; only a failed load makes the service not ready.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    StatusReady,
		Timestamp: time.Now(),
		Version:   hs.version,
		Services: map[string]ServiceHealth{
			"dataset": hs.checkDatasetHealth(),
			"banner":  hs.checkBannerHealth(),
		},
	}

	for name, service := range status.Services {
		if service.Status == StatusNotReady {
			status.Status = StatusNotReady
			hs.logger.DebugContext(ctx, "component not ready",
				slog.String("component", name),
				slog.String("message", service.Message))
		}
	}

	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    StatusAlive,
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	info := contracts.GetVersionInfo()
	return map[string]interface{}{
		"name":         contracts.GetVersionString(),
		"version":      hs.version,
		"stage":        info.Stage,
		"build_time":   hs.buildTime,
		"git_commit":   hs.gitCommit,
		"go_version":   info.GoVersion,
		"os":           info.OS,
		"arch":         info.Architecture,
		"api_version":  info.APIVersion,
		"columns":      info.Columns,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}
}

func (hs *HealthService) checkDatasetHealth() ServiceHealth {
	if hs.production == nil {
		return ServiceHealth{Status: StatusNotReady, Message: "production service not initialized"}
	}

	st := hs.production.Status()
	switch {
	case st.Loaded:
		return ServiceHealth{
			Status:  StatusReady,
			Message: fmt.Sprintf("%d rows loaded from %s", st.Rows, st.Source),
			Uptime:  time.Since(st.LoadedAt).Round(time.Second).String(),
		}
	case st.LastError != "":
		return ServiceHealth{Status: StatusNotReady, Message: st.LastError}
	default:
		return ServiceHealth{Status: StatusReady, Message: "dataset loads on first use"}
	}
}

func (hs *HealthService) checkBannerHealth() ServiceHealth {
	if hs.imagePath == "" {
		return ServiceHealth{Status: StatusReady, Message: "using embedded banner"}
	}
	if _, err := os.Stat(hs.imagePath); err != nil {
		return ServiceHealth{Status: StatusDegraded, Message: fmt.Sprintf("banner image unavailable, using embedded banner: %v", err)}
	}
	return ServiceHealth{Status: StatusReady, Message: "banner image found"}
}

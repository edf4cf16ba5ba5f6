package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// HealthService reports liveness plus coarse component status.
type HealthService struct {
	version   string
	buildTime string
	data      *DataService
	auth      *AuthService
	actions   *ActionsService
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus is the health check response.
type HealthStatus struct {
	Status    string                   `json:"status"`
	Timestamp time.Time                `json:"timestamp"`
	Version   string                   `json:"version"`
	Runtime   map[string]interface{}   `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth `json:"services,omitempty"`
}

// ServiceHealth is one component's status line.
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates the health service.
func NewHealthService(version, buildTime string, data *DataService, auth *AuthService, actions *ActionsService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.String("build_time", buildTime))

	return &HealthService{
		version:   version,
		buildTime: buildTime,
		data:      data,
		auth:      auth,
		actions:   actions,
		startTime: time.Now(),
		logger:    logger,
	}
}

// Check returns the overall status. The process is degraded, not down,
// when the dataset has not loaded; the API still answers and reload can
// recover it.
func (hs *HealthService) Check(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"go_version":     runtime.Version(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
			"goroutines":     runtime.NumGoroutine(),
			"uptime_seconds": time.Since(hs.startTime).Seconds(),
		},
		Services: make(map[string]ServiceHealth),
	}

	if hs.data != nil {
		if loadedAt := hs.data.LoadedAt(); loadedAt.IsZero() {
			status.Status = "degraded"
			status.Services["dataset"] = ServiceHealth{
				Status:  "down",
				Message: "dataset not loaded",
			}
		} else {
			status.Services["dataset"] = ServiceHealth{
				Status:  "up",
				Message: "loaded at " + loadedAt.UTC().Format(time.RFC3339),
			}
		}
	}

	if hs.actions != nil {
		if _, err := hs.actions.Count(ctx); err != nil {
			status.Status = "degraded"
			status.Services["action_log"] = ServiceHealth{
				Status:  "down",
				Message: err.Error(),
			}
		} else {
			status.Services["action_log"] = ServiceHealth{Status: "up"}
		}
	}

	return status
}

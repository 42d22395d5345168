package handler

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/mstgnz/interkassa/infra/response"
	"github.com/mstgnz/interkassa/provider"
)

// ProviderLookup resolves a configured provider by name
type ProviderLookup interface {
	GetProvider(name string) (provider.FormProvider, string, error)
}

// HealthHandler handles health check requests
type HealthHandler struct {
	providers         ProviderLookup
	providerNames     []string
	openSearchEnabled bool
	environment       string
	startTime         time.Time
}

// HealthStatus represents overall service health
type HealthStatus struct {
	Status            string                     `json:"status"`
	Version           string                     `json:"version"`
	Timestamp         time.Time                  `json:"timestamp"`
	Uptime            string                     `json:"uptime"`
	Environment       string                     `json:"environment"`
	OpenSearchEnabled bool                       `json:"opensearch_enabled"`
	Providers         map[string]*ProviderHealth `json:"providers"`
	System            *SystemHealth              `json:"system"`
}

// ProviderHealth represents payment provider health
type ProviderHealth struct {
	Status     string `json:"status"`
	Configured bool   `json:"configured"`
	Error      string `json:"error,omitempty"`
}

// SystemHealth represents process resource usage
type SystemHealth struct {
	Alloc      string `json:"alloc"`
	Sys        string `json:"sys"`
	GCRuns     uint32 `json:"gc_runs"`
	GoRoutines int    `json:"goroutines"`
}

// NewHealthHandler creates a new health handler for the named providers
func NewHealthHandler(providers ProviderLookup, providerNames []string, openSearchEnabled bool, environment string) *HealthHandler {
	return &HealthHandler{
		providers:         providers,
		providerNames:     providerNames,
		openSearchEnabled: openSearchEnabled,
		environment:       environment,
		startTime:         time.Now(),
	}
}

// CheckHealth reports whether the configured providers are usable
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	health := &HealthStatus{
		Version:           "1.0.0",
		Timestamp:         time.Now().UTC(),
		Uptime:            time.Since(h.startTime).String(),
		Environment:       h.environment,
		OpenSearchEnabled: h.openSearchEnabled,
		Providers:         h.checkProviders(),
		System:            checkSystem(),
	}
	health.Status = determineOverallStatus(health.Providers)

	statusCode := http.StatusOK
	if health.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	_ = response.WriteJSON(w, statusCode, response.Response{
		Code:    statusCode,
		Success: health.Status != "unhealthy",
		Message: fmt.Sprintf("Service is %s", health.Status),
		Data:    health,
	})
}

func (h *HealthHandler) checkProviders() map[string]*ProviderHealth {
	providers := make(map[string]*ProviderHealth, len(h.providerNames))
	for _, name := range h.providerNames {
		health := &ProviderHealth{Status: "healthy", Configured: true}
		if _, _, err := h.providers.GetProvider(name); err != nil {
			health.Status = "not_available"
			health.Configured = false
			health.Error = err.Error()
		}
		providers[name] = health
	}
	return providers
}

func checkSystem() *SystemHealth {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return &SystemHealth{
		Alloc:      formatBytes(memStats.Alloc),
		Sys:        formatBytes(memStats.Sys),
		GCRuns:     memStats.NumGC,
		GoRoutines: runtime.NumGoroutine(),
	}
}

// determineOverallStatus is unhealthy when no provider works and degraded when only some do
func determineOverallStatus(providers map[string]*ProviderHealth) string {
	if len(providers) == 0 {
		return "unhealthy"
	}

	healthy := 0
	for _, p := range providers {
		if p.Status == "healthy" {
			healthy++
		}
	}

	switch {
	case healthy == 0:
		return "unhealthy"
	case healthy < len(providers):
		return "degraded"
	default:
		return "healthy"
	}
}

func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

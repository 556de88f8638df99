package handlers

import (
	"net/http"
	"time"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/services"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	health services.HealthService
	queue  *services.ValidationQueue
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(health services.HealthService, queue *services.ValidationQueue) *HealthHandler {
	return &HealthHandler{health: health, queue: queue}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string                         `json:"status"`
	Timestamp  time.Time                      `json:"timestamp"`
	Components map[string]*models.HealthCheck `json:"components"`
	Queue      *services.QueueStats           `json:"queue,omitempty"`
}

// HandleHealthCheck handles GET /health
func (h *HealthHandler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	components, err := h.health.GetHealthStatus(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to get health status")
		return
	}

	overallStatus := "healthy"
	for _, component := range components {
		if component.Status == models.HealthStatusUnhealthy {
			overallStatus = "unhealthy"
			break
		}
		if component.Status == models.HealthStatusDegraded {
			overallStatus = "degraded"
		}
	}

	response := HealthResponse{
		Status:     overallStatus,
		Timestamp:  time.Now(),
		Components: components,
	}
	if stats, err := h.queue.Stats(ctx); err == nil {
		response.Queue = &stats
	}

	status := http.StatusOK
	if overallStatus == "unhealthy" {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, response)
}

// HandleLivenessProbe handles GET /health/live
func (h *HealthHandler) HandleLivenessProbe(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// HandleReadinessProbe handles GET /health/ready
func (h *HealthHandler) HandleReadinessProbe(w http.ResponseWriter, r *http.Request) {
	check, err := h.health.PerformHealthCheck(r.Context(), "database")
	if err != nil || check.Status == models.HealthStatusUnhealthy {
		respondError(w, http.StatusServiceUnavailable, "not ready")
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}

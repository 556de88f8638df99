package models

import "time"

// HealthStatus represents component health states
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthCheck is the result of probing one component
type HealthCheck struct {
	Component string                 `json:"component"`
	Status    HealthStatus           `json:"status"`
	Message   string                 `json:"message,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	CheckedAt time.Time              `json:"checked_at"`
}

// IsHealthy reports whether the component is fully healthy
func (h *HealthCheck) IsHealthy() bool {
	return h.Status == HealthStatusHealthy
}

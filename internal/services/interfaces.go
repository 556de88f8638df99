package services

import (
	"context"
	"time"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
)

// CompatibilityResolver classifies a (source type, target type) pairing
type CompatibilityResolver interface {
	Resolve(sourceType, targetType string) models.TypeCompatibilityResult
}

// MappingEvaluator runs the full rule battery against one mapping
type MappingEvaluator interface {
	EvaluateMapping(mapping models.Mapping) models.ValidationResult
}

// MappingAggregator rolls evaluation results up into a configuration-level
// summary and supports debounced live observation of a mapping set
type MappingAggregator interface {
	SummarizeMappings(mappings []models.Mapping) models.ValidationSummary
	Observe(fetch func() []models.Mapping, onChange func(models.ValidationSummary)) *ValidationWatcher
}

// FieldExtractionService derives API-origin fields from a sample payload
type FieldExtractionService interface {
	ExtractFields(ctx context.Context, payload map[string]interface{}) (models.FieldList, error)
}

// MappingService manages persisted mappings and their validation state
type MappingService interface {
	CreateMapping(ctx context.Context, mapping *models.Mapping) (*models.Mapping, error)
	UpdateMapping(ctx context.Context, mapping *models.Mapping) (*models.Mapping, error)
	DeleteMapping(ctx context.Context, mappingID string) error
	GetMapping(ctx context.Context, mappingID string) (*models.Mapping, error)
	GetMappingsByProfile(ctx context.Context, profileID string) ([]*models.Mapping, error)
	ValidateProfile(ctx context.Context, profileID string) (models.ValidationSummary, error)
	Shutdown()
}

// HealthService tracks named component health checks
type HealthService interface {
	RegisterHealthCheck(component string, checkFunc func(ctx context.Context) (*models.HealthCheck, error))
	PerformHealthCheck(ctx context.Context, component string) (*models.HealthCheck, error)
	GetHealthStatus(ctx context.Context) (map[string]*models.HealthCheck, error)
}

// QueueStats reports background revalidation queue state
type QueueStats struct {
	Pending   int64     `json:"pending"`
	Processed uint64    `json:"processed"`
	Failed    uint64    `json:"failed"`
	StartedAt time.Time `json:"started_at"`
}

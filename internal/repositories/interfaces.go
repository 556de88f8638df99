package repositories

import (
	"context"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
)

// ConnectionProfileRepository defines data operations for connection profiles
type ConnectionProfileRepository interface {
	Create(ctx context.Context, profile *models.ConnectionProfile) error
	GetByID(ctx context.Context, id string) (*models.ConnectionProfile, error)
	GetByName(ctx context.Context, name string) (*models.ConnectionProfile, error)
	List(ctx context.Context) ([]*models.ConnectionProfile, error)
	Update(ctx context.Context, profile *models.ConnectionProfile) error
	Delete(ctx context.Context, id string) error
}

// SchemaSnapshotRepository defines data operations for schema snapshots
type SchemaSnapshotRepository interface {
	Upsert(ctx context.Context, snapshot *models.SchemaSnapshot) error
	GetByProfile(ctx context.Context, profileID string) (*models.SchemaSnapshot, error)
	DeleteByProfile(ctx context.Context, profileID string) error
}

// MappingRepository defines data operations for field mappings
type MappingRepository interface {
	Create(ctx context.Context, mapping *models.Mapping) error
	GetByID(ctx context.Context, id string) (*models.Mapping, error)
	GetByProfile(ctx context.Context, profileID string) ([]*models.Mapping, error)
	Update(ctx context.Context, mapping *models.Mapping) error
	Delete(ctx context.Context, id string) error
}

// AuditLogRepository defines data operations for audit log entries
type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	GetByResource(ctx context.Context, resourceType, resourceID string) ([]*models.AuditLog, error)
}

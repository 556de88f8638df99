package repositories

import (
	"context"
	"time"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/database"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
)

// auditLogRepository implements AuditLogRepository
type auditLogRepository struct {
	db *database.Connection
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *database.Connection) AuditLogRepository {
	return &auditLogRepository{db: db}
}

// Create appends an audit log entry
func (r *auditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

// GetByResource retrieves audit entries for one resource, newest first
func (r *auditLogRepository) GetByResource(ctx context.Context, resourceType, resourceID string) ([]*models.AuditLog, error) {
	var entries []*models.AuditLog
	err := r.db.WithContext(ctx).
		Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("timestamp DESC").
		Find(&entries).Error
	return entries, err
}

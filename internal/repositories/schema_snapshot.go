package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/database"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
)

// schemaSnapshotRepository implements SchemaSnapshotRepository
type schemaSnapshotRepository struct {
	db *database.Connection
}

// NewSchemaSnapshotRepository creates a new schema snapshot repository
func NewSchemaSnapshotRepository(db *database.Connection) SchemaSnapshotRepository {
	return &schemaSnapshotRepository{db: db}
}

// Upsert replaces the profile's snapshot. A profile carries at most one
// live snapshot; older ones are soft deleted before the new one is written.
func (r *schemaSnapshotRepository) Upsert(ctx context.Context, snapshot *models.SchemaSnapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profile_id = ?", snapshot.ProfileID).
			Delete(&models.SchemaSnapshot{}).Error; err != nil {
			return err
		}
		return tx.Create(snapshot).Error
	})
}

// GetByProfile retrieves the live snapshot for a profile
func (r *schemaSnapshotRepository) GetByProfile(ctx context.Context, profileID string) (*models.SchemaSnapshot, error) {
	var snapshot models.SchemaSnapshot
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		First(&snapshot, "profile_id = ?", profileID).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// DeleteByProfile soft deletes all snapshots for a profile
func (r *schemaSnapshotRepository) DeleteByProfile(ctx context.Context, profileID string) error {
	return r.db.WithContext(ctx).
		Delete(&models.SchemaSnapshot{}, "profile_id = ?", profileID).Error
}

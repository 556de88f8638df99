package repositories

import (
	"context"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/database"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
)

// mappingRepository implements MappingRepository
type mappingRepository struct {
	db *database.Connection
}

// NewMappingRepository creates a new mapping repository
func NewMappingRepository(db *database.Connection) MappingRepository {
	return &mappingRepository{db: db}
}

// Create creates a new mapping
func (r *mappingRepository) Create(ctx context.Context, mapping *models.Mapping) error {
	return r.db.WithContext(ctx).Create(mapping).Error
}

// GetByID retrieves a mapping by ID
func (r *mappingRepository) GetByID(ctx context.Context, id string) (*models.Mapping, error) {
	var mapping models.Mapping
	err := r.db.WithContext(ctx).First(&mapping, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &mapping, nil
}

// GetByProfile retrieves all active mappings for a profile in creation order
func (r *mappingRepository) GetByProfile(ctx context.Context, profileID string) ([]*models.Mapping, error) {
	var mappings []*models.Mapping
	err := r.db.WithContext(ctx).
		Where("profile_id = ? AND is_active = ?", profileID, true).
		Order("created_at").
		Find(&mappings).Error
	return mappings, err
}

// Update updates an existing mapping
func (r *mappingRepository) Update(ctx context.Context, mapping *models.Mapping) error {
	return r.db.WithContext(ctx).Save(mapping).Error
}

// Delete soft deletes a mapping
func (r *mappingRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Mapping{}, "id = ?", id).Error
}

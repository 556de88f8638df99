package repositories

import (
	"context"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/database"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
)

// connectionProfileRepository implements ConnectionProfileRepository
type connectionProfileRepository struct {
	db *database.Connection
}

// NewConnectionProfileRepository creates a new connection profile repository
func NewConnectionProfileRepository(db *database.Connection) ConnectionProfileRepository {
	return &connectionProfileRepository{db: db}
}

// Create creates a new connection profile
func (r *connectionProfileRepository) Create(ctx context.Context, profile *models.ConnectionProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// GetByID retrieves a connection profile by ID
func (r *connectionProfileRepository) GetByID(ctx context.Context, id string) (*models.ConnectionProfile, error) {
	var profile models.ConnectionProfile
	err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetByName retrieves a connection profile by its unique name
func (r *connectionProfileRepository) GetByName(ctx context.Context, name string) (*models.ConnectionProfile, error) {
	var profile models.ConnectionProfile
	err := r.db.WithContext(ctx).First(&profile, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// List retrieves all connection profiles ordered by name
func (r *connectionProfileRepository) List(ctx context.Context) ([]*models.ConnectionProfile, error) {
	var profiles []*models.ConnectionProfile
	err := r.db.WithContext(ctx).Order("name").Find(&profiles).Error
	return profiles, err
}

// Update updates an existing connection profile
func (r *connectionProfileRepository) Update(ctx context.Context, profile *models.ConnectionProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// Delete soft deletes a connection profile
func (r *connectionProfileRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.ConnectionProfile{}, "id = ?", id).Error
}

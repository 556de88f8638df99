package database

import (
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/models"
)

// Migrator handles database migrations
type Migrator struct {
	db *Connection
}

// NewMigrator creates a new migrator instance
func NewMigrator(db *Connection) *Migrator {
	return &Migrator{db: db}
}

// Up runs all pending migrations
func (m *Migrator) Up() error {
	return m.db.AutoMigrate(
		&models.ConnectionProfile{},
		&models.SchemaSnapshot{},
		&models.Mapping{},
		&models.AuditLog{},
	)
}

// Down rolls back all migrations (for testing purposes)
func (m *Migrator) Down() error {
	return m.db.Migrator().DropTable(
		&models.AuditLog{},
		&models.Mapping{},
		&models.SchemaSnapshot{},
		&models.ConnectionProfile{},
	)
}

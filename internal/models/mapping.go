package models

import (
	"time"

	"gorm.io/gorm"
)

// Mapping is a directed edge between an API field and a database column.
// A source field should map to at most one active target and vice versa,
// but the engine treats duplicates as advisory rather than rejecting them.
type Mapping struct {
	ID          string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ProfileID   string         `json:"profile_id" gorm:"type:uuid;index"`
	SourceField Field          `json:"source_field" gorm:"type:jsonb"`
	TargetField Field          `json:"target_field" gorm:"type:jsonb"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Profile *ConnectionProfile `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
}

// TableName returns the table name for Mapping
func (Mapping) TableName() string {
	return "mappings"
}

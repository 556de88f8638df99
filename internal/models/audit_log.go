package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONMap is a JSONB-serialized free-form object
type JSONMap map[string]interface{}

// Value implements driver.Valuer interface for GORM
func (j JSONMap) Value() (driver.Value, error) {
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface for GORM
func (j *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*j = JSONMap{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into JSONMap", value)
	}

	return json.Unmarshal(bytes, j)
}

// AuditLog records a configuration change: profile, schema snapshot or
// mapping mutations. Entries are append-only.
type AuditLog struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Action       string    `json:"action" gorm:"not null" validate:"required,oneof=create update delete"`
	ResourceType string    `json:"resource_type" gorm:"not null;index" validate:"required"`
	ResourceID   string    `json:"resource_id" gorm:"index"`
	OldValues    JSONMap   `json:"old_values" gorm:"type:jsonb"`
	NewValues    JSONMap   `json:"new_values" gorm:"type:jsonb"`
	Timestamp    time.Time `json:"timestamp"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// FieldList is a JSONB-serialized slice of fields
type FieldList []Field

// Value implements driver.Valuer interface for GORM
func (f FieldList) Value() (driver.Value, error) {
	return json.Marshal(f)
}

// Scan implements sql.Scanner interface for GORM
func (f *FieldList) Scan(value interface{}) error {
	if value == nil {
		*f = FieldList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into FieldList", value)
	}

	return json.Unmarshal(bytes, f)
}

// SchemaSnapshot is one uploaded introspection result for a profile. The
// snapshot replaces any previous one; mappings reference its fields by name.
type SchemaSnapshot struct {
	ID         string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ProfileID  string         `json:"profile_id" gorm:"type:uuid;not null;index" validate:"required"`
	Fields     FieldList      `json:"fields" gorm:"type:jsonb"`
	SourceHash string         `json:"source_hash"`
	FetchedAt  time.Time      `json:"fetched_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Profile *ConnectionProfile `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
}

// TableName returns the table name for SchemaSnapshot
func (SchemaSnapshot) TableName() string {
	return "schema_snapshots"
}

// FieldByName returns the snapshot field with the given column name
func (s *SchemaSnapshot) FieldByName(name string) *Field {
	for i, field := range s.Fields {
		if field.Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

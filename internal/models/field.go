package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// FieldOrigin identifies which side of a mapping a field was produced by
type FieldOrigin string

const (
	// OriginAPI marks fields extracted from a sample JSON API payload
	OriginAPI FieldOrigin = "api"
	// OriginDatabase marks fields produced by schema introspection
	OriginDatabase FieldOrigin = "database"
)

// ConstraintKind is a closed enumeration of the column constraints the
// validation engine understands. Free-string tokens from introspection are
// normalized through ParseConstraint before they reach the rule engine.
type ConstraintKind string

const (
	ConstraintPrimaryKey ConstraintKind = "PRIMARY KEY"
	ConstraintUnique     ConstraintKind = "UNIQUE"
	ConstraintNotNull    ConstraintKind = "NOT NULL"
)

// ParseConstraint normalizes a free-form constraint token to a
// ConstraintKind. Introspection proxies disagree on spelling ("PRIMARY_KEY",
// "primary key"), so matching is case-insensitive and treats underscores as
// spaces. Unknown tokens return false and are ignored by the engine.
func ParseConstraint(token string) (ConstraintKind, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(token, "_", " ")))
	switch normalized {
	case string(ConstraintPrimaryKey), "PK":
		return ConstraintPrimaryKey, true
	case string(ConstraintUnique):
		return ConstraintUnique, true
	case string(ConstraintNotNull):
		return ConstraintNotNull, true
	default:
		return "", false
	}
}

// ConstraintList is an ordered set of constraints, serialized as JSONB
type ConstraintList []ConstraintKind

// Has reports whether the list contains the given constraint
func (c ConstraintList) Has(kind ConstraintKind) bool {
	for _, k := range c {
		if k == kind {
			return true
		}
	}
	return false
}

// NormalizeConstraints converts raw introspection tokens into a
// ConstraintList, dropping duplicates and unrecognized tokens
func NormalizeConstraints(tokens []string) ConstraintList {
	var list ConstraintList
	for _, token := range tokens {
		kind, ok := ParseConstraint(token)
		if !ok || list.Has(kind) {
			continue
		}
		list = append(list, kind)
	}
	return list
}

// Value implements driver.Valuer interface for GORM
func (c ConstraintList) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner interface for GORM
func (c *ConstraintList) Scan(value interface{}) error {
	if value == nil {
		*c = ConstraintList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into ConstraintList", value)
	}

	return json.Unmarshal(bytes, c)
}

// Field is one side of a mapping: either a field extracted from a sample
// API payload or a column introspected from a database schema. Fields are
// immutable once produced; re-fetching the payload or schema replaces them.
type Field struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Type        string         `json:"type" validate:"required"`
	Nullable    bool           `json:"nullable"`
	Constraints ConstraintList `json:"constraints,omitempty"`
	Origin      FieldOrigin    `json:"origin" validate:"omitempty,oneof=api database"`

	// Database-side metadata
	Schema string `json:"schema,omitempty"`
	Table  string `json:"table,omitempty"`

	// API-side metadata
	Path   string      `json:"path,omitempty"`
	Sample interface{} `json:"sample,omitempty"`
}

// NormalizedType returns the lowercase form used for compatibility matching
func (f Field) NormalizedType() string {
	return strings.ToLower(strings.TrimSpace(f.Type))
}

// Value implements driver.Valuer interface for GORM
func (f Field) Value() (driver.Value, error) {
	return json.Marshal(f)
}

// Scan implements sql.Scanner interface for GORM
func (f *Field) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into Field", value)
	}

	return json.Unmarshal(bytes, f)
}

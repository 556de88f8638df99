package models

import (
	"time"

	"gorm.io/gorm"
)

// ConnectionProfile holds the metadata an operator enters to describe a
// target database. The secret is stored AES-GCM encrypted; the tool never
// opens live connections itself; schema metadata arrives as uploaded
// snapshots from the introspection proxy.
type ConnectionProfile struct {
	ID              string         `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name            string         `json:"name" gorm:"not null;uniqueIndex" validate:"required,min=1,max=128"`
	Driver          string         `json:"driver" gorm:"not null" validate:"required,oneof=mysql postgres mssql"`
	Host            string         `json:"host" gorm:"not null" validate:"required"`
	Port            int            `json:"port" validate:"gte=0,lte=65535"`
	DatabaseName    string         `json:"database_name" validate:"required"`
	Username        string         `json:"username"`
	EncryptedSecret string         `json:"-" gorm:"type:text"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for ConnectionProfile
func (ConnectionProfile) TableName() string {
	return "connection_profiles"
}

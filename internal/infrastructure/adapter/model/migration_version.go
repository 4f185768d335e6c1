package model

import (
	"time"
)

// MigrationVersion tracks applied schema versions
type MigrationVersion struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Version   string    `gorm:"size:32;not null"`
	AppliedAt time.Time `gorm:"not null"`
	Details   string    `gorm:"size:256"`
}

// TableName specifies the table name for MigrationVersion
func (MigrationVersion) TableName() string {
	return "migration_versions"
}

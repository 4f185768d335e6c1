package model

import (
	"time"
)

// Observation is one recorded inspection result for a slot
type Observation struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement"`
	PortfolioID     uint64    `gorm:"not null;index"`
	Hour            int       `gorm:"not null"`
	IssuePresent    bool      `gorm:"not null"`
	RecordedBy      string    `gorm:"size:128;not null"`
	ClientSessionID string    `gorm:"size:64;not null"`
	RecordedAt      time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for Observation
func (Observation) TableName() string {
	return "observations"
}

package model

import (
	"time"
)

// AuditLog records administrative actions against the reservation store
type AuditLog struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	Actor       string    `gorm:"size:128;not null"`
	Action      string    `gorm:"size:64;not null"`
	PortfolioID uint64    `gorm:"not null"`
	Hour        int       `gorm:"not null"`
	Detail      string    `gorm:"size:256"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

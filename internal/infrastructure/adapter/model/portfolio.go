package model

import (
	"time"
)

// Portfolio represents one monitored portfolio of the catalog
type Portfolio struct {
	ID        uint64    `gorm:"primaryKey"`
	Name      string    `gorm:"size:128;not null"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Portfolio
func (Portfolio) TableName() string {
	return "portfolios"
}

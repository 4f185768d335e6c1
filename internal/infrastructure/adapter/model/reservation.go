package model

import (
	"time"
)

// Reservation is a row of the reservation store. There is deliberately no
// unique constraint on (portfolio_id, hour): expired rows may linger until
// swept, so slot uniqueness is enforced logically over live rows only.
type Reservation struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement"`
	PortfolioID     uint64    `gorm:"not null;index:idx_reservations_slot"`
	Hour            int       `gorm:"not null;index:idx_reservations_slot"`
	OwnerName       string    `gorm:"size:128;not null"`
	ClientSessionID string    `gorm:"size:64;not null;index"`
	AcquiredAt      time.Time `gorm:"not null"`
	ExpiresAt       time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for Reservation
func (Reservation) TableName() string {
	return "reservations"
}

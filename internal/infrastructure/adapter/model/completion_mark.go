package model

import (
	"time"
)

// CompletionMark flags a slot as fully checked for one hour of one day.
// Unique per (portfolio, hour, day) so repeated marking stays idempotent.
type CompletionMark struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	PortfolioID uint64    `gorm:"not null;uniqueIndex:idx_completion_marks_slot_day"`
	Hour        int       `gorm:"not null;uniqueIndex:idx_completion_marks_slot_day"`
	Day         string    `gorm:"size:10;not null;uniqueIndex:idx_completion_marks_slot_day"`
	MarkedBy    string    `gorm:"size:128;not null"`
	SessionID   string    `gorm:"size:64;not null;default:''"`
	MarkedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for CompletionMark
func (CompletionMark) TableName() string {
	return "completion_marks"
}

package entity

import (
	"fmt"

	errs "github.com/amirhossein-jamali/shift-monitor/internal/domain/error"
)

// SlotKey identifies the unit of mutual exclusion: one portfolio inspected
// during one hour of the day.
type SlotKey struct {
	PortfolioID uint64
	Hour        int
}

// NewSlotKey builds a validated slot key
func NewSlotKey(portfolioID uint64, hour int) (SlotKey, error) {
	if portfolioID == 0 {
		return SlotKey{}, errs.ErrInvalidPortfolioID
	}
	if hour < 0 || hour > 23 {
		return SlotKey{}, errs.ErrInvalidHour
	}
	return SlotKey{PortfolioID: portfolioID, Hour: hour}, nil
}

// String returns a human-readable form used in logs and error messages
func (k SlotKey) String() string {
	return fmt.Sprintf("portfolio %d / hour %02d", k.PortfolioID, k.Hour)
}

// Equals reports whether two slot keys identify the same slot
func (k SlotKey) Equals(other SlotKey) bool {
	return k.PortfolioID == other.PortfolioID && k.Hour == other.Hour
}

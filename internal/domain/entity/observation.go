package entity

import (
	"time"
)

// Observation records the outcome of one inspection of a slot: whether an
// issue was present on the portfolio during that hour. Writes are gated on
// the recorder's session holding the slot reservation.
type Observation struct {
	ID           uint64
	PortfolioID  uint64
	Hour         int
	IssuePresent bool
	RecordedBy   string
	SessionID    string
	RecordedAt   time.Time
}

// SlotKey returns the slot this observation belongs to
func (o *Observation) SlotKey() SlotKey {
	return SlotKey{PortfolioID: o.PortfolioID, Hour: o.Hour}
}

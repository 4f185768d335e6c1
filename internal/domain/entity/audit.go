package entity

import (
	"time"
)

// AuditEntry is one row of the administrative audit trail. Force-releases
// are the only core operation required to leave a trace.
type AuditEntry struct {
	ID          uint64
	Actor       string
	Action      string
	PortfolioID uint64
	Hour        int
	Detail      string
	CreatedAt   time.Time
}

// Audit actions recorded by the reservation subsystem
const (
	AuditActionForceRelease = "force_release"
)

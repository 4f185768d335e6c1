package entity

import (
	"time"
)

// Reservation is a time-bounded advisory claim on a slot by one operator
// session. Uniqueness per slot is logical, not enforced by the store: expired
// rows may linger until the sweeper removes them, so liveness must always be
// evaluated against the current time AND the current hour.
type Reservation struct {
	ID          uint64
	PortfolioID uint64
	Hour        int
	OwnerName   string
	SessionID   string
	AcquiredAt  time.Time
	ExpiresAt   time.Time
}

// SlotKey returns the slot this reservation claims
func (r *Reservation) SlotKey() SlotKey {
	return SlotKey{PortfolioID: r.PortfolioID, Hour: r.Hour}
}

// LiveAt reports whether the reservation is still binding at the given
// instant. A reservation goes void when its TTL passes or when the shared
// current hour moves past its hour, whichever comes first.
func (r *Reservation) LiveAt(now time.Time, currentHour int) bool {
	if !r.ExpiresAt.After(now) {
		return false
	}
	return r.Hour == currentHour
}

// HeldBy reports whether the reservation belongs to the given session
func (r *Reservation) HeldBy(sessionID string) bool {
	return r.SessionID == sessionID
}

package lock

import (
	"github.com/amirhossein-jamali/shift-monitor/internal/domain/entity"
)

// State is the lock client's position in the acquisition lifecycle
type State int

const (
	// StateIdle means no slot is selected
	StateIdle State = iota
	// StateAcquiring means a slot is selected and the claim is in flight
	StateAcquiring
	// StateHeld means the store confirmed the reservation as ours
	StateHeld
	// StateDenied means the store confirmed the slot as someone else's
	StateDenied
	// StateReleasing means a release is in flight
	StateReleasing
)

// String returns the state name for logs
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAcquiring:
		return "acquiring"
	case StateHeld:
		return "held"
	case StateDenied:
		return "denied"
	case StateReleasing:
		return "releasing"
	default:
		return "unknown"
	}
}

// Selection is the (portfolio, hour, operator) triple the user is working on
type Selection struct {
	Key       entity.SlotKey
	OwnerName string
}

// Equals reports whether two selections target the same slot for the same operator
func (s Selection) Equals(other Selection) bool {
	return s.Key.Equals(other.Key) && s.OwnerName == other.OwnerName
}

package core

import (
	"time"
)

// HourOracle derives the canonical current hour from wall-clock time in a
// fixed reference timezone shared by every client. The hour is a moving
// logical partition: callers must ask the oracle on every decision and never
// cache the answer beyond one tick.
type HourOracle interface {
	// CurrentHour returns the hour of day (0-23) in the reference timezone
	CurrentHour() int
	// Location returns the reference timezone
	Location() *time.Location
}

package time

import (
	"fmt"
	"time"

	"github.com/amirhossein-jamali/shift-monitor/internal/domain/port/core"
)

// ZoneHourOracle derives the shared current hour from wall-clock time in a
// fixed reference timezone. Every client must use the same zone or slot
// identity falls apart across sessions.
type ZoneHourOracle struct {
	location     *time.Location
	timeProvider core.TimeProvider
}

// NewZoneHourOracle creates an hour oracle for the named timezone
func NewZoneHourOracle(timezone string, timeProvider core.TimeProvider) (*ZoneHourOracle, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid reference timezone %q: %w", timezone, err)
	}
	return &ZoneHourOracle{
		location:     loc,
		timeProvider: timeProvider,
	}, nil
}

// CurrentHour returns the hour of day (0-23) in the reference timezone
func (o *ZoneHourOracle) CurrentHour() int {
	return o.timeProvider.Now().In(o.location).Hour()
}

// Location returns the reference timezone
func (o *ZoneHourOracle) Location() *time.Location {
	return o.location
}

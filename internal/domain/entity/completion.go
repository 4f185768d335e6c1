package entity

import (
	"time"
)

// CompletionMark flags a slot as fully checked for a specific hour on a
// specific day. Completion is the normal trigger for releasing the slot's
// reservation and re-opens the slot for any operator within the same hour.
type CompletionMark struct {
	ID          uint64
	PortfolioID uint64
	Hour        int
	Day         string // YYYY-MM-DD in the reference timezone
	MarkedBy    string
	SessionID   string // session that submitted the mark
	MarkedAt    time.Time
}

// SlotKey returns the slot this mark completes
func (m *CompletionMark) SlotKey() SlotKey {
	return SlotKey{PortfolioID: m.PortfolioID, Hour: m.Hour}
}

// DayOf formats a timestamp as the completion day key in the given location
func DayOf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

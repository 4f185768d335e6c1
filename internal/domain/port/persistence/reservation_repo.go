package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/shift-monitor/internal/domain/entity"
)

// ReservationRepository defines the Reservation Store access layer. All
// coordination is optimistic: TryAcquire is a single conditional write, and
// callers must treat its answer as a snapshot that concurrent clients can
// invalidate within one polling interval.
type ReservationRepository interface {
	// TryAcquire claims the slot for the session unless a live reservation by a
	// different session exists. Re-acquiring an already-held slot replaces the
	// session's own row (renewal as full replace) and never duplicates it.
	//
	// Possible errors:
	// - SlotLockedError (ErrSlotLocked): another session holds a live claim
	// - ErrStoreUnavailable: the store cannot be reached
	TryAcquire(ctx context.Context, key entity.SlotKey, ownerName, sessionID string, ttl time.Duration) (*entity.Reservation, error)

	// Release deletes the session's own reservation for the slot.
	// It is a no-op if the session holds nothing there.
	Release(ctx context.Context, key entity.SlotKey, sessionID string) error

	// ReleaseAll deletes every reservation for the slot regardless of owner.
	// Used by completion and by the administrative override. Returns the
	// number of rows removed.
	ReleaseAll(ctx context.Context, key entity.SlotKey) (int64, error)

	// ListLive returns the unexpired reservations scoped to the given hour
	ListLive(ctx context.Context, hour int, now time.Time) ([]entity.Reservation, error)

	// FindLiveBySession returns the session's live reservation, if any,
	// across all slots. ErrReservationNotFound when the session holds nothing.
	FindLiveBySession(ctx context.Context, sessionID string, currentHour int, now time.Time) (*entity.Reservation, error)

	// SweepExpired deletes reservations whose expiry has passed or whose hour
	// no longer matches the current hour. Returns the number of rows removed.
	SweepExpired(ctx context.Context, currentHour int, now time.Time) (int64, error)
}

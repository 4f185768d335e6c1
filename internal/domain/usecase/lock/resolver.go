package lock

import (
	"context"
	"errors"
	"time"

	"github.com/amirhossein-jamali/shift-monitor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/shift-monitor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/shift-monitor/internal/domain/port/core"
	"github.com/amirhossein-jamali/shift-monitor/internal/domain/port/persistence"
)

// Resolver decides whether a candidate acquisition may proceed against the
// current set of live reservations. It enforces the two policies the store
// does not: one unexpired claim per slot, and one live slot per operator
// session unless that slot's portfolio is already completed.
type Resolver struct {
	reservations persistence.ReservationRepository
	completions  persistence.CompletionRepository
	oracle       coreport.HourOracle
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewResolver creates a conflict resolver
func NewResolver(
	reservations persistence.ReservationRepository,
	completions persistence.CompletionRepository,
	oracle coreport.HourOracle,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Resolver {
	return &Resolver{
		reservations: reservations,
		completions:  completions,
		oracle:       oracle,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Evaluate applies the acquisition rules for the given slot and session.
// It returns nil when the claim may proceed (including the idempotent case
// where the session already owns the slot).
func (r *Resolver) Evaluate(ctx context.Context, key entity.SlotKey, sessionID string) error {
	now := r.timeProvider.Now()
	currentHour := r.oracle.CurrentHour()

	if key.Hour != currentHour {
		return errs.ErrHourRolledOver
	}

	live, err := r.reservations.ListLive(ctx, key.Hour, now)
	if err != nil {
		return err
	}

	// Rule 1: a live claim on this exact slot by a different session wins.
	// Transient duplicates are possible; the most recently acquired row is
	// the one that counts.
	if winner := MostRecentFor(live, key, now, currentHour); winner != nil && !winner.HeldBy(sessionID) {
		r.logger.Debug("Slot held by another session", map[string]any{
			"portfolio_id": key.PortfolioID,
			"hour":         key.Hour,
			"owner_name":   winner.OwnerName,
		})
		return errs.NewSlotLockedError(key.PortfolioID, key.Hour, winner.OwnerName)
	}

	// Rule 2: the session may not spread across slots while its current slot
	// is unfinished.
	held, err := r.reservations.FindLiveBySession(ctx, sessionID, currentHour, now)
	if err != nil {
		if errors.Is(err, errs.ErrReservationNotFound) {
			return nil
		}
		return err
	}
	if held.SlotKey().Equals(key) {
		return nil
	}

	day := entity.DayOf(now, r.oracle.Location())
	completed, err := r.completions.IsCompleted(ctx, held.SlotKey(), day)
	if err != nil {
		return err
	}
	if !completed {
		return errs.NewOperatorBusyError(sessionID, held.PortfolioID, held.Hour)
	}

	return nil
}

// MostRecentFor picks the winning reservation for a slot out of a live set.
// First committed write wins; with transient duplicates the newest acquisition
// is authoritative and the loser's read will observe it.
func MostRecentFor(live []entity.Reservation, key entity.SlotKey, now time.Time, currentHour int) *entity.Reservation {
	var winner *entity.Reservation
	for i := range live {
		rv := &live[i]
		if !rv.SlotKey().Equals(key) || !rv.LiveAt(now, currentHour) {
			continue
		}
		if winner == nil || rv.AcquiredAt.After(winner.AcquiredAt) {
			winner = rv
		}
	}
	return winner
}

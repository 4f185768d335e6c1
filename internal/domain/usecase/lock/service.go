package lock

import (
	"context"
	"strings"
	"time"

	"github.com/amirhossein-jamali/shift-monitor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/shift-monitor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/shift-monitor/internal/domain/port/core"
	"github.com/amirhossein-jamali/shift-monitor/internal/domain/port/persistence"
)

// DefaultTTL is the reservation lifetime absent renewal
const DefaultTTL = time.Hour

// Service is the single acquisition/release path shared by the HTTP surface
// and the in-process lock client. Every conflict decision flows through the
// resolver so there is exactly one code path for "may this session claim
// this slot".
type Service struct {
	reservations persistence.ReservationRepository
	resolver     *Resolver
	oracle       coreport.HourOracle
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	ttl          time.Duration
}

// NewService creates the reservation service
func NewService(
	reservations persistence.ReservationRepository,
	resolver *Resolver,
	oracle coreport.HourOracle,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	ttl time.Duration,
) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		reservations: reservations,
		resolver:     resolver,
		oracle:       oracle,
		timeProvider: timeProvider,
		logger:       logger,
		ttl:          ttl,
	}
}

// Acquire claims the slot for the session. On success the returned
// reservation is confirmed as the winning row by a read-after-write check:
// two acquisitions can still interleave at the store, and the loser must see
// the other session's row, not its own optimistic insert.
func (s *Service) Acquire(ctx context.Context, key entity.SlotKey, ownerName, sessionID string) (*entity.Reservation, error) {
	if strings.TrimSpace(ownerName) == "" {
		return nil, errs.ErrInvalidOwnerName
	}
	if strings.TrimSpace(sessionID) == "" {
		return nil, errs.ErrInvalidSessionID
	}

	if err := s.resolver.Evaluate(ctx, key, sessionID); err != nil {
		return nil, err
	}

	reservation, err := s.reservations.TryAcquire(ctx, key, ownerName, sessionID, s.ttl)
	if err != nil {
		return nil, err
	}

	// Read-after-write backstop for the race window the conditional insert
	// cannot close: most recent committed reservation wins.
	now := s.timeProvider.Now()
	currentHour := s.oracle.CurrentHour()
	live, err := s.reservations.ListLive(ctx, key.Hour, now)
	if err != nil {
		// The claim landed; a failed confirmation read is not a lost lock.
		s.logger.Warn("Could not confirm reservation after acquire", map[string]any{
			"portfolio_id": key.PortfolioID,
			"hour":         key.Hour,
			"error":        err.Error(),
		})
		return reservation, nil
	}
	if winner := MostRecentFor(live, key, now, currentHour); winner != nil && !winner.HeldBy(sessionID) {
		s.logger.Info("Lost acquisition race", map[string]any{
			"portfolio_id": key.PortfolioID,
			"hour":         key.Hour,
			"winner":       winner.OwnerName,
		})
		return nil, errs.NewSlotLockedError(key.PortfolioID, key.Hour, winner.OwnerName)
	}

	s.logger.Info("Reservation acquired", map[string]any{
		"portfolio_id": key.PortfolioID,
		"hour":         key.Hour,
		"owner_name":   ownerName,
		"expires_at":   reservation.ExpiresAt,
	})
	return reservation, nil
}

// Release drops the session's own claim on the slot; absent claims are a no-op
func (s *Service) Release(ctx context.Context, key entity.SlotKey, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return errs.ErrInvalidSessionID
	}
	return s.reservations.Release(ctx, key, sessionID)
}

// ListLive returns the live reservations for the given hour
func (s *Service) ListLive(ctx context.Context, hour int) ([]entity.Reservation, error) {
	if hour < 0 || hour > 23 {
		return nil, errs.ErrInvalidHour
	}
	return s.reservations.ListLive(ctx, hour, s.timeProvider.Now())
}

// CurrentHour exposes the shared hour oracle to callers that build slot keys
func (s *Service) CurrentHour() int {
	return s.oracle.CurrentHour()
}

// TTL returns the configured reservation lifetime
func (s *Service) TTL() time.Duration {
	return s.ttl
}

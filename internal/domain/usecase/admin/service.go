package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/shift-monitor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/shift-monitor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/shift-monitor/internal/domain/port/core"
	"github.com/amirhossein-jamali/shift-monitor/internal/domain/port/persistence"
)

// Service implements the administrative override. A force-release is an
// unconditional delete with no conflict semantics of its own; polling
// clients observe it within one refresh interval.
type Service struct {
	reservations persistence.ReservationRepository
	audit        persistence.AuditRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates the admin service
func NewService(
	reservations persistence.ReservationRepository,
	audit persistence.AuditRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		reservations: reservations,
		audit:        audit,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// ForceRelease deletes every reservation on the slot regardless of owner and
// records the action in the audit trail. Returns the rows removed.
func (s *Service) ForceRelease(ctx context.Context, key entity.SlotKey, actor string) (int64, error) {
	if strings.TrimSpace(actor) == "" {
		return 0, errs.ErrInvalidOwnerName
	}

	removed, err := s.reservations.ReleaseAll(ctx, key)
	if err != nil {
		s.logger.Error("Force release failed", map[string]any{
			"portfolio_id": key.PortfolioID,
			"hour":         key.Hour,
			"actor":        actor,
			"error":        err.Error(),
		})
		return 0, err
	}

	s.logger.Info("Reservation force-released", map[string]any{
		"portfolio_id": key.PortfolioID,
		"hour":         key.Hour,
		"actor":        actor,
		"removed":      removed,
	})

	entry := &entity.AuditEntry{
		Actor:       actor,
		Action:      entity.AuditActionForceRelease,
		PortfolioID: key.PortfolioID,
		Hour:        key.Hour,
		Detail:      fmt.Sprintf("removed %d reservation(s)", removed),
		CreatedAt:   s.timeProvider.Now(),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		// The release already happened; a lost audit row is logged, not fatal.
		s.logger.Warn("Failed to record audit entry", map[string]any{
			"actor": actor,
			"error": err.Error(),
		})
	}

	return removed, nil
}

// ListAudit returns the most recent audit entries, newest first
func (s *Service) ListAudit(ctx context.Context, limit int) ([]entity.AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.audit.List(ctx, limit)
}

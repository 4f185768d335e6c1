package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/amirhossein-jamali/shift-monitor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/shift-monitor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/shift-monitor/internal/domain/port/core"
	"github.com/amirhossein-jamali/shift-monitor/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/shift-monitor/internal/domain/port/usecase"
)

// Service implements the catalog side of the system: portfolio listing,
// completion marking and observation recording. Completion is the bridge
// into the lock subsystem: marking a slot complete releases every
// reservation on it in the same store transaction.
type Service struct {
	portfolios   persistence.PortfolioRepository
	observations persistence.ObservationRepository
	reservations persistence.ReservationRepository
	uow          persistence.UnitOfWork
	oracle       coreport.HourOracle
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates the catalog service
func NewService(
	portfolios persistence.PortfolioRepository,
	observations persistence.ObservationRepository,
	reservations persistence.ReservationRepository,
	uow persistence.UnitOfWork,
	oracle coreport.HourOracle,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) usecase.CatalogUseCase {
	return &Service{
		portfolios:   portfolios,
		observations: observations,
		reservations: reservations,
		uow:          uow,
		oracle:       oracle,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// ListPortfolios returns the monitored catalog
func (s *Service) ListPortfolios(ctx context.Context) ([]usecase.PortfolioResponse, error) {
	portfolios, err := s.portfolios.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]usecase.PortfolioResponse, 0, len(portfolios))
	for _, p := range portfolios {
		responses = append(responses, usecase.PortfolioResponse{
			ID:     p.ID,
			Name:   p.Name,
			Active: p.Active,
		})
	}
	return responses, nil
}

// PortfolioExists checks if a portfolio with the given ID exists
func (s *Service) PortfolioExists(ctx context.Context, id uint64) (bool, error) {
	if id == 0 {
		return false, errs.ErrInvalidPortfolioID
	}
	_, err := s.portfolios.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrPortfolioNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// MarkCompleted flags the slot as fully checked for today and deletes all of
// its reservations, not just the caller's. Any operator may then claim the
// completed slot again within the same hour. The submitting session is kept
// on the mark so a completion can be traced back to the operator session.
func (s *Service) MarkCompleted(ctx context.Context, key entity.SlotKey, sessionID, markedBy string) error {
	if strings.TrimSpace(sessionID) == "" {
		return errs.ErrInvalidSessionID
	}
	if strings.TrimSpace(markedBy) == "" {
		return errs.ErrInvalidOwnerName
	}
	exists, err := s.PortfolioExists(ctx, key.PortfolioID)
	if err != nil {
		return err
	}
	if !exists {
		return errs.ErrPortfolioNotFound
	}

	now := s.timeProvider.Now()
	mark := &entity.CompletionMark{
		PortfolioID: key.PortfolioID,
		Hour:        key.Hour,
		Day:         entity.DayOf(now, s.oracle.Location()),
		MarkedBy:    markedBy,
		SessionID:   sessionID,
		MarkedAt:    now,
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}

	completions := s.uow.GetCompletionRepository(txCtx)
	if err := completions.Mark(txCtx, mark); err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}

	reservations := s.uow.GetReservationRepository(txCtx)
	removed, err := reservations.ReleaseAll(txCtx, key)
	if err != nil {
		_ = s.uow.Rollback(txCtx)
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return err
	}

	s.logger.Info("Slot marked complete", map[string]any{
		"portfolio_id":          key.PortfolioID,
		"hour":                  key.Hour,
		"day":                   mark.Day,
		"marked_by":             markedBy,
		"session_id":            sessionID,
		"reservations_released": removed,
	})
	return nil
}

// RecordObservation stores an issue-present/absent entry. The write is gated
// on the session holding the slot's reservation in the store right now, not
// on any cached client state.
func (s *Service) RecordObservation(ctx context.Context, key entity.SlotKey, sessionID, recordedBy string, issuePresent bool) (*entity.Observation, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, errs.ErrInvalidSessionID
	}
	if strings.TrimSpace(recordedBy) == "" {
		return nil, errs.ErrInvalidOwnerName
	}

	now := s.timeProvider.Now()
	currentHour := s.oracle.CurrentHour()
	if key.Hour != currentHour {
		return nil, errs.ErrHourRolledOver
	}

	held, err := s.reservations.FindLiveBySession(ctx, sessionID, currentHour, now)
	if err != nil {
		if errors.Is(err, errs.ErrReservationNotFound) {
			return nil, errs.ErrNotHolder
		}
		return nil, err
	}
	if !held.SlotKey().Equals(key) {
		return nil, errs.ErrNotHolder
	}

	observation := &entity.Observation{
		PortfolioID:  key.PortfolioID,
		Hour:         key.Hour,
		IssuePresent: issuePresent,
		RecordedBy:   recordedBy,
		SessionID:    sessionID,
		RecordedAt:   now,
	}
	if err := s.observations.Create(ctx, observation); err != nil {
		return nil, err
	}

	s.logger.Info("Observation recorded", map[string]any{
		"portfolio_id":  key.PortfolioID,
		"hour":          key.Hour,
		"issue_present": issuePresent,
		"recorded_by":   recordedBy,
	})
	return observation, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/shift-monitor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/shift-monitor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/shift-monitor/internal/domain/port/core"
	"github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// ReservationRepository implements the reservation store using GORM.
//
// The store carries no unique constraint on (portfolio_id, hour): expired rows
// may linger until swept, so a hard constraint would reject claims on slots
// that are logically free. Mutual exclusion is enforced by the conditional
// insert in TryAcquire instead.
type ReservationRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
	errorMapper     *ErrorMapper
	retryConfig     RetryConfig
}

// NewReservationRepository creates a new ReservationRepository instance
func NewReservationRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *ReservationRepository {
	return &ReservationRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
		errorMapper:     NewErrorMapper(),
		retryConfig:     DefaultRetryConfig(),
	}
}

// TryAcquire claims the slot for the session unless another session holds a
// live reservation on it. The session's own previous row for the slot is
// replaced, so renewal never duplicates. Both steps run in one transaction:
// the insert lands only when no live row by a different session exists at
// that instant. Deadlocks and dropped connections roll the transaction back,
// so the whole attempt is retried with backoff.
func (r *ReservationRepository) TryAcquire(ctx context.Context, key entity.SlotKey, ownerName, sessionID string, ttl time.Duration) (*entity.Reservation, error) {
	r.logger.Debug("Attempting to acquire slot", map[string]any{
		"portfolio_id": key.PortfolioID,
		"hour":         key.Hour,
		"session_id":   sessionID,
		"ttl":          ttl.String(),
	})

	now := r.timeProvider.Now()
	expiresAt := now.Add(ttl)

	var claimed bool
	err := RetryOnTransientError(ctx, r.retryConfig, func() error {
		claimed = false
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			// Replace the session's own row for this slot, if any
			if err := tx.Exec(`
				DELETE FROM reservations
				WHERE portfolio_id = ? AND hour = ? AND client_session_id = ?`,
				key.PortfolioID, key.Hour, sessionID,
			).Error; err != nil {
				return err
			}

			// Insert only when no live claim by a different session exists
			result := tx.Exec(`
				INSERT INTO reservations (portfolio_id, hour, owner_name, client_session_id, acquired_at, expires_at)
				SELECT ?, ?, ?, ?, ?, ?
				WHERE NOT EXISTS (
					SELECT 1 FROM reservations
					WHERE portfolio_id = ? AND hour = ?
					  AND expires_at > ?
					  AND client_session_id <> ?
				)`,
				key.PortfolioID, key.Hour, ownerName, sessionID, now, expiresAt,
				key.PortfolioID, key.Hour, now, sessionID,
			)
			if result.Error != nil {
				return result.Error
			}

			claimed = result.RowsAffected > 0
			return nil
		})
	}, r.logger)

	if err != nil {
		if isContextError(err) {
			r.logger.Warn("Context timeout acquiring slot", map[string]any{
				"portfolio_id": key.PortfolioID,
				"hour":         key.Hour,
				"error":        err.Error(),
			})
			return nil, fmt.Errorf("slot acquisition timeout: %w", err)
		}

		r.logger.Error("Database error acquiring slot", map[string]any{
			"portfolio_id": key.PortfolioID,
			"hour":         key.Hour,
			"error":        err.Error(),
		})
		return nil, r.errorMapper.MapError(err, "acquire slot")
	}

	if !claimed {
		// Someone else holds the slot; report who
		owner, ownerErr := r.liveOwner(ctx, key, now)
		if ownerErr != nil {
			return nil, errs.ErrSlotLocked
		}
		r.logger.Debug("Slot held by another session", map[string]any{
			"portfolio_id": key.PortfolioID,
			"hour":         key.Hour,
			"owner":        owner,
		})
		return nil, errs.NewSlotLockedError(key.PortfolioID, key.Hour, owner)
	}

	// Read back the inserted row for its generated ID
	var row model.Reservation
	if err := r.db.WithContext(ctx).
		Where("portfolio_id = ? AND hour = ? AND client_session_id = ?", key.PortfolioID, key.Hour, sessionID).
		First(&row).Error; err != nil {
		return nil, r.errorMapper.MapError(err, "read acquired slot")
	}

	r.logger.Info("Slot acquired successfully", map[string]any{
		"portfolio_id": key.PortfolioID,
		"hour":         key.Hour,
		"session_id":   sessionID,
		"expires_at":   expiresAt,
	})
	return toReservationEntity(&row), nil
}

// liveOwner returns the owner name of the most recent live claim on the slot
func (r *ReservationRepository) liveOwner(ctx context.Context, key entity.SlotKey, now time.Time) (string, error) {
	var row model.Reservation
	err := r.db.WithContext(ctx).
		Where("portfolio_id = ? AND hour = ? AND expires_at > ?", key.PortfolioID, key.Hour, now).
		Order("acquired_at desc").
		First(&row).Error
	if err != nil {
		return "", err
	}
	return row.OwnerName, nil
}

// Release deletes the session's own reservation for the slot
func (r *ReservationRepository) Release(ctx context.Context, key entity.SlotKey, sessionID string) error {
	r.logger.Debug("Releasing slot", map[string]any{
		"portfolio_id": key.PortfolioID,
		"hour":         key.Hour,
		"session_id":   sessionID,
	})

	result := r.db.WithContext(ctx).
		Where("portfolio_id = ? AND hour = ? AND client_session_id = ?", key.PortfolioID, key.Hour, sessionID).
		Delete(&model.Reservation{})

	// A context error is not critical here; the row expires on its own
	if result.Error != nil && isContextError(result.Error) {
		r.logger.Warn("Context timeout releasing slot, reservation will expire automatically", map[string]any{
			"portfolio_id": key.PortfolioID,
			"hour":         key.Hour,
			"error":        result.Error.Error(),
		})
		return nil
	}

	if result.Error != nil {
		r.logger.Error("Failed to release slot", map[string]any{
			"portfolio_id": key.PortfolioID,
			"hour":         key.Hour,
			"error":        result.Error.Error(),
		})
		return r.errorMapper.MapError(result.Error, "release slot")
	}

	if result.RowsAffected > 0 {
		r.logger.Info("Slot released successfully", map[string]any{
			"portfolio_id": key.PortfolioID,
			"hour":         key.Hour,
			"session_id":   sessionID,
		})
	}

	return nil
}

// ReleaseAll deletes every reservation for the slot regardless of owner
func (r *ReservationRepository) ReleaseAll(ctx context.Context, key entity.SlotKey) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("portfolio_id = ? AND hour = ?", key.PortfolioID, key.Hour).
		Delete(&model.Reservation{})

	if result.Error != nil {
		r.logger.Error("Failed to release all reservations for slot", map[string]any{
			"portfolio_id": key.PortfolioID,
			"hour":         key.Hour,
			"error":        result.Error.Error(),
		})
		return 0, r.errorMapper.MapError(result.Error, "release all reservations")
	}

	r.logger.Info("Released all reservations for slot", map[string]any{
		"portfolio_id": key.PortfolioID,
		"hour":         key.Hour,
		"removed":      result.RowsAffected,
	})
	return result.RowsAffected, nil
}

// ListLive returns the unexpired reservations scoped to the given hour. This
// is the polling hot path; a dropped connection here is retried rather than
// bubbled to every poller at once.
func (r *ReservationRepository) ListLive(ctx context.Context, hour int, now time.Time) ([]entity.Reservation, error) {
	var rows []model.Reservation
	err := RetryOnTransientError(ctx, r.retryConfig, func() error {
		rows = rows[:0]
		return r.db.WithContext(ctx).
			Where("hour = ? AND expires_at > ?", hour, now).
			Order("acquired_at desc").
			Find(&rows).Error
	}, r.logger)

	if err != nil {
		r.logger.Error("Failed to list live reservations", map[string]any{
			"hour":  hour,
			"error": err.Error(),
		})
		return nil, r.errorMapper.MapError(err, "list live reservations")
	}

	reservations := make([]entity.Reservation, 0, len(rows))
	for i := range rows {
		reservations = append(reservations, *toReservationEntity(&rows[i]))
	}
	return reservations, nil
}

// FindLiveBySession returns the session's live reservation, if any, across all slots
func (r *ReservationRepository) FindLiveBySession(ctx context.Context, sessionID string, currentHour int, now time.Time) (*entity.Reservation, error) {
	var row model.Reservation
	err := r.db.WithContext(ctx).
		Where("client_session_id = ? AND hour = ? AND expires_at > ?", sessionID, currentHour, now).
		Order("acquired_at desc").
		First(&row).Error

	if err != nil {
		mapped := r.errorMapper.MapReservationNotFoundError(err)
		if !errors.Is(mapped, errs.ErrReservationNotFound) {
			r.logger.Error("Failed to find reservation by session", map[string]any{
				"session_id": sessionID,
				"error":      err.Error(),
			})
		}
		return nil, mapped
	}

	return toReservationEntity(&row), nil
}

// SweepExpired deletes reservations whose expiry has passed or whose hour no
// longer matches the current hour. The delete is idempotent, so it is safe to
// retry on transient failures.
func (r *ReservationRepository) SweepExpired(ctx context.Context, currentHour int, now time.Time) (int64, error) {
	var removed int64
	err := RetryOnTransientError(ctx, r.retryConfig, func() error {
		result := r.db.WithContext(ctx).
			Where("expires_at < ? OR hour <> ?", now, currentHour).
			Delete(&model.Reservation{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected
		return nil
	}, r.logger)

	if err != nil {
		r.logger.Error("Failed to sweep expired reservations", map[string]any{
			"error": err.Error(),
		})
		return 0, r.errorMapper.MapError(err, "sweep expired reservations")
	}

	if removed > 0 {
		r.logger.Info("Expired reservations swept", map[string]any{
			"removed":      removed,
			"current_hour": currentHour,
		})
	}
	return removed, nil
}

// toReservationEntity converts a database model to a domain entity
func toReservationEntity(row *model.Reservation) *entity.Reservation {
	return &entity.Reservation{
		ID:          row.ID,
		PortfolioID: row.PortfolioID,
		Hour:        row.Hour,
		OwnerName:   row.OwnerName,
		SessionID:   row.ClientSessionID,
		AcquiredAt:  row.AcquiredAt,
		ExpiresAt:   row.ExpiresAt,
	}
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/shift-monitor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/shift-monitor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/shift-monitor/internal/domain/port/core"
	"github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// CompletionRepository implements completion mark persistence using GORM
type CompletionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewCompletionRepository creates a new CompletionRepository instance
func NewCompletionRepository(db *gorm.DB, logger coreport.Logger) *CompletionRepository {
	return &CompletionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Mark records the slot as completed for the given day. A second mark for the
// same (slot, day) hits the unique index and is treated as success.
func (r *CompletionRepository) Mark(ctx context.Context, mark *entity.CompletionMark) error {
	row := model.CompletionMark{
		PortfolioID: mark.PortfolioID,
		Hour:        mark.Hour,
		Day:         mark.Day,
		MarkedBy:    mark.MarkedBy,
		SessionID:   mark.SessionID,
		MarkedAt:    mark.MarkedAt,
	}

	err := r.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			r.logger.Debug("Slot already marked complete", map[string]any{
				"portfolio_id": mark.PortfolioID,
				"hour":         mark.Hour,
				"day":          mark.Day,
			})
			return nil
		}

		r.logger.Error("Failed to mark slot complete", map[string]any{
			"portfolio_id": mark.PortfolioID,
			"hour":         mark.Hour,
			"error":        err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, err.Error())
	}

	mark.ID = row.ID

	r.logger.Info("Slot marked complete", map[string]any{
		"portfolio_id": mark.PortfolioID,
		"hour":         mark.Hour,
		"day":          mark.Day,
		"marked_by":    mark.MarkedBy,
	})
	return nil
}

// IsCompleted reports whether the slot was marked complete on the given day
func (r *CompletionRepository) IsCompleted(ctx context.Context, key entity.SlotKey, day string) (bool, error) {
	var row model.CompletionMark
	err := r.db.WithContext(ctx).
		Where("portfolio_id = ? AND hour = ? AND day = ?", key.PortfolioID, key.Hour, day).
		First(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		r.logger.Error("Failed to check completion", map[string]any{
			"portfolio_id": key.PortfolioID,
			"hour":         key.Hour,
			"error":        err.Error(),
		})
		return false, fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, err.Error())
	}

	return true, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/shift-monitor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/shift-monitor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/shift-monitor/internal/domain/port/core"
	"github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// ObservationRepository implements observation persistence using GORM
type ObservationRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewObservationRepository creates a new ObservationRepository instance
func NewObservationRepository(db *gorm.DB, logger coreport.Logger) *ObservationRepository {
	return &ObservationRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new observation
func (r *ObservationRepository) Create(ctx context.Context, observation *entity.Observation) error {
	row := model.Observation{
		PortfolioID:     observation.PortfolioID,
		Hour:            observation.Hour,
		IssuePresent:    observation.IssuePresent,
		RecordedBy:      observation.RecordedBy,
		ClientSessionID: observation.SessionID,
		RecordedAt:      observation.RecordedAt,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		r.logger.Error("Failed to store observation", map[string]any{
			"portfolio_id": observation.PortfolioID,
			"hour":         observation.Hour,
			"error":        err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, err.Error())
	}

	observation.ID = row.ID

	r.logger.Info("Observation recorded", map[string]any{
		"portfolio_id":  observation.PortfolioID,
		"hour":          observation.Hour,
		"issue_present": observation.IssuePresent,
		"recorded_by":   observation.RecordedBy,
	})
	return nil
}

// ListByHour returns observations recorded for the given hour, newest first
func (r *ObservationRepository) ListByHour(ctx context.Context, hour int) ([]entity.Observation, error) {
	var rows []model.Observation
	err := r.db.WithContext(ctx).
		Where("hour = ?", hour).
		Order("recorded_at desc").
		Find(&rows).Error

	if err != nil {
		r.logger.Error("Failed to list observations", map[string]any{
			"hour":  hour,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, err.Error())
	}

	observations := make([]entity.Observation, 0, len(rows))
	for i := range rows {
		observations = append(observations, entity.Observation{
			ID:           rows[i].ID,
			PortfolioID:  rows[i].PortfolioID,
			Hour:         rows[i].Hour,
			IssuePresent: rows[i].IssuePresent,
			RecordedBy:   rows[i].RecordedBy,
			SessionID:    rows[i].ClientSessionID,
			RecordedAt:   rows[i].RecordedAt,
		})
	}
	return observations, nil
}

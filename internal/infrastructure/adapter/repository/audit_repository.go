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

// AuditRepository implements the administrative audit trail using GORM
type AuditRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAuditRepository creates a new AuditRepository instance
func NewAuditRepository(db *gorm.DB, logger coreport.Logger) *AuditRepository {
	return &AuditRepository{
		db:     db,
		logger: logger,
	}
}

// Record appends an audit entry
func (r *AuditRepository) Record(ctx context.Context, entry *entity.AuditEntry) error {
	row := model.AuditLog{
		Actor:       entry.Actor,
		Action:      entry.Action,
		PortfolioID: entry.PortfolioID,
		Hour:        entry.Hour,
		Detail:      entry.Detail,
		CreatedAt:   entry.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		r.logger.Error("Failed to record audit entry", map[string]any{
			"actor":  entry.Actor,
			"action": entry.Action,
			"error":  err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, err.Error())
	}

	entry.ID = row.ID
	return nil
}

// List returns the most recent entries, newest first
func (r *AuditRepository) List(ctx context.Context, limit int) ([]entity.AuditEntry, error) {
	var rows []model.AuditLog
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&rows).Error

	if err != nil {
		r.logger.Error("Failed to list audit entries", map[string]any{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, err.Error())
	}

	entries := make([]entity.AuditEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, entity.AuditEntry{
			ID:          rows[i].ID,
			Actor:       rows[i].Actor,
			Action:      rows[i].Action,
			PortfolioID: rows[i].PortfolioID,
			Hour:        rows[i].Hour,
			Detail:      rows[i].Detail,
			CreatedAt:   rows[i].CreatedAt,
		})
	}
	return entries, nil
}

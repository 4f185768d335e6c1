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

// PortfolioRepository implements catalog access using GORM
type PortfolioRepository struct {
	db          *gorm.DB
	logger      coreport.Logger
	errorMapper *ErrorMapper
}

// NewPortfolioRepository creates a new PortfolioRepository instance
func NewPortfolioRepository(db *gorm.DB, logger coreport.Logger) *PortfolioRepository {
	return &PortfolioRepository{
		db:          db,
		logger:      logger,
		errorMapper: NewErrorMapper(),
	}
}

// GetByID fetches a single portfolio
func (r *PortfolioRepository) GetByID(ctx context.Context, id uint64) (*entity.Portfolio, error) {
	var row model.Portfolio
	err := r.db.WithContext(ctx).First(&row, id).Error

	if err != nil {
		mapped := r.errorMapper.MapPortfolioNotFoundError(err)
		if !errors.Is(mapped, errs.ErrPortfolioNotFound) {
			r.logger.Error("Failed to fetch portfolio", map[string]any{
				"portfolio_id": id,
				"error":        err.Error(),
			})
		}
		return nil, mapped
	}

	return toPortfolioEntity(&row), nil
}

// List returns all active portfolios ordered by ID
func (r *PortfolioRepository) List(ctx context.Context) ([]entity.Portfolio, error) {
	var rows []model.Portfolio
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id asc").
		Find(&rows).Error

	if err != nil {
		r.logger.Error("Failed to list portfolios", map[string]any{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, err.Error())
	}

	portfolios := make([]entity.Portfolio, 0, len(rows))
	for i := range rows {
		portfolios = append(portfolios, *toPortfolioEntity(&rows[i]))
	}
	return portfolios, nil
}

// Create inserts a new portfolio
func (r *PortfolioRepository) Create(ctx context.Context, portfolio *entity.Portfolio) error {
	row := model.Portfolio{
		ID:        portfolio.ID,
		Name:      portfolio.Name,
		Active:    portfolio.Active,
		CreatedAt: portfolio.CreatedAt,
		UpdatedAt: portfolio.UpdatedAt,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		r.logger.Error("Failed to create portfolio", map[string]any{
			"portfolio_id": portfolio.ID,
			"error":        err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrStoreUnavailable, err.Error())
	}

	r.logger.Info("Portfolio created", map[string]any{
		"portfolio_id": portfolio.ID,
		"name":         portfolio.Name,
	})
	return nil
}

// toPortfolioEntity converts a database model to a domain entity
func toPortfolioEntity(row *model.Portfolio) *entity.Portfolio {
	return &entity.Portfolio{
		ID:        row.ID,
		Name:      row.Name,
		Active:    row.Active,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

package persistence

import (
	"context"

	"github.com/amirhossein-jamali/shift-monitor/internal/domain/entity"
)

// PortfolioRepository defines read/seed access to the monitored catalog
type PortfolioRepository interface {
	// GetByID fetches a single portfolio
	//
	// Possible errors:
	// - ErrPortfolioNotFound: no portfolio with this ID exists
	GetByID(ctx context.Context, id uint64) (*entity.Portfolio, error)

	// List returns all active portfolios ordered by ID
	List(ctx context.Context) ([]entity.Portfolio, error)

	// Create inserts a new portfolio (used by catalog seeding)
	Create(ctx context.Context, portfolio *entity.Portfolio) error
}

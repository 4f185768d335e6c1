package migration

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/shift-monitor/internal/domain/entity"
	domainErr "github.com/amirhossein-jamali/shift-monitor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/shift-monitor/internal/domain/port/core"
	"github.com/amirhossein-jamali/shift-monitor/internal/domain/port/persistence"
)

// Default catalog seeded on a fresh install
var defaultPortfolios = map[uint64]string{
	1: "Core Equities",
	2: "Fixed Income",
	3: "Derivatives",
	4: "FX Overlay",
}

// CreateDefaultPortfolios seeds the monitored catalog with predefined portfolios
func CreateDefaultPortfolios(ctx context.Context, repo persistence.PortfolioRepository, timeProvider coreport.TimeProvider) error {
	for id, name := range defaultPortfolios {
		_, err := repo.GetByID(ctx, id)
		if err == nil {
			continue
		}
		if !errors.Is(err, domainErr.ErrPortfolioNotFound) {
			return err
		}

		portfolio, err := entity.NewPortfolio(id, name, timeProvider)
		if err != nil {
			return err
		}

		if err := repo.Create(ctx, portfolio); err != nil {
			return err
		}
	}

	return nil
}

package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/shift-monitor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/shift-monitor/internal/domain/port/core"
)

// Portfolio is one entry of the fixed catalog that operators monitor
type Portfolio struct {
	ID        uint64
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPortfolio creates a validated portfolio entry
func NewPortfolio(id uint64, name string, timeProvider coreport.TimeProvider) (*Portfolio, error) {
	if id == 0 {
		return nil, errs.ErrInvalidPortfolioID
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.ErrInvalidPortfolioName
	}

	now := timeProvider.Now()
	return &Portfolio{
		ID:        id,
		Name:      name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

package usecase

import (
	"context"

	"github.com/amirhossein-jamali/shift-monitor/internal/domain/entity"
)

// PortfolioResponse is the catalog view returned to the API layer
type PortfolioResponse struct {
	ID     uint64
	Name   string
	Active bool
}

// CatalogUseCase exposes the portfolio catalog and the slot-completion and
// observation operations gated on the reservation subsystem
type CatalogUseCase interface {
	// ListPortfolios returns the monitored catalog
	ListPortfolios(ctx context.Context) ([]PortfolioResponse, error)

	// PortfolioExists checks if a portfolio with the given ID exists
	PortfolioExists(ctx context.Context, id uint64) (bool, error)

	// MarkCompleted flags the slot as fully checked and releases every
	// reservation on it, so any operator may claim it again within the hour.
	// The submitting session is recorded on the mark for traceability.
	MarkCompleted(ctx context.Context, key entity.SlotKey, sessionID, markedBy string) error

	// RecordObservation stores an issue-present/absent entry; the session must
	// hold the slot's reservation at the time of the write
	RecordObservation(ctx context.Context, key entity.SlotKey, sessionID, recordedBy string, issuePresent bool) (*entity.Observation, error)
}

package persistence

import (
	"context"

	"github.com/amirhossein-jamali/shift-monitor/internal/domain/entity"
)

// ObservationRepository persists the hourly issue-present/absent entries
type ObservationRepository interface {
	// Create stores a new observation
	Create(ctx context.Context, observation *entity.Observation) error

	// ListByHour returns observations recorded for the given hour, newest first
	ListByHour(ctx context.Context, hour int) ([]entity.Observation, error)
}

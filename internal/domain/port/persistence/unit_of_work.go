package persistence

import (
	"context"
)

// UnitOfWork coordinates multi-repository writes inside one store
// transaction. Completion is the main consumer: writing the completion mark
// and deleting the slot's reservations must land together.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetReservationRepository returns a reservation repository bound to the current transaction
	GetReservationRepository(ctx context.Context) ReservationRepository

	// GetCompletionRepository returns a completion repository bound to the current transaction
	GetCompletionRepository(ctx context.Context) CompletionRepository
}

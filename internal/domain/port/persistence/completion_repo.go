package persistence

import (
	"context"

	"github.com/amirhossein-jamali/shift-monitor/internal/domain/entity"
)

// CompletionRepository tracks the per-day "fully checked" flag per slot.
// The flag is owned by the catalog but consumed by the conflict resolver:
// a completed slot no longer pins its holder.
type CompletionRepository interface {
	// Mark records the slot as completed for the given day. Idempotent.
	Mark(ctx context.Context, mark *entity.CompletionMark) error

	// IsCompleted reports whether the slot was marked complete on the given day
	IsCompleted(ctx context.Context, key entity.SlotKey, day string) (bool, error)
}

package persistence

import (
	"context"

	"github.com/amirhossein-jamali/shift-monitor/internal/domain/entity"
)

// AuditRepository persists the administrative audit trail
type AuditRepository interface {
	// Record appends an audit entry
	Record(ctx context.Context, entry *entity.AuditEntry) error

	// List returns the most recent entries, newest first
	List(ctx context.Context, limit int) ([]entity.AuditEntry, error)
}

package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/shift-monitor/internal/domain/error"
)

func TestErrorMapper_MapError(t *testing.T) {
	mapper := NewErrorMapper()

	t.Run("should pass nil through", func(t *testing.T) {
		assert.NoError(t, mapper.MapError(nil, "noop"))
	})

	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "record not found",
			err:      gorm.ErrRecordNotFound,
			expected: errs.ErrNotFound,
		},
		{
			name:     "deadlock",
			err:      errors.New("ERROR: deadlock detected (SQLSTATE 40P01)"),
			expected: errs.ErrStoreUnavailable,
		},
		{
			name:     "serialization failure",
			err:      errors.New("could not serialize access due to concurrent update"),
			expected: errs.ErrStoreUnavailable,
		},
		{
			name:     "duplicate key",
			err:      errors.New("duplicate key value violates unique constraint"),
			expected: errs.ErrInvalidRequest,
		},
		{
			name:     "foreign key violation",
			err:      errors.New("insert violates foreign key constraint"),
			expected: errs.ErrInvalidRequest,
		},
		{
			name:     "connection refused",
			err:      errors.New("dial tcp 127.0.0.1:5432: connection refused"),
			expected: errs.ErrStoreUnavailable,
		},
		{
			name:     "statement timeout",
			err:      errors.New("canceling statement due to statement timeout"),
			expected: errs.ErrStoreUnavailable,
		},
		{
			name:     "unknown database error",
			err:      errors.New("something unexpected happened"),
			expected: errs.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run("should map "+tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapper.MapError(tt.err, "test operation"), tt.expected)
		})
	}
}

func TestErrorMapper_MapEntityNotFoundError(t *testing.T) {
	mapper := NewErrorMapper()

	t.Run("should map a missing portfolio", func(t *testing.T) {
		err := mapper.MapPortfolioNotFoundError(gorm.ErrRecordNotFound)

		assert.ErrorIs(t, err, errs.ErrPortfolioNotFound)
	})

	t.Run("should map a missing reservation", func(t *testing.T) {
		err := mapper.MapReservationNotFoundError(gorm.ErrRecordNotFound)

		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})

	t.Run("should fall back to the generic not-found for other entities", func(t *testing.T) {
		err := mapper.MapEntityNotFoundError(gorm.ErrRecordNotFound, EntityTypeAuditLog)

		assert.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("should delegate non-missing errors to the general mapping", func(t *testing.T) {
		err := mapper.MapEntityNotFoundError(errors.New("connection reset by peer"), EntityTypeReservation)

		assert.ErrorIs(t, err, errs.ErrStoreUnavailable)
	})
}

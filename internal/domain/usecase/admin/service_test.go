package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/shift-monitor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/shift-monitor/internal/domain/error"
	"github.com/amirhossein-jamali/shift-monitor/mocks/port/core"
	"github.com/amirhossein-jamali/shift-monitor/mocks/port/persistence"
)

func TestService_ForceRelease(t *testing.T) {
	fixedTime := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	key := entity.SlotKey{PortfolioID: 1, Hour: 14}

	newService := func() (*Service, *persistence.MockReservationRepository, *persistence.MockAuditRepository) {
		mockReservations := new(persistence.MockReservationRepository)
		mockAudit := new(persistence.MockAuditRepository)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime).Maybe()
		mockLogger.On("Info", mock.Anything, mock.Anything).Maybe()
		mockLogger.On("Warn", mock.Anything, mock.Anything).Maybe()
		mockLogger.On("Error", mock.Anything, mock.Anything).Maybe()

		service := NewService(mockReservations, mockAudit, mockTimeProvider, mockLogger)
		return service, mockReservations, mockAudit
	}

	t.Run("should remove all claims and record the audit entry", func(t *testing.T) {
		ctx := context.Background()
		service, mockReservations, mockAudit := newService()

		mockReservations.On("ReleaseAll", ctx, key).Return(int64(2), nil)
		mockAudit.On("Record", ctx, mock.MatchedBy(func(e *entity.AuditEntry) bool {
			return e.Actor == "supervisor" &&
				e.Action == entity.AuditActionForceRelease &&
				e.PortfolioID == key.PortfolioID &&
				e.Hour == key.Hour &&
				e.CreatedAt.Equal(fixedTime)
		})).Return(nil)

		removed, err := service.ForceRelease(ctx, key, "supervisor")

		assert.NoError(t, err)
		assert.Equal(t, int64(2), removed)
		mockReservations.AssertExpectations(t)
		mockAudit.AssertExpectations(t)
	})

	t.Run("should reject an empty actor", func(t *testing.T) {
		ctx := context.Background()
		service, mockReservations, _ := newService()

		_, err := service.ForceRelease(ctx, key, "  ")

		assert.ErrorIs(t, err, errs.ErrInvalidOwnerName)
		mockReservations.AssertNotCalled(t, "ReleaseAll")
	})

	t.Run("should succeed on an empty slot", func(t *testing.T) {
		ctx := context.Background()
		service, mockReservations, mockAudit := newService()

		mockReservations.On("ReleaseAll", ctx, key).Return(int64(0), nil)
		mockAudit.On("Record", ctx, mock.Anything).Return(nil)

		removed, err := service.ForceRelease(ctx, key, "supervisor")

		assert.NoError(t, err)
		assert.Zero(t, removed)
	})

	t.Run("should surface store failures without auditing", func(t *testing.T) {
		ctx := context.Background()
		service, mockReservations, mockAudit := newService()

		mockReservations.On("ReleaseAll", ctx, key).
			Return(int64(0), errs.ErrStoreUnavailable)

		_, err := service.ForceRelease(ctx, key, "supervisor")

		assert.ErrorIs(t, err, errs.ErrStoreUnavailable)
		mockAudit.AssertNotCalled(t, "Record")
	})

	t.Run("should not fail the release when the audit write fails", func(t *testing.T) {
		ctx := context.Background()
		service, mockReservations, mockAudit := newService()

		mockReservations.On("ReleaseAll", ctx, key).Return(int64(1), nil)
		mockAudit.On("Record", ctx, mock.Anything).Return(errs.ErrStoreUnavailable)

		removed, err := service.ForceRelease(ctx, key, "supervisor")

		assert.NoError(t, err)
		assert.Equal(t, int64(1), removed)
	})
}

func TestService_ListAudit(t *testing.T) {
	newService := func() (*Service, *persistence.MockAuditRepository) {
		mockAudit := new(persistence.MockAuditRepository)
		mockLogger := new(core.MockLogger)
		service := NewService(new(persistence.MockReservationRepository), mockAudit,
			new(core.MockTimeProvider), mockLogger)
		return service, mockAudit
	}

	t.Run("should pass through a sane limit", func(t *testing.T) {
		ctx := context.Background()
		service, mockAudit := newService()

		entries := []entity.AuditEntry{{ID: 1, Actor: "supervisor"}}
		mockAudit.On("List", ctx, 50).Return(entries, nil)

		result, err := service.ListAudit(ctx, 50)

		assert.NoError(t, err)
		assert.Equal(t, entries, result)
	})

	t.Run("should clamp out-of-range limits to the default", func(t *testing.T) {
		ctx := context.Background()
		service, mockAudit := newService()

		mockAudit.On("List", ctx, 100).Return([]entity.AuditEntry{}, nil).Times(3)

		_, err := service.ListAudit(ctx, 0)
		assert.NoError(t, err)
		_, err = service.ListAudit(ctx, -5)
		assert.NoError(t, err)
		_, err = service.ListAudit(ctx, 10000)
		assert.NoError(t, err)

		mockAudit.AssertExpectations(t)
	})
}

package sweep

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	errs "github.com/amirhossein-jamali/shift-monitor/internal/domain/error"
	"github.com/amirhossein-jamali/shift-monitor/mocks/port/core"
	"github.com/amirhossein-jamali/shift-monitor/mocks/port/persistence"
)

func TestSweeper_RunOnce(t *testing.T) {
	fixedTime := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	newSweeper := func() (*Sweeper, *persistence.MockReservationRepository) {
		mockReservations := new(persistence.MockReservationRepository)
		mockOracle := new(core.MockHourOracle)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime)
		mockOracle.On("CurrentHour").Return(14)
		mockLogger.On("Info", mock.Anything, mock.Anything).Maybe()
		mockLogger.On("Error", mock.Anything, mock.Anything).Maybe()

		sweeper := NewSweeper(mockReservations, mockOracle, mockTimeProvider, mockLogger, time.Minute)
		return sweeper, mockReservations
	}

	t.Run("should report the number of rows removed", func(t *testing.T) {
		ctx := context.Background()
		sweeper, mockReservations := newSweeper()

		mockReservations.On("SweepExpired", ctx, 14, fixedTime).Return(int64(3), nil)

		removed, err := sweeper.RunOnce(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), removed)
		mockReservations.AssertExpectations(t)
	})

	t.Run("should pass through an empty sweep", func(t *testing.T) {
		ctx := context.Background()
		sweeper, mockReservations := newSweeper()

		mockReservations.On("SweepExpired", ctx, 14, fixedTime).Return(int64(0), nil)

		removed, err := sweeper.RunOnce(ctx)

		assert.NoError(t, err)
		assert.Zero(t, removed)
	})

	t.Run("should surface store failures", func(t *testing.T) {
		ctx := context.Background()
		sweeper, mockReservations := newSweeper()

		mockReservations.On("SweepExpired", ctx, 14, fixedTime).
			Return(int64(0), errs.ErrStoreUnavailable)

		removed, err := sweeper.RunOnce(ctx)

		assert.ErrorIs(t, err, errs.ErrStoreUnavailable)
		assert.Zero(t, removed)
	})
}

func TestNewSweeper(t *testing.T) {
	t.Run("should fall back to the default interval", func(t *testing.T) {
		sweeper := NewSweeper(
			new(persistence.MockReservationRepository),
			new(core.MockHourOracle),
			new(core.MockTimeProvider),
			new(core.MockLogger),
			0,
		)

		assert.Equal(t, DefaultInterval, sweeper.interval)
	})
}

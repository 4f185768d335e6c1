package lock

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

func TestResolver_Evaluate(t *testing.T) {
	fixedTime := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	key := entity.SlotKey{PortfolioID: 1, Hour: 14}

	newResolver := func() (*Resolver, *persistence.MockReservationRepository, *persistence.MockCompletionRepository, *core.MockHourOracle) {
		mockReservations := new(persistence.MockReservationRepository)
		mockCompletions := new(persistence.MockCompletionRepository)
		mockOracle := new(core.MockHourOracle)
		mockTimeProvider := new(core.MockTimeProvider)
		mockLogger := new(core.MockLogger)

		mockTimeProvider.On("Now").Return(fixedTime).Maybe()
		mockLogger.On("Debug", mock.Anything, mock.Anything).Maybe()

		resolver := NewResolver(mockReservations, mockCompletions, mockOracle, mockTimeProvider, mockLogger)
		return resolver, mockReservations, mockCompletions, mockOracle
	}

	t.Run("should allow claim on a free slot", func(t *testing.T) {
		ctx := context.Background()
		resolver, mockReservations, _, mockOracle := newResolver()

		mockOracle.On("CurrentHour").Return(14)
		mockReservations.On("ListLive", ctx, 14, fixedTime).Return([]entity.Reservation{}, nil)
		mockReservations.On("FindLiveBySession", ctx, "session-a", 14, fixedTime).
			Return(nil, errs.ErrReservationNotFound)

		err := resolver.Evaluate(ctx, key, "session-a")

		assert.NoError(t, err)
		mockReservations.AssertExpectations(t)
	})

	t.Run("should reject when the hour has rolled over", func(t *testing.T) {
		ctx := context.Background()
		resolver, mockReservations, _, mockOracle := newResolver()

		mockOracle.On("CurrentHour").Return(15)

		err := resolver.Evaluate(ctx, key, "session-a")

		assert.ErrorIs(t, err, errs.ErrHourRolledOver)
		mockReservations.AssertNotCalled(t, "ListLive")
	})

	t.Run("should deny when another session holds a live claim", func(t *testing.T) {
		ctx := context.Background()
		resolver, mockReservations, _, mockOracle := newResolver()

		mockOracle.On("CurrentHour").Return(14)
		mockReservations.On("ListLive", ctx, 14, fixedTime).Return([]entity.Reservation{
			{
				PortfolioID: 1,
				Hour:        14,
				OwnerName:   "Morgan",
				SessionID:   "session-b",
				AcquiredAt:  fixedTime.Add(-time.Minute),
				ExpiresAt:   fixedTime.Add(30 * time.Minute),
			},
		}, nil)

		err := resolver.Evaluate(ctx, key, "session-a")

		assert.ErrorIs(t, err, errs.ErrSlotLocked)
		var lockErr *errs.SlotLockedError
		assert.ErrorAs(t, err, &lockErr)
		assert.Equal(t, "Morgan", lockErr.OwnerName)
		mockReservations.AssertNotCalled(t, "FindLiveBySession")
	})

	t.Run("should ignore expired claims by other sessions", func(t *testing.T) {
		ctx := context.Background()
		resolver, mockReservations, _, mockOracle := newResolver()

		mockOracle.On("CurrentHour").Return(14)
		mockReservations.On("ListLive", ctx, 14, fixedTime).Return([]entity.Reservation{
			{
				PortfolioID: 1,
				Hour:        14,
				SessionID:   "session-b",
				ExpiresAt:   fixedTime.Add(-time.Second),
			},
		}, nil)
		mockReservations.On("FindLiveBySession", ctx, "session-a", 14, fixedTime).
			Return(nil, errs.ErrReservationNotFound)

		err := resolver.Evaluate(ctx, key, "session-a")

		assert.NoError(t, err)
	})

	t.Run("should allow idempotent re-claim of the session's own slot", func(t *testing.T) {
		ctx := context.Background()
		resolver, mockReservations, _, mockOracle := newResolver()

		own := entity.Reservation{
			PortfolioID: 1,
			Hour:        14,
			SessionID:   "session-a",
			AcquiredAt:  fixedTime.Add(-time.Minute),
			ExpiresAt:   fixedTime.Add(30 * time.Minute),
		}
		mockOracle.On("CurrentHour").Return(14)
		mockReservations.On("ListLive", ctx, 14, fixedTime).Return([]entity.Reservation{own}, nil)
		mockReservations.On("FindLiveBySession", ctx, "session-a", 14, fixedTime).Return(&own, nil)

		err := resolver.Evaluate(ctx, key, "session-a")

		assert.NoError(t, err)
	})

	t.Run("should refuse a second slot while the held one is uncompleted", func(t *testing.T) {
		ctx := context.Background()
		resolver, mockReservations, mockCompletions, mockOracle := newResolver()

		held := entity.Reservation{
			PortfolioID: 2,
			Hour:        14,
			SessionID:   "session-a",
			AcquiredAt:  fixedTime.Add(-time.Minute),
			ExpiresAt:   fixedTime.Add(30 * time.Minute),
		}
		mockOracle.On("CurrentHour").Return(14)
		mockOracle.On("Location").Return(time.UTC)
		mockReservations.On("ListLive", ctx, 14, fixedTime).Return([]entity.Reservation{held}, nil)
		mockReservations.On("FindLiveBySession", ctx, "session-a", 14, fixedTime).Return(&held, nil)
		mockCompletions.On("IsCompleted", ctx, held.SlotKey(), "2025-03-10").Return(false, nil)

		err := resolver.Evaluate(ctx, key, "session-a")

		assert.ErrorIs(t, err, errs.ErrOperatorBusy)
		var busyErr *errs.OperatorBusyError
		assert.ErrorAs(t, err, &busyErr)
		assert.Equal(t, uint64(2), busyErr.HeldPortfolioID)
	})

	t.Run("should allow a second slot once the held one is completed", func(t *testing.T) {
		ctx := context.Background()
		resolver, mockReservations, mockCompletions, mockOracle := newResolver()

		held := entity.Reservation{
			PortfolioID: 2,
			Hour:        14,
			SessionID:   "session-a",
			AcquiredAt:  fixedTime.Add(-time.Minute),
			ExpiresAt:   fixedTime.Add(30 * time.Minute),
		}
		mockOracle.On("CurrentHour").Return(14)
		mockOracle.On("Location").Return(time.UTC)
		mockReservations.On("ListLive", ctx, 14, fixedTime).Return([]entity.Reservation{held}, nil)
		mockReservations.On("FindLiveBySession", ctx, "session-a", 14, fixedTime).Return(&held, nil)
		mockCompletions.On("IsCompleted", ctx, held.SlotKey(), "2025-03-10").Return(true, nil)

		err := resolver.Evaluate(ctx, key, "session-a")

		assert.NoError(t, err)
	})

	t.Run("should propagate store failures", func(t *testing.T) {
		ctx := context.Background()
		resolver, mockReservations, _, mockOracle := newResolver()

		mockOracle.On("CurrentHour").Return(14)
		mockReservations.On("ListLive", ctx, 14, fixedTime).
			Return(nil, errs.ErrStoreUnavailable)

		err := resolver.Evaluate(ctx, key, "session-a")

		assert.ErrorIs(t, err, errs.ErrStoreUnavailable)
	})
}

func TestMostRecentFor(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	key := entity.SlotKey{PortfolioID: 1, Hour: 14}

	t.Run("should return nil for an empty set", func(t *testing.T) {
		assert.Nil(t, MostRecentFor(nil, key, now, 14))
	})

	t.Run("should pick the newest live duplicate", func(t *testing.T) {
		older := entity.Reservation{
			PortfolioID: 1, Hour: 14, SessionID: "session-a",
			AcquiredAt: now.Add(-2 * time.Minute),
			ExpiresAt:  now.Add(30 * time.Minute),
		}
		newer := entity.Reservation{
			PortfolioID: 1, Hour: 14, SessionID: "session-b",
			AcquiredAt: now.Add(-time.Minute),
			ExpiresAt:  now.Add(30 * time.Minute),
		}

		winner := MostRecentFor([]entity.Reservation{older, newer}, key, now, 14)

		assert.NotNil(t, winner)
		assert.Equal(t, "session-b", winner.SessionID)
	})

	t.Run("should skip reservations for other slots", func(t *testing.T) {
		other := entity.Reservation{
			PortfolioID: 2, Hour: 14, SessionID: "session-a",
			AcquiredAt: now.Add(-time.Minute),
			ExpiresAt:  now.Add(30 * time.Minute),
		}

		assert.Nil(t, MostRecentFor([]entity.Reservation{other}, key, now, 14))
	})

	t.Run("should skip void reservations", func(t *testing.T) {
		expired := entity.Reservation{
			PortfolioID: 1, Hour: 14, SessionID: "session-a",
			AcquiredAt: now.Add(-2 * time.Hour),
			ExpiresAt:  now.Add(-time.Hour),
		}

		assert.Nil(t, MostRecentFor([]entity.Reservation{expired}, key, now, 14))
		assert.Nil(t, MostRecentFor([]entity.Reservation{{
			PortfolioID: 1, Hour: 14, SessionID: "session-a",
			AcquiredAt: now, ExpiresAt: now.Add(time.Hour),
		}}, key, now, 15))
	})
}

package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReservation_LiveAt(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	t.Run("should be live before expiry within its hour", func(t *testing.T) {
		r := &Reservation{
			PortfolioID: 1,
			Hour:        14,
			ExpiresAt:   now.Add(30 * time.Minute),
		}

		assert.True(t, r.LiveAt(now, 14))
	})

	t.Run("should be void once the TTL passes", func(t *testing.T) {
		r := &Reservation{
			PortfolioID: 1,
			Hour:        14,
			ExpiresAt:   now.Add(-time.Second),
		}

		assert.False(t, r.LiveAt(now, 14))
	})

	t.Run("should be void exactly at expiry", func(t *testing.T) {
		r := &Reservation{
			PortfolioID: 1,
			Hour:        14,
			ExpiresAt:   now,
		}

		assert.False(t, r.LiveAt(now, 14))
	})

	t.Run("should be void after the hour rolls over even with TTL remaining", func(t *testing.T) {
		r := &Reservation{
			PortfolioID: 1,
			Hour:        14,
			ExpiresAt:   now.Add(45 * time.Minute),
		}

		assert.False(t, r.LiveAt(now, 15))
	})
}

func TestReservation_HeldBy(t *testing.T) {
	r := &Reservation{SessionID: "session-a"}

	assert.True(t, r.HeldBy("session-a"))
	assert.False(t, r.HeldBy("session-b"))
	assert.False(t, r.HeldBy(""))
}

func TestReservation_SlotKey(t *testing.T) {
	r := &Reservation{PortfolioID: 7, Hour: 3}

	key := r.SlotKey()

	assert.Equal(t, uint64(7), key.PortfolioID)
	assert.Equal(t, 3, key.Hour)
}

func TestDayOf(t *testing.T) {
	t.Run("should format the day in the reference timezone", func(t *testing.T) {
		loc, err := time.LoadLocation("America/New_York")
		assert.NoError(t, err)

		// 03:30 UTC is still the previous day in New York
		instant := time.Date(2025, 3, 10, 3, 30, 0, 0, time.UTC)

		assert.Equal(t, "2025-03-09", DayOf(instant, loc))
		assert.Equal(t, "2025-03-10", DayOf(instant, time.UTC))
	})
}

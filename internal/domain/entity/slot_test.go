package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	errs "github.com/amirhossein-jamali/shift-monitor/internal/domain/error"
)

func TestNewSlotKey(t *testing.T) {
	t.Run("should create key with valid portfolio and hour", func(t *testing.T) {
		key, err := NewSlotKey(3, 14)

		assert.NoError(t, err)
		assert.Equal(t, uint64(3), key.PortfolioID)
		assert.Equal(t, 14, key.Hour)
	})

	t.Run("should accept boundary hours", func(t *testing.T) {
		first, err := NewSlotKey(1, 0)
		assert.NoError(t, err)
		assert.Equal(t, 0, first.Hour)

		last, err := NewSlotKey(1, 23)
		assert.NoError(t, err)
		assert.Equal(t, 23, last.Hour)
	})

	t.Run("should reject zero portfolio ID", func(t *testing.T) {
		_, err := NewSlotKey(0, 10)

		assert.ErrorIs(t, err, errs.ErrInvalidPortfolioID)
	})

	t.Run("should reject out-of-range hours", func(t *testing.T) {
		_, err := NewSlotKey(1, -1)
		assert.ErrorIs(t, err, errs.ErrInvalidHour)

		_, err = NewSlotKey(1, 24)
		assert.ErrorIs(t, err, errs.ErrInvalidHour)
	})
}

func TestSlotKey_Equals(t *testing.T) {
	t.Run("should match identical keys", func(t *testing.T) {
		a := SlotKey{PortfolioID: 2, Hour: 9}
		b := SlotKey{PortfolioID: 2, Hour: 9}

		assert.True(t, a.Equals(b))
	})

	t.Run("should not match when portfolio differs", func(t *testing.T) {
		a := SlotKey{PortfolioID: 2, Hour: 9}
		b := SlotKey{PortfolioID: 3, Hour: 9}

		assert.False(t, a.Equals(b))
	})

	t.Run("should not match when hour differs", func(t *testing.T) {
		a := SlotKey{PortfolioID: 2, Hour: 9}
		b := SlotKey{PortfolioID: 2, Hour: 10}

		assert.False(t, a.Equals(b))
	})
}

func TestSlotKey_String(t *testing.T) {
	key := SlotKey{PortfolioID: 4, Hour: 7}

	assert.Equal(t, "portfolio 4 / hour 07", key.String())
}

package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid portfolio ID", ErrInvalidPortfolioID, CodeInvalidPortfolioID},
		{"invalid hour", ErrInvalidHour, CodeInvalidHour},
		{"invalid session ID", ErrInvalidSessionID, CodeInvalidSessionID},
		{"invalid owner name", ErrInvalidOwnerName, CodeInvalidOwnerName},
		{"slot locked", ErrSlotLocked, CodeSlotLocked},
		{"operator busy", ErrOperatorBusy, CodeOperatorBusy},
		{"not holder", ErrNotHolder, CodeNotHolder},
		{"portfolio not found", ErrPortfolioNotFound, CodePortfolioNotFound},
		{"reservation not found", ErrReservationNotFound, CodeReservationMissing},
		{"store unavailable", ErrStoreUnavailable, CodeStoreUnavailable},
		{"unknown error", errors.New("something else"), CodeInternalServer},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ErrorCode(tc.err))
		})
	}

	t.Run("should resolve wrapped errors", func(t *testing.T) {
		wrapped := fmt.Errorf("acquire: %w", ErrSlotLocked)

		assert.Equal(t, CodeSlotLocked, ErrorCode(wrapped))
	})
}

func TestSlotLockedError(t *testing.T) {
	err := NewSlotLockedError(5, 11, "Dana")

	t.Run("should match the sentinel through errors.Is", func(t *testing.T) {
		assert.ErrorIs(t, err, ErrSlotLocked)
		assert.True(t, IsSlotLockedError(err))
	})

	t.Run("should expose the blocking owner through errors.As", func(t *testing.T) {
		var lockErr *SlotLockedError
		assert.True(t, errors.As(err, &lockErr))
		assert.Equal(t, uint64(5), lockErr.PortfolioID)
		assert.Equal(t, 11, lockErr.Hour)
		assert.Equal(t, "Dana", lockErr.OwnerName)
	})

	t.Run("should name the owner in the message", func(t *testing.T) {
		assert.Contains(t, err.Error(), "Dana")
		assert.Contains(t, err.Error(), "portfolio=5")
	})

	t.Run("should carry structured log fields", func(t *testing.T) {
		var lockErr *SlotLockedError
		errors.As(err, &lockErr)

		fields := lockErr.LogFields()
		assert.Equal(t, "slot_locked", fields["error_type"])
		assert.Equal(t, CodeSlotLocked, fields["error_code"])
	})
}

func TestOperatorBusyError(t *testing.T) {
	err := NewOperatorBusyError("session-1", 2, 9)

	t.Run("should match the sentinel through errors.Is", func(t *testing.T) {
		assert.ErrorIs(t, err, ErrOperatorBusy)
		assert.True(t, IsOperatorBusyError(err))
	})

	t.Run("should expose the held slot through errors.As", func(t *testing.T) {
		var busyErr *OperatorBusyError
		assert.True(t, errors.As(err, &busyErr))
		assert.Equal(t, "session-1", busyErr.SessionID)
		assert.Equal(t, uint64(2), busyErr.HeldPortfolioID)
		assert.Equal(t, 9, busyErr.HeldHour)
	})

	t.Run("should not match the slot-locked sentinel", func(t *testing.T) {
		assert.False(t, errors.Is(err, ErrSlotLocked))
	})
}

func TestReservationError(t *testing.T) {
	underlying := ErrStoreUnavailable
	err := NewReservationError(3, 16, "release", underlying)

	t.Run("should unwrap to the underlying error", func(t *testing.T) {
		assert.ErrorIs(t, err, ErrStoreUnavailable)
	})

	t.Run("should describe the failed operation", func(t *testing.T) {
		assert.Contains(t, err.Error(), "release")
		assert.Contains(t, err.Error(), "portfolio=3")
	})

	t.Run("should derive its log code from the cause", func(t *testing.T) {
		var resErr *ReservationError
		assert.True(t, errors.As(err, &resErr))
		assert.Equal(t, CodeStoreUnavailable, resErr.LogFields()["error_code"])
	})
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.True(t, IsNotFoundError(ErrPortfolioNotFound))
	assert.True(t, IsNotFoundError(ErrReservationNotFound))
	assert.False(t, IsNotFoundError(ErrSlotLocked))
}

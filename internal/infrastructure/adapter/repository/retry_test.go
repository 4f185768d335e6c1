package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/shift-monitor/mocks/port/core"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		RetryInterval: time.Millisecond,
		MaxInterval:   5 * time.Millisecond,
		JitterFactor:  0,
	}
}

func TestRetryOnTransientError(t *testing.T) {
	newLogger := func() *core.MockLogger {
		mockLogger := new(core.MockLogger)
		mockLogger.On("Warn", mock.Anything, mock.Anything).Maybe()
		mockLogger.On("Error", mock.Anything, mock.Anything).Maybe()
		return mockLogger
	}

	t.Run("should succeed without retrying when the operation succeeds", func(t *testing.T) {
		calls := 0

		err := RetryOnTransientError(context.Background(), fastRetryConfig(), func() error {
			calls++
			return nil
		}, newLogger())

		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("should retry a transient error until it clears", func(t *testing.T) {
		calls := 0

		err := RetryOnTransientError(context.Background(), fastRetryConfig(), func() error {
			calls++
			if calls < 3 {
				return errors.New("read tcp: connection reset by peer")
			}
			return nil
		}, newLogger())

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("should retry deadlocks", func(t *testing.T) {
		calls := 0

		err := RetryOnTransientError(context.Background(), fastRetryConfig(), func() error {
			calls++
			if calls == 1 {
				return errors.New("ERROR: deadlock detected (SQLSTATE 40P01)")
			}
			return nil
		}, newLogger())

		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("should not retry a non-transient error", func(t *testing.T) {
		calls := 0
		permanent := errors.New("syntax error at or near \"SELCT\"")

		err := RetryOnTransientError(context.Background(), fastRetryConfig(), func() error {
			calls++
			return permanent
		}, newLogger())

		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("should give up after exhausting all attempts", func(t *testing.T) {
		calls := 0

		err := RetryOnTransientError(context.Background(), fastRetryConfig(), func() error {
			calls++
			return errors.New("dial tcp: connection refused")
		}, newLogger())

		assert.Error(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("should stop when the context is canceled between attempts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0

		// A long backoff keeps the canceled context ahead of the timer.
		config := RetryConfig{
			MaxRetries:    3,
			RetryInterval: time.Second,
			MaxInterval:   time.Second,
		}
		err := RetryOnTransientError(ctx, config, func() error {
			calls++
			cancel()
			return errors.New("dial tcp: connection refused")
		}, newLogger())

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestCalculateBackoffWithJitter(t *testing.T) {
	t.Run("should grow exponentially up to the cap", func(t *testing.T) {
		config := RetryConfig{
			RetryInterval: 100 * time.Millisecond,
			MaxInterval:   300 * time.Millisecond,
			JitterFactor:  0,
		}

		assert.Equal(t, 100*time.Millisecond, calculateBackoffWithJitter(0, config))
		assert.Equal(t, 200*time.Millisecond, calculateBackoffWithJitter(1, config))
		assert.Equal(t, 300*time.Millisecond, calculateBackoffWithJitter(2, config))
		assert.Equal(t, 300*time.Millisecond, calculateBackoffWithJitter(5, config))
	})

	t.Run("should keep jitter within the configured factor", func(t *testing.T) {
		config := RetryConfig{
			RetryInterval: 100 * time.Millisecond,
			MaxInterval:   time.Second,
			JitterFactor:  0.2,
		}

		backoff := calculateBackoffWithJitter(0, config)

		assert.GreaterOrEqual(t, backoff, 100*time.Millisecond)
		assert.LessOrEqual(t, backoff, 120*time.Millisecond)
	})
}

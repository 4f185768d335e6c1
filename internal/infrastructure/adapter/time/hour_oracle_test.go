package time

import (
	"testing"
	stdtime "time"

	"github.com/stretchr/testify/assert"

	"github.com/amirhossein-jamali/shift-monitor/mocks/port/core"
)

func TestNewZoneHourOracle(t *testing.T) {
	t.Run("should load a valid timezone", func(t *testing.T) {
		oracle, err := NewZoneHourOracle("America/New_York", new(core.MockTimeProvider))

		assert.NoError(t, err)
		assert.Equal(t, "America/New_York", oracle.Location().String())
	})

	t.Run("should reject an unknown timezone", func(t *testing.T) {
		_, err := NewZoneHourOracle("Not/AZone", new(core.MockTimeProvider))

		assert.Error(t, err)
	})
}

func TestZoneHourOracle_CurrentHour(t *testing.T) {
	t.Run("should derive the hour in the reference timezone", func(t *testing.T) {
		mockTimeProvider := new(core.MockTimeProvider)
		// 18:30 UTC is 14:30 in New York during daylight saving time.
		mockTimeProvider.On("Now").Return(stdtime.Date(2025, 6, 10, 18, 30, 0, 0, stdtime.UTC))

		oracle, err := NewZoneHourOracle("America/New_York", mockTimeProvider)
		assert.NoError(t, err)

		assert.Equal(t, 14, oracle.CurrentHour())
	})

	t.Run("should agree across clients regardless of their local zone", func(t *testing.T) {
		instant := stdtime.Date(2025, 6, 10, 23, 5, 0, 0, stdtime.UTC)

		tokyo := stdtime.FixedZone("JST", 9*3600)
		first := new(core.MockTimeProvider)
		first.On("Now").Return(instant)
		second := new(core.MockTimeProvider)
		second.On("Now").Return(instant.In(tokyo))

		oracleA, err := NewZoneHourOracle("UTC", first)
		assert.NoError(t, err)
		oracleB, err := NewZoneHourOracle("UTC", second)
		assert.NoError(t, err)

		assert.Equal(t, oracleA.CurrentHour(), oracleB.CurrentHour())
	})
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProcessDurations(t *testing.T) {
	t.Run("should convert raw config values into durations", func(t *testing.T) {
		cfg := &Config{}
		cfg.Server.ReadTimeout = 15
		cfg.Database.ConnMaxLifetime = 30
		cfg.Database.QueryTimeout = 5
		cfg.Reservation.TTL = 60
		cfg.Reservation.RefreshInterval = 2
		cfg.Reservation.SweepInterval = 60
		cfg.Cache.TTL = 1
		cfg.Cache.CleanupInterval = 30

		processDurations(cfg)

		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
		assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
		assert.Equal(t, time.Hour, cfg.Reservation.TTL)
		assert.Equal(t, 2*time.Second, cfg.Reservation.RefreshInterval)
		assert.Equal(t, time.Second, cfg.Cache.TTL)
	})

	t.Run("should keep the cache TTL below the refresh interval", func(t *testing.T) {
		cfg := &Config{}
		cfg.Cache.Enabled = true
		cfg.Cache.TTL = 5 // misconfigured: longer than the 2s poll
		cfg.Reservation.RefreshInterval = 2

		processDurations(cfg)

		assert.Equal(t, time.Second, cfg.Cache.TTL)
		assert.Less(t, cfg.Cache.TTL, cfg.Reservation.RefreshInterval)
	})

	t.Run("should leave a disabled cache alone", func(t *testing.T) {
		cfg := &Config{}
		cfg.Cache.Enabled = false
		cfg.Cache.TTL = 5
		cfg.Reservation.RefreshInterval = 2

		processDurations(cfg)

		assert.Equal(t, 5*time.Second, cfg.Cache.TTL)
	})
}

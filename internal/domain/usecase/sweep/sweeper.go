package sweep

import (
	"context"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/shift-monitor/internal/domain/port/core"
	"github.com/amirhossein-jamali/shift-monitor/internal/domain/port/persistence"
)

// DefaultInterval bounds the staleness of abandoned locks: a crashed client's
// reservation survives at most TTL plus one sweep interval.
const DefaultInterval = time.Minute

// Sweeper periodically deletes void reservations: TTL-expired rows and rows
// stranded on a past hour by the rollover.
type Sweeper struct {
	reservations persistence.ReservationRepository
	oracle       coreport.HourOracle
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	interval     time.Duration

	stopOnce sync.Once
	stop     chan struct{}
	wg       sync.WaitGroup
}

// NewSweeper creates a sweeper with the given interval
func NewSweeper(
	reservations persistence.ReservationRepository,
	oracle coreport.HourOracle,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	interval time.Duration,
) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sweeper{
		reservations: reservations,
		oracle:       oracle,
		timeProvider: timeProvider,
		logger:       logger,
		interval:     interval,
		stop:         make(chan struct{}),
	}
}

// Start launches the background sweep loop
func (s *Sweeper) Start() {
	s.wg.Add(1)
	go s.loop()
}

// Stop halts the loop and waits for it to exit
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	s.wg.Wait()
}

// RunOnce performs a single sweep pass and returns the rows removed
func (s *Sweeper) RunOnce(ctx context.Context) (int64, error) {
	now := s.timeProvider.Now()
	currentHour := s.oracle.CurrentHour()

	removed, err := s.reservations.SweepExpired(ctx, currentHour, now)
	if err != nil {
		s.logger.Error("Reservation sweep failed", map[string]any{
			"current_hour": currentHour,
			"error":        err.Error(),
		})
		return 0, err
	}

	if removed > 0 {
		s.logger.Info("Swept void reservations", map[string]any{
			"removed":      removed,
			"current_hour": currentHour,
		})
	}
	return removed, nil
}

func (s *Sweeper) loop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			ctx, cancel := s.timeProvider.WithTimeout(context.Background(), coreport.Duration(s.interval))
			_, _ = s.RunOnce(ctx)
			cancel()
		case <-s.stop:
			return
		}
	}
}

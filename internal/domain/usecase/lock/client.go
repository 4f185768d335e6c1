package lock

import (
	"context"
	"sync"
	"time"

	"github.com/amirhossein-jamali/shift-monitor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/shift-monitor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/shift-monitor/internal/domain/port/core"
)

// Default polling cadence. The refresh poll keeps Held/Denied consistent
// with concurrent releases and admin overrides; the hour check turns the
// rollover into an unconditional release.
const (
	DefaultRefreshInterval   = 2 * time.Second
	DefaultHourCheckInterval = time.Minute
)

// ClientConfig configures one operator session's lock client
type ClientConfig struct {
	SessionID         string
	RefreshInterval   time.Duration
	HourCheckInterval time.Duration
	OperationTimeout  coreport.Duration
}

// Client is the per-session acquisition state machine. One instance exists
// per operator session; all store coordination goes through the shared
// Service so the conflict rules live in exactly one place.
//
// The client never trusts its own state across polls: every refresh
// re-derives "is this mine" from the store's live set.
type Client struct {
	service      *Service
	oracle       coreport.HourOracle
	timeProvider coreport.TimeProvider
	logger       coreport.Logger

	sessionID         string
	refreshInterval   time.Duration
	hourCheckInterval time.Duration
	opTimeout         coreport.Duration

	mu        sync.Mutex
	state     State
	selection *Selection
	held      *entity.Reservation
	deniedBy  string
	attempt   uint64
	lastHour  int

	stopOnce sync.Once
	stop     chan struct{}
	wg       sync.WaitGroup
}

// NewClient creates a lock client for one session
func NewClient(
	service *Service,
	oracle coreport.HourOracle,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	cfg ClientConfig,
) *Client {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultRefreshInterval
	}
	if cfg.HourCheckInterval <= 0 {
		cfg.HourCheckInterval = DefaultHourCheckInterval
	}
	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = coreport.Duration(10 * time.Second)
	}
	return &Client{
		service:           service,
		oracle:            oracle,
		timeProvider:      timeProvider,
		logger:            logger,
		sessionID:         cfg.SessionID,
		refreshInterval:   cfg.RefreshInterval,
		hourCheckInterval: cfg.HourCheckInterval,
		opTimeout:         cfg.OperationTimeout,
		state:             StateIdle,
		lastHour:          oracle.CurrentHour(),
		stop:              make(chan struct{}),
	}
}

// Start launches the two polling loops. Close stops them.
func (c *Client) Start() {
	c.wg.Add(2)
	go c.refreshLoop()
	go c.hourLoop()
}

// Close stops the polling loops and waits for them to exit
func (c *Client) Close() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
	c.wg.Wait()
}

// Select moves the client onto a new (portfolio, hour, operator) triple and
// attempts acquisition. Re-selecting an unchanged triple does NOT re-acquire:
// the UI re-renders far more often than the user changes slots, and
// re-attempting on every render causes acquire/release thrash.
//
// A selection change while an attempt is in flight logically cancels the old
// attempt: its response is discarded on arrival.
func (c *Client) Select(ctx context.Context, sel Selection) error {
	c.mu.Lock()
	if c.selection != nil && c.selection.Equals(sel) {
		state, deniedBy := c.state, c.deniedBy
		c.mu.Unlock()
		if state == StateDenied {
			return errs.NewSlotLockedError(sel.Key.PortfolioID, sel.Key.Hour, deniedBy)
		}
		return nil
	}

	prevState := c.state
	prevSelection := c.selection
	prevHeld := c.held

	c.attempt++
	stamp := c.attempt
	c.selection = &sel
	c.state = StateAcquiring
	c.mu.Unlock()

	opCtx, cancel := c.timeProvider.WithTimeout(ctx, c.opTimeout)
	defer cancel()
	reservation, err := c.service.Acquire(opCtx, sel.Key, sel.OwnerName, c.sessionID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if stamp != c.attempt {
		// The user moved on while this attempt was in flight. The response is
		// stale and must not clobber the state the newer attempt produced.
		c.logger.Debug("Discarding stale acquisition response", map[string]any{
			"portfolio_id": sel.Key.PortfolioID,
			"hour":         sel.Key.Hour,
		})
		return errs.ErrStaleSelection
	}

	switch {
	case err == nil:
		c.state = StateHeld
		c.held = reservation
		c.deniedBy = ""
		return nil

	case errs.IsSlotLockedError(err):
		c.state = StateDenied
		c.held = nil
		if lockErr, ok := err.(*errs.SlotLockedError); ok {
			c.deniedBy = lockErr.OwnerName
		}
		return err

	case errs.IsOperatorBusyError(err):
		// Refused client-side policy: the session keeps whatever it had.
		c.state = prevState
		c.selection = prevSelection
		c.held = prevHeld
		return err

	default:
		// Transient store failure: surface nothing fatal, retry on the next
		// user action or poll.
		c.logger.Warn("Acquisition failed, will retry", map[string]any{
			"portfolio_id": sel.Key.PortfolioID,
			"hour":         sel.Key.Hour,
			"error":        err.Error(),
		})
		c.state = StateIdle
		c.held = nil
		return err
	}
}

// Release abandons the currently held slot and returns the client to Idle
func (c *Client) Release(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateHeld || c.held == nil {
		c.toIdleLocked()
		c.mu.Unlock()
		return nil
	}
	key := c.held.SlotKey()
	c.state = StateReleasing
	c.attempt++ // cancels any in-flight acquire
	c.mu.Unlock()

	opCtx, cancel := c.timeProvider.WithTimeout(ctx, c.opTimeout)
	defer cancel()
	err := c.service.Release(opCtx, key, c.sessionID)

	c.mu.Lock()
	c.toIdleLocked()
	c.mu.Unlock()

	if err != nil {
		// The row will fall to the sweeper; worst case one sweep interval.
		c.logger.Warn("Release failed, reservation left to expire", map[string]any{
			"portfolio_id": key.PortfolioID,
			"hour":         key.Hour,
			"error":        err.Error(),
		})
	}
	return err
}

// State returns the current lifecycle state
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Held returns the confirmed reservation, if any
func (c *Client) Held() *entity.Reservation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.held
}

// DeniedBy returns the owner display name blocking the last attempt
func (c *Client) DeniedBy() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deniedBy
}

// SessionID returns the client's session token
func (c *Client) SessionID() string {
	return c.sessionID
}

func (c *Client) refreshLoop() {
	defer c.wg.Done()
	ticker := time.NewTicker(c.refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.refresh(context.Background())
		case <-c.stop:
			return
		}
	}
}

func (c *Client) hourLoop() {
	defer c.wg.Done()
	ticker := time.NewTicker(c.hourCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.checkHour(context.Background())
		case <-c.stop:
			return
		}
	}
}

// refresh reconciles Held/Denied against the store's live set. This is how
// the client observes admin overrides, completions by others and sweeps:
// within one polling interval the local state converges on the store.
func (c *Client) refresh(ctx context.Context) {
	c.mu.Lock()
	state := c.state
	if (state != StateHeld && state != StateDenied) || c.selection == nil {
		c.mu.Unlock()
		return
	}
	key := c.selection.Key
	stamp := c.attempt
	c.mu.Unlock()

	opCtx, cancel := c.timeProvider.WithTimeout(ctx, c.opTimeout)
	defer cancel()
	live, err := c.service.ListLive(opCtx, key.Hour)
	if err != nil {
		// Transient; the next tick retries.
		c.logger.Debug("Reservation refresh failed", map[string]any{
			"error": err.Error(),
		})
		return
	}
	now := c.timeProvider.Now()
	currentHour := c.oracle.CurrentHour()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.attempt != stamp || c.state != state {
		return
	}

	winner := MostRecentFor(live, key, now, currentHour)
	switch state {
	case StateHeld:
		if winner == nil {
			// Our claim vanished: force-released, completed elsewhere or swept.
			c.logger.Info("Held reservation disappeared from store", map[string]any{
				"portfolio_id": key.PortfolioID,
				"hour":         key.Hour,
			})
			c.toIdleLocked()
		} else if !winner.HeldBy(c.sessionID) {
			c.state = StateDenied
			c.held = nil
			c.deniedBy = winner.OwnerName
		}
	case StateDenied:
		if winner == nil {
			// The blocking claim is gone; drop the selection so the next
			// Select for this slot actually attempts acquisition.
			c.toIdleLocked()
		} else if winner.HeldBy(c.sessionID) {
			c.state = StateHeld
			c.held = winner
			c.deniedBy = ""
		} else {
			c.deniedBy = winner.OwnerName
		}
	}
}

// checkHour re-derives the current hour and, when it has advanced, treats the
// rollover as an unconditional release: everything held for the old hour is
// dropped regardless of completion state.
func (c *Client) checkHour(ctx context.Context) {
	hour := c.oracle.CurrentHour()

	c.mu.Lock()
	if hour == c.lastHour {
		c.mu.Unlock()
		return
	}
	oldHour := c.lastHour
	c.lastHour = hour
	held := c.held
	c.attempt++ // cancels any in-flight acquire for the old hour
	c.toIdleLocked()
	c.mu.Unlock()

	c.logger.Info("Hour rolled over, releasing state", map[string]any{
		"old_hour": oldHour,
		"new_hour": hour,
	})

	if held != nil {
		opCtx, cancel := c.timeProvider.WithTimeout(ctx, c.opTimeout)
		defer cancel()
		// Best effort: the sweeper removes the row anyway once the hour moved.
		if err := c.service.Release(opCtx, held.SlotKey(), c.sessionID); err != nil {
			c.logger.Debug("Rollover release failed, sweeper will collect", map[string]any{
				"portfolio_id": held.PortfolioID,
				"hour":         held.Hour,
				"error":        err.Error(),
			})
		}
	}
}

// toIdleLocked resets to Idle; callers must hold c.mu
func (c *Client) toIdleLocked() {
	c.state = StateIdle
	c.selection = nil
	c.held = nil
	c.deniedBy = ""
}

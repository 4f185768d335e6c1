package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/shift-monitor/internal/domain/entity"
	errs "github.com/amirhossein-jamali/shift-monitor/internal/domain/error"
	"github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/shift-monitor/internal/infrastructure/adapter/repository"
	"github.com/amirhossein-jamali/shift-monitor/mocks/port/core"
)

// The tests below run the real conditional SQL against PostgreSQL. They are
// opt-in: set TEST_DB_HOST (plus the other TEST_DB_* variables as needed) to
// point at a disposable database.
func setupReservationRepoTest(t *testing.T, now time.Time) (*repository.ReservationRepository, *database.TestDBManager) {
	t.Helper()

	if os.Getenv("TEST_DB_HOST") == "" {
		t.Skip("TEST_DB_HOST not set, skipping database tests")
	}

	appLogger := logger.NewDefaultLogger()
	dbManager := database.NewTestDBManager(t, appLogger)
	if err := dbManager.Connect(t); err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { dbManager.Close(t) })

	dbManager.SetupTestDB(t)
	dbManager.CreateTestPortfolio(t, 1, "Core Equities")
	dbManager.CreateTestPortfolio(t, 2, "FX Overlay")

	mockTimeProvider := new(core.MockTimeProvider)
	mockTimeProvider.On("Now").Return(now)
	mockTimeProvider.On("WithTimeout", mock.Anything, mock.Anything).
		Return(context.Background(), context.CancelFunc(func() {})).Maybe()

	repo := repository.NewReservationRepository(dbManager.Manager.DB(), mockTimeProvider, appLogger)
	return repo, dbManager
}

func TestReservationRepository_TryAcquire(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	hour := now.Hour()
	key := entity.SlotKey{PortfolioID: 1, Hour: hour}
	ctx := context.Background()

	t.Run("should let only one session win a contested slot", func(t *testing.T) {
		repo, db := setupReservationRepoTest(t, now)
		db.TruncateAllTables(t)

		first, err := repo.TryAcquire(ctx, key, "Alex", "session-a", time.Hour)
		assert.NoError(t, err)
		assert.NotNil(t, first)
		assert.True(t, first.HeldBy("session-a"))

		_, err = repo.TryAcquire(ctx, key, "Morgan", "session-b", time.Hour)

		assert.ErrorIs(t, err, errs.ErrSlotLocked)
		var lockErr *errs.SlotLockedError
		assert.ErrorAs(t, err, &lockErr)
		assert.Equal(t, "Alex", lockErr.OwnerName)

		// The loser must not have left a row behind.
		live, err := repo.ListLive(ctx, hour, now)
		assert.NoError(t, err)
		assert.Len(t, live, 1)
		assert.Equal(t, "session-a", live[0].SessionID)
	})

	t.Run("should replace the session's own row on re-acquire", func(t *testing.T) {
		repo, db := setupReservationRepoTest(t, now)
		db.TruncateAllTables(t)

		_, err := repo.TryAcquire(ctx, key, "Alex", "session-a", time.Hour)
		assert.NoError(t, err)
		renewed, err := repo.TryAcquire(ctx, key, "Alex", "session-a", 2*time.Hour)
		assert.NoError(t, err)
		assert.NotNil(t, renewed)

		live, err := repo.ListLive(ctx, hour, now)
		assert.NoError(t, err)
		assert.Len(t, live, 1)
		assert.Equal(t, now.Add(2*time.Hour), live[0].ExpiresAt.UTC())
	})

	t.Run("should treat an expired claim as free", func(t *testing.T) {
		repo, db := setupReservationRepoTest(t, now)
		db.TruncateAllTables(t)

		// A negative TTL produces a row that is already past its expiry.
		_, err := repo.TryAcquire(ctx, key, "Alex", "session-a", -time.Minute)
		assert.NoError(t, err)

		won, err := repo.TryAcquire(ctx, key, "Morgan", "session-b", time.Hour)

		assert.NoError(t, err)
		assert.True(t, won.HeldBy("session-b"))
	})

	t.Run("should keep claims on different slots independent", func(t *testing.T) {
		repo, db := setupReservationRepoTest(t, now)
		db.TruncateAllTables(t)

		_, err := repo.TryAcquire(ctx, key, "Alex", "session-a", time.Hour)
		assert.NoError(t, err)
		other := entity.SlotKey{PortfolioID: 2, Hour: hour}
		_, err = repo.TryAcquire(ctx, other, "Morgan", "session-b", time.Hour)

		assert.NoError(t, err)
		live, err := repo.ListLive(ctx, hour, now)
		assert.NoError(t, err)
		assert.Len(t, live, 2)
	})
}

func TestReservationRepository_ReleaseAndSweep(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	hour := now.Hour()
	key := entity.SlotKey{PortfolioID: 1, Hour: hour}
	ctx := context.Background()

	t.Run("should only release the caller's own row", func(t *testing.T) {
		repo, db := setupReservationRepoTest(t, now)
		db.TruncateAllTables(t)

		_, err := repo.TryAcquire(ctx, key, "Alex", "session-a", time.Hour)
		assert.NoError(t, err)

		assert.NoError(t, repo.Release(ctx, key, "session-b"))
		live, err := repo.ListLive(ctx, hour, now)
		assert.NoError(t, err)
		assert.Len(t, live, 1)

		assert.NoError(t, repo.Release(ctx, key, "session-a"))
		live, err = repo.ListLive(ctx, hour, now)
		assert.NoError(t, err)
		assert.Empty(t, live)
	})

	t.Run("should release every row on the slot regardless of owner", func(t *testing.T) {
		repo, db := setupReservationRepoTest(t, now)
		db.TruncateAllTables(t)

		_, err := repo.TryAcquire(ctx, key, "Alex", "session-a", -time.Minute)
		assert.NoError(t, err)
		_, err = repo.TryAcquire(ctx, key, "Morgan", "session-b", time.Hour)
		assert.NoError(t, err)

		removed, err := repo.ReleaseAll(ctx, key)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), removed)
	})

	t.Run("should sweep expired and hour-mismatched rows only", func(t *testing.T) {
		repo, db := setupReservationRepoTest(t, now)
		db.TruncateAllTables(t)

		_, err := repo.TryAcquire(ctx, key, "Alex", "session-a", time.Hour)
		assert.NoError(t, err)
		expired := entity.SlotKey{PortfolioID: 2, Hour: hour}
		_, err = repo.TryAcquire(ctx, expired, "Morgan", "session-b", -time.Minute)
		assert.NoError(t, err)
		staleHour := entity.SlotKey{PortfolioID: 2, Hour: (hour + 23) % 24}
		_, err = repo.TryAcquire(ctx, staleHour, "Jamie", "session-c", time.Hour)
		assert.NoError(t, err)

		removed, err := repo.SweepExpired(ctx, hour, now)

		assert.NoError(t, err)
		assert.Equal(t, int64(2), removed)
		live, err := repo.ListLive(ctx, hour, now)
		assert.NoError(t, err)
		assert.Len(t, live, 1)
		assert.Equal(t, "session-a", live[0].SessionID)
	})
}

func TestReservationRepository_FindLiveBySession(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	hour := now.Hour()
	key := entity.SlotKey{PortfolioID: 1, Hour: hour}
	ctx := context.Background()

	t.Run("should find the session's live claim", func(t *testing.T) {
		repo, db := setupReservationRepoTest(t, now)
		db.TruncateAllTables(t)

		_, err := repo.TryAcquire(ctx, key, "Alex", "session-a", time.Hour)
		assert.NoError(t, err)

		found, err := repo.FindLiveBySession(ctx, "session-a", hour, now)

		assert.NoError(t, err)
		assert.True(t, found.SlotKey().Equals(key))
	})

	t.Run("should report a session without a claim as not found", func(t *testing.T) {
		repo, db := setupReservationRepoTest(t, now)
		db.TruncateAllTables(t)

		_, err := repo.FindLiveBySession(ctx, "session-z", hour, now)

		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})
}

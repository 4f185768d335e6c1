package catalog

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

type catalogFixture struct {
	service      *Service
	portfolios   *persistence.MockPortfolioRepository
	observations *persistence.MockObservationRepository
	reservations *persistence.MockReservationRepository
	uow          *persistence.MockUnitOfWork
	oracle       *core.MockHourOracle
}

func newCatalogFixture(fixedTime time.Time) *catalogFixture {
	mockPortfolios := new(persistence.MockPortfolioRepository)
	mockObservations := new(persistence.MockObservationRepository)
	mockReservations := new(persistence.MockReservationRepository)
	mockUow := new(persistence.MockUnitOfWork)
	mockOracle := new(core.MockHourOracle)
	mockTimeProvider := new(core.MockTimeProvider)
	mockLogger := new(core.MockLogger)

	mockTimeProvider.On("Now").Return(fixedTime).Maybe()
	mockLogger.On("Debug", mock.Anything, mock.Anything).Maybe()
	mockLogger.On("Info", mock.Anything, mock.Anything).Maybe()
	mockLogger.On("Warn", mock.Anything, mock.Anything).Maybe()
	mockLogger.On("Error", mock.Anything, mock.Anything).Maybe()

	service := NewService(mockPortfolios, mockObservations, mockReservations, mockUow,
		mockOracle, mockTimeProvider, mockLogger).(*Service)

	return &catalogFixture{
		service:      service,
		portfolios:   mockPortfolios,
		observations: mockObservations,
		reservations: mockReservations,
		uow:          mockUow,
		oracle:       mockOracle,
	}
}

func TestService_ListPortfolios(t *testing.T) {
	fixedTime := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	t.Run("should map the catalog to responses", func(t *testing.T) {
		ctx := context.Background()
		f := newCatalogFixture(fixedTime)

		f.portfolios.On("List", ctx).Return([]entity.Portfolio{
			{ID: 1, Name: "Core Equities", Active: true},
			{ID: 2, Name: "Fixed Income", Active: true},
		}, nil)

		result, err := f.service.ListPortfolios(ctx)

		assert.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Equal(t, "Core Equities", result[0].Name)
	})

	t.Run("should surface store failures", func(t *testing.T) {
		ctx := context.Background()
		f := newCatalogFixture(fixedTime)

		f.portfolios.On("List", ctx).Return(nil, errs.ErrStoreUnavailable)

		_, err := f.service.ListPortfolios(ctx)

		assert.ErrorIs(t, err, errs.ErrStoreUnavailable)
	})
}

func TestService_MarkCompleted(t *testing.T) {
	fixedTime := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	key := entity.SlotKey{PortfolioID: 1, Hour: 14}

	t.Run("should write the mark and release all claims in one transaction", func(t *testing.T) {
		ctx := context.Background()
		f := newCatalogFixture(fixedTime)
		txCtx := context.WithValue(context.Background(), struct{ k string }{"tx"}, true)

		txCompletions := new(persistence.MockCompletionRepository)
		txReservations := new(persistence.MockReservationRepository)

		f.oracle.On("Location").Return(time.UTC)
		f.portfolios.On("GetByID", ctx, uint64(1)).Return(&entity.Portfolio{ID: 1}, nil)
		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.uow.On("GetCompletionRepository", txCtx).Return(txCompletions)
		f.uow.On("GetReservationRepository", txCtx).Return(txReservations)
		f.uow.On("Commit", txCtx).Return(nil)

		txCompletions.On("Mark", txCtx, mock.MatchedBy(func(m *entity.CompletionMark) bool {
			return m.PortfolioID == 1 && m.Hour == 14 &&
				m.Day == "2025-03-10" && m.MarkedBy == "Alex" &&
				m.SessionID == "session-a"
		})).Return(nil)
		txReservations.On("ReleaseAll", txCtx, key).Return(int64(1), nil)

		err := f.service.MarkCompleted(ctx, key, "session-a", "Alex")

		assert.NoError(t, err)
		f.uow.AssertExpectations(t)
		txCompletions.AssertExpectations(t)
		txReservations.AssertExpectations(t)
		f.uow.AssertNotCalled(t, "Rollback", mock.Anything)
	})

	t.Run("should roll back when the mark write fails", func(t *testing.T) {
		ctx := context.Background()
		f := newCatalogFixture(fixedTime)
		txCtx := context.WithValue(context.Background(), struct{ k string }{"tx"}, true)

		txCompletions := new(persistence.MockCompletionRepository)

		f.oracle.On("Location").Return(time.UTC)
		f.portfolios.On("GetByID", ctx, uint64(1)).Return(&entity.Portfolio{ID: 1}, nil)
		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.uow.On("GetCompletionRepository", txCtx).Return(txCompletions)
		f.uow.On("Rollback", txCtx).Return(nil)

		txCompletions.On("Mark", txCtx, mock.Anything).Return(errs.ErrStoreUnavailable)

		err := f.service.MarkCompleted(ctx, key, "session-a", "Alex")

		assert.ErrorIs(t, err, errs.ErrStoreUnavailable)
		f.uow.AssertCalled(t, "Rollback", txCtx)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should roll back when the release fails", func(t *testing.T) {
		ctx := context.Background()
		f := newCatalogFixture(fixedTime)
		txCtx := context.WithValue(context.Background(), struct{ k string }{"tx"}, true)

		txCompletions := new(persistence.MockCompletionRepository)
		txReservations := new(persistence.MockReservationRepository)

		f.oracle.On("Location").Return(time.UTC)
		f.portfolios.On("GetByID", ctx, uint64(1)).Return(&entity.Portfolio{ID: 1}, nil)
		f.uow.On("Begin", ctx).Return(txCtx, nil)
		f.uow.On("GetCompletionRepository", txCtx).Return(txCompletions)
		f.uow.On("GetReservationRepository", txCtx).Return(txReservations)
		f.uow.On("Rollback", txCtx).Return(nil)

		txCompletions.On("Mark", txCtx, mock.Anything).Return(nil)
		txReservations.On("ReleaseAll", txCtx, key).Return(int64(0), errs.ErrStoreUnavailable)

		err := f.service.MarkCompleted(ctx, key, "session-a", "Alex")

		assert.ErrorIs(t, err, errs.ErrStoreUnavailable)
		f.uow.AssertCalled(t, "Rollback", txCtx)
	})

	t.Run("should reject an unknown portfolio", func(t *testing.T) {
		ctx := context.Background()
		f := newCatalogFixture(fixedTime)

		f.portfolios.On("GetByID", ctx, uint64(1)).Return(nil, errs.ErrPortfolioNotFound)

		err := f.service.MarkCompleted(ctx, key, "session-a", "Alex")

		assert.ErrorIs(t, err, errs.ErrPortfolioNotFound)
		f.uow.AssertNotCalled(t, "Begin")
	})

	t.Run("should reject an empty marker name", func(t *testing.T) {
		ctx := context.Background()
		f := newCatalogFixture(fixedTime)

		err := f.service.MarkCompleted(ctx, key, "session-a", " ")

		assert.ErrorIs(t, err, errs.ErrInvalidOwnerName)
		f.portfolios.AssertNotCalled(t, "GetByID")
	})

	t.Run("should reject an empty session", func(t *testing.T) {
		ctx := context.Background()
		f := newCatalogFixture(fixedTime)

		err := f.service.MarkCompleted(ctx, key, "  ", "Alex")

		assert.ErrorIs(t, err, errs.ErrInvalidSessionID)
		f.portfolios.AssertNotCalled(t, "GetByID")
	})
}

func TestService_RecordObservation(t *testing.T) {
	fixedTime := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	key := entity.SlotKey{PortfolioID: 1, Hour: 14}

	t.Run("should record when the session holds the slot", func(t *testing.T) {
		ctx := context.Background()
		f := newCatalogFixture(fixedTime)

		held := &entity.Reservation{
			PortfolioID: 1, Hour: 14, SessionID: "session-a",
			ExpiresAt: fixedTime.Add(time.Hour),
		}
		f.oracle.On("CurrentHour").Return(14)
		f.reservations.On("FindLiveBySession", ctx, "session-a", 14, fixedTime).Return(held, nil)
		f.observations.On("Create", ctx, mock.MatchedBy(func(o *entity.Observation) bool {
			return o.PortfolioID == 1 && o.Hour == 14 && o.IssuePresent &&
				o.RecordedBy == "Alex" && o.SessionID == "session-a"
		})).Return(nil)

		observation, err := f.service.RecordObservation(ctx, key, "session-a", "Alex", true)

		assert.NoError(t, err)
		assert.NotNil(t, observation)
		assert.True(t, observation.IssuePresent)
		f.observations.AssertExpectations(t)
	})

	t.Run("should refuse when the session holds nothing", func(t *testing.T) {
		ctx := context.Background()
		f := newCatalogFixture(fixedTime)

		f.oracle.On("CurrentHour").Return(14)
		f.reservations.On("FindLiveBySession", ctx, "session-a", 14, fixedTime).
			Return(nil, errs.ErrReservationNotFound)

		_, err := f.service.RecordObservation(ctx, key, "session-a", "Alex", false)

		assert.ErrorIs(t, err, errs.ErrNotHolder)
		f.observations.AssertNotCalled(t, "Create")
	})

	t.Run("should refuse when the session holds a different slot", func(t *testing.T) {
		ctx := context.Background()
		f := newCatalogFixture(fixedTime)

		other := &entity.Reservation{
			PortfolioID: 2, Hour: 14, SessionID: "session-a",
			ExpiresAt: fixedTime.Add(time.Hour),
		}
		f.oracle.On("CurrentHour").Return(14)
		f.reservations.On("FindLiveBySession", ctx, "session-a", 14, fixedTime).Return(other, nil)

		_, err := f.service.RecordObservation(ctx, key, "session-a", "Alex", false)

		assert.ErrorIs(t, err, errs.ErrNotHolder)
		f.observations.AssertNotCalled(t, "Create")
	})

	t.Run("should refuse a rolled-over hour", func(t *testing.T) {
		ctx := context.Background()
		f := newCatalogFixture(fixedTime)

		f.oracle.On("CurrentHour").Return(15)

		_, err := f.service.RecordObservation(ctx, key, "session-a", "Alex", false)

		assert.ErrorIs(t, err, errs.ErrHourRolledOver)
		f.reservations.AssertNotCalled(t, "FindLiveBySession")
	})

	t.Run("should validate session and recorder", func(t *testing.T) {
		ctx := context.Background()
		f := newCatalogFixture(fixedTime)

		_, err := f.service.RecordObservation(ctx, key, "", "Alex", false)
		assert.ErrorIs(t, err, errs.ErrInvalidSessionID)

		_, err = f.service.RecordObservation(ctx, key, "session-a", " ", false)
		assert.ErrorIs(t, err, errs.ErrInvalidOwnerName)
	})
}

func TestService_PortfolioExists(t *testing.T) {
	fixedTime := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	t.Run("should report true for an existing portfolio", func(t *testing.T) {
		ctx := context.Background()
		f := newCatalogFixture(fixedTime)

		f.portfolios.On("GetByID", ctx, uint64(1)).Return(&entity.Portfolio{ID: 1}, nil)

		exists, err := f.service.PortfolioExists(ctx, 1)

		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("should report false for a missing portfolio", func(t *testing.T) {
		ctx := context.Background()
		f := newCatalogFixture(fixedTime)

		f.portfolios.On("GetByID", ctx, uint64(9)).Return(nil, errs.ErrPortfolioNotFound)

		exists, err := f.service.PortfolioExists(ctx, 9)

		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("should reject a zero ID", func(t *testing.T) {
		ctx := context.Background()
		f := newCatalogFixture(fixedTime)

		_, err := f.service.PortfolioExists(ctx, 0)

		assert.ErrorIs(t, err, errs.ErrInvalidPortfolioID)
		f.portfolios.AssertNotCalled(t, "GetByID")
	})
}

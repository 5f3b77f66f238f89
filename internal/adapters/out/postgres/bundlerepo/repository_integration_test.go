package bundlerepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/bundlerepo"
	"dispatch/internal/core/domain/model/bundle"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id int64, aggregate any) {
	m.Called(id, aggregate)
}

// BundleRepositoryIntegrationTestSuite provides integration tests for BundleRepository
// using PostgreSQL containers to verify database persistence behavior.
type BundleRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *bundlerepo.GormBundleRepository
	tracker    *MockAggregateTracker
}

func (suite *BundleRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&bundlerepo.BundleDTO{}))
}

func (suite *BundleRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE bundles").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = bundlerepo.NewGormBundleRepository(suite.db, suite.tracker)
}

func (suite *BundleRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *BundleRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrips() {
	ctx := context.Background()

	original := suite.createTestBundle(1, 7, courier.CategoryBike)
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.Courier(), retrieved.Courier())
	suite.Equal(original.InitCategory(), retrieved.InitCategory())
	suite.True(retrieved.AssignTime().Equal(original.AssignTime()))
	suite.False(retrieved.IsCompleted())
	suite.False(retrieved.IsDeleted())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *BundleRepositoryIntegrationTestSuite) TestGet_NonExistentBundle_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, 99)

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *BundleRepositoryIntegrationTestSuite) TestUpdate_FinalizationRoundTrips() {
	ctx := context.Background()

	aggregate := suite.createTestBundle(1, 7, courier.CategoryBike)
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	completeTime := aggregate.AssignTime().Add(30 * time.Minute)
	earning, err := aggregate.Finalize(completeTime)
	suite.Require().NoError(err)
	suite.Equal(2500, earning)
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.IsCompleted())
	suite.False(retrieved.IsDeleted())
	suite.Equal(2500, retrieved.Earning())
	suite.Require().NotNil(retrieved.CompleteTime())
	suite.True(retrieved.CompleteTime().Equal(completeTime))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *BundleRepositoryIntegrationTestSuite) TestUpdate_VoidRoundTrips() {
	ctx := context.Background()

	aggregate := suite.createTestBundle(1, 7, courier.CategoryFoot)
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(aggregate.Void())
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.IsCompleted())
	suite.True(retrieved.IsDeleted())
	suite.Equal(0, retrieved.Earning())
	suite.Nil(retrieved.CompleteTime())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *BundleRepositoryIntegrationTestSuite) TestGetActiveByCourier_ReturnsMostRecentOpenBundle() {
	ctx := context.Background()

	finalized := suite.createTestBundle(1, 7, courier.CategoryBike)
	_, err := finalized.Finalize(finalized.AssignTime().Add(10 * time.Minute))
	suite.Require().NoError(err)

	open := suite.createTestBundle(2, 7, courier.CategoryBike)
	foreign := suite.createTestBundle(3, 8, courier.CategoryCar)

	for _, aggregate := range []*bundle.Bundle{finalized, open, foreign} {
		suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()
		suite.Require().NoError(suite.repository.Add(ctx, aggregate))
	}

	active, err := suite.repository.GetActiveByCourier(ctx, 7)
	suite.Require().NoError(err)
	suite.Equal(int64(2), active.ID())
}

func (suite *BundleRepositoryIntegrationTestSuite) TestGetActiveByCourier_NoOpenBundle_ReturnsNotFoundError() {
	ctx := context.Background()

	finalized := suite.createTestBundle(1, 7, courier.CategoryBike)
	_, err := finalized.Finalize(finalized.AssignTime().Add(10 * time.Minute))
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", finalized.ID(), finalized).Once()
	suite.Require().NoError(suite.repository.Add(ctx, finalized))

	active, err := suite.repository.GetActiveByCourier(ctx, 7)

	suite.Nil(active)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *BundleRepositoryIntegrationTestSuite) TestNextID_EmptyTable_ReturnsOne() {
	ctx := context.Background()

	next, err := suite.repository.NextID(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(1), next)
}

func (suite *BundleRepositoryIntegrationTestSuite) TestNextID_ReturnsMaxPlusOne() {
	ctx := context.Background()

	aggregate := suite.createTestBundle(41, 7, courier.CategoryBike)
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	next, err := suite.repository.NextID(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(42), next)
}

// createTestBundle builds an open bundle with a fixed assignment timestamp.
func (suite *BundleRepositoryIntegrationTestSuite) createTestBundle(
	id, courierID int64, category courier.Category,
) *bundle.Bundle {
	assignTime := time.Date(2021, 1, 10, 9, 32, 14, 0, time.UTC)

	aggregate, err := bundle.NewBundle(id, courierID, category, assignTime)
	suite.Require().NoError(err)

	return aggregate
}

func TestBundleRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(BundleRepositoryIntegrationTestSuite))
}

package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/bundlerepo"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/statrepo"
	"dispatch/internal/core/domain/model/bundle"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&courierrepo.CourierDTO{},
		&orderrepo.OrderDTO{},
		&bundlerepo.BundleDTO{},
		&statrepo.RegionStatDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE couriers, orders, bundles, region_stats").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates isolated instances
// that each expose all four repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.CourierRepository())
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.BundleRepository())
	suite.NotNil(uow1.RegionStatRepository())
	suite.NotNil(uow2.CourierRepository())
}

// TestUnitOfWork_TransactionLifecycle verifies begin, commit, and rollback.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies commit and rollback fail without
// an active transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)

	err = uow.Rollback(ctx)
	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

// TestUnitOfWork_DispatchWorkflow persists a courier, a bundle, and the
// assigned order within one committed transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DispatchWorkflow() {
	ctx := context.Background()
	uow := suite.factory.Create()

	assignee := suite.createTestCourier(7)
	pending := suite.createTestOrder(1)
	assignTime := time.Date(2021, 1, 10, 9, 32, 14, 0, time.UTC)

	newBundle, err := bundle.NewBundle(1, assignee.ID(), assignee.Category(), assignTime)
	suite.Require().NoError(err)
	suite.Require().NoError(pending.Assign(assignee.ID(), newBundle.ID(), assignTime))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CourierRepository().Add(ctx, assignee))
	suite.Require().NoError(uow.BundleRepository().Add(ctx, newBundle))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, pending))
	suite.Require().NoError(uow.Commit(ctx))

	verification := suite.factory.Create()
	persisted, err := verification.OrderRepository().Get(ctx, pending.ID())
	suite.Require().NoError(err)
	suite.True(persisted.IsAssigned())
	suite.Require().NotNil(persisted.Bundle())
	suite.Equal(newBundle.ID(), *persisted.Bundle())

	active, err := verification.BundleRepository().GetActiveByCourier(ctx, assignee.ID())
	suite.Require().NoError(err)
	suite.Equal(newBundle.ID(), active.ID())
}

// TestUnitOfWork_Rollback verifies no partial state survives a rollback.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_Rollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	assignee := suite.createTestCourier(7)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CourierRepository().Add(ctx, assignee))
	suite.Require().NoError(uow.Rollback(ctx))

	var count int64
	suite.Require().NoError(suite.db.Model(&courierrepo.CourierDTO{}).Count(&count).Error)
	suite.Equal(int64(0), count)
}

// TestUnitOfWork_NextIDInsideTransaction verifies id reservation sees rows
// inserted earlier in the same transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_NextIDInsideTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()
	assignTime := time.Date(2021, 1, 10, 9, 32, 14, 0, time.UTC)

	suite.Require().NoError(uow.Begin(ctx))

	first, err := uow.BundleRepository().NextID(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(1), first)

	newBundle, err := bundle.NewBundle(first, 7, courier.CategoryBike, assignTime)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.BundleRepository().Add(ctx, newBundle))

	second, err := uow.BundleRepository().NextID(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(2), second)

	suite.Require().NoError(uow.Commit(ctx))
}

// TestUnitOfWork_WithoutTransaction verifies repositories work against the
// base connection when no transaction is open.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	assignee := suite.createTestCourier(7)
	suite.Require().NoError(uow.CourierRepository().Add(ctx, assignee))

	persisted, err := uow.CourierRepository().Get(ctx, assignee.ID())
	suite.Require().NoError(err)
	suite.Equal(assignee.ID(), persisted.ID())
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestCourier(id int64) *courier.Courier {
	window, err := kernel.TimeWindowFromString("09:00-18:00")
	suite.Require().NoError(err)

	aggregate, err := courier.NewCourier(id, courier.CategoryBike, []int{1}, []kernel.TimeWindow{window})
	suite.Require().NoError(err)
	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder(id int64) *order.Order {
	window, err := kernel.TimeWindowFromString("10:00-14:00")
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(id, 5, 1, []kernel.TimeWindow{window})
	suite.Require().NoError(err)
	return aggregate
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

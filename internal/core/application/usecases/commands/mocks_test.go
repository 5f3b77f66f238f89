package commands_test

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/bundle"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/stats"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCourierRepository) Get(ctx context.Context, id int64) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetAllUnassigned(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetActiveByCourier(ctx context.Context, courierID int64) ([]*order.Order, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}
func (m *MockOrderRepository) GetAllInBundle(ctx context.Context, bundleID int64) ([]*order.Order, error) {
	args := m.Called(ctx, bundleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockBundleRepository struct{ mock.Mock }

func (m *MockBundleRepository) Add(ctx context.Context, b *bundle.Bundle) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBundleRepository) Update(ctx context.Context, b *bundle.Bundle) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBundleRepository) Get(ctx context.Context, id int64) (*bundle.Bundle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bundle.Bundle), args.Error(1)
}
func (m *MockBundleRepository) GetActiveByCourier(ctx context.Context, courierID int64) (*bundle.Bundle, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bundle.Bundle), args.Error(1)
}
func (m *MockBundleRepository) NextID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockRegionStatRepository struct{ mock.Mock }

func (m *MockRegionStatRepository) Add(ctx context.Context, s *stats.RegionStat) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockRegionStatRepository) Update(ctx context.Context, s *stats.RegionStat) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockRegionStatRepository) Get(ctx context.Context, courierID int64, region int) (*stats.RegionStat, error) {
	args := m.Called(ctx, courierID, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stats.RegionStat), args.Error(1)
}
func (m *MockRegionStatRepository) GetAllByCourier(ctx context.Context, courierID int64) ([]*stats.RegionStat, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stats.RegionStat), args.Error(1)
}

// MockUoW satisfies every unit-of-work flavor the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}
func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockUoW) BundleRepository() ports.BundleRepository {
	args := m.Called()
	return args.Get(0).(ports.BundleRepository)
}
func (m *MockUoW) RegionStatRepository() ports.RegionStatRepository {
	args := m.Called()
	return args.Get(0).(ports.RegionStatRepository)
}

type MockCourierUoWFactory struct{ mock.Mock }

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDispatchUoWFactory struct{ mock.Mock }

func (m *MockDispatchUoWFactory) Create() commands.DispatchUoW {
	args := m.Called()
	return args.Get(0).(commands.DispatchUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

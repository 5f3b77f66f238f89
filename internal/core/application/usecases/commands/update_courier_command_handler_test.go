package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateCourierCommandHandler_Handle_ReleasesAndVoidsBundle(t *testing.T) {
	ctx := t.Context()
	courierRepo, orderRepo, bundleRepo, _, uow, factory := completionMocks()

	assignee := buildCourier(t, 7, courier.CategoryBike, []int{1, 2})
	released := buildAssignedOrder(t, 10, 1, 1, 7, 3)
	activeBundle := buildBundle(t, 3, 7, courier.CategoryBike)

	cmd, err := commands.NewUpdateCourierCommand(7, nil, []int{2}, nil)
	require.NoError(t, err)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		courierRepo.On("Get", ctx, int64(7)).Return(assignee, nil).Once(),
		orderRepo.On("GetActiveByCourier", ctx, int64(7)).Return([]*order.Order{released}, nil).Once(),
		orderRepo.On("Update", ctx, released).Return(nil).Once(),
		uow.On("BundleRepository").Return(bundleRepo).Once(),
		bundleRepo.On("GetActiveByCourier", ctx, int64(7)).Return(activeBundle, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllInBundle", ctx, int64(3)).Return([]*order.Order{}, nil).Once(),
		bundleRepo.On("Update", ctx, activeBundle).Return(nil).Once(),
		courierRepo.On("Update", ctx, assignee).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateCourierCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, []int{2}, assignee.Regions())
	assert.False(t, released.IsAssigned())
	assert.True(t, activeBundle.IsCompleted())
	assert.True(t, activeBundle.IsDeleted())
	assert.Equal(t, 0, activeBundle.Earning())
	assert.Equal(t, 0, assignee.Earnings())
	uow.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	bundleRepo.AssertExpectations(t)
}

func TestUpdateCourierCommandHandler_Handle_FinalizesWhenOnlyCompletedRemain(t *testing.T) {
	ctx := t.Context()
	courierRepo, orderRepo, bundleRepo, statRepo, uow, factory := completionMocks()

	assignee := buildCourier(t, 7, courier.CategoryBike, []int{1, 2})
	released := buildAssignedOrder(t, 10, 1, 1, 7, 3)
	completed := buildAssignedOrder(t, 9, 1, 2, 7, 3)
	completionTime := assignTime.Add(20 * time.Minute)
	require.NoError(t, completed.Complete(completionTime, 1200))
	activeBundle := buildBundle(t, 3, 7, courier.CategoryBike)

	cmd, err := commands.NewUpdateCourierCommand(7, nil, []int{2}, nil)
	require.NoError(t, err)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		courierRepo.On("Get", ctx, int64(7)).Return(assignee, nil).Once(),
		orderRepo.On("GetActiveByCourier", ctx, int64(7)).Return([]*order.Order{released}, nil).Once(),
		orderRepo.On("Update", ctx, released).Return(nil).Once(),
		uow.On("BundleRepository").Return(bundleRepo).Once(),
		bundleRepo.On("GetActiveByCourier", ctx, int64(7)).Return(activeBundle, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllInBundle", ctx, int64(3)).Return([]*order.Order{completed}, nil).Once(),
		bundleRepo.On("Update", ctx, activeBundle).Return(nil).Once(),
		uow.On("RegionStatRepository").Return(statRepo).Once(),
		statRepo.On("GetAllByCourier", ctx, int64(7)).Return(mustStats(t, 7, 2, 1200), nil).Once(),
		courierRepo.On("Update", ctx, assignee).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateCourierCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.True(t, activeBundle.IsCompleted())
	assert.False(t, activeBundle.IsDeleted())
	require.NotNil(t, activeBundle.CompleteTime())
	assert.True(t, activeBundle.CompleteTime().Equal(completionTime))
	assert.Equal(t, 2500, assignee.Earnings())
	// (3600 - 1200) / 3600 * 5 = 3.33
	assert.Equal(t, 3.33, assignee.Rating())
	uow.AssertExpectations(t)
}

func TestUpdateCourierCommandHandler_Handle_NoReleasesSkipsBundleCheck(t *testing.T) {
	ctx := t.Context()
	courierRepo, orderRepo, bundleRepo, _, uow, factory := completionMocks()

	assignee := buildCourier(t, 7, courier.CategoryBike, []int{1})
	kept := buildAssignedOrder(t, 10, 1, 1, 7, 3)

	cmd, err := commands.NewUpdateCourierCommand(7, nil, nil, []string{"08:00-15:00"})
	require.NoError(t, err)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		courierRepo.On("Get", ctx, int64(7)).Return(assignee, nil).Once(),
		orderRepo.On("GetActiveByCourier", ctx, int64(7)).Return([]*order.Order{kept}, nil).Once(),
		courierRepo.On("Update", ctx, assignee).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateCourierCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.True(t, kept.IsAssigned())
	bundleRepo.AssertNotCalled(t, "GetActiveByCourier", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestUpdateCourierCommandHandler_Handle_CourierNotFound(t *testing.T) {
	ctx := t.Context()
	courierRepo, orderRepo, _, _, uow, factory := completionMocks()

	cmd, err := commands.NewUpdateCourierCommand(7, strPtr("car"), nil, nil)
	require.NoError(t, err)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		courierRepo.On("Get", ctx, int64(7)).Return(nil, errs.NewObjectNotFoundError("courierID", int64(7))).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateCourierCommandHandler(factory)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

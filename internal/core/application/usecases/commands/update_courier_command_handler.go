package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// UpdateCourierCommandHandler handles partial updates of a courier's matching
// attributes and the reassignment cascade they trigger.
//
// For each changed attribute the courier's active orders are revalidated and
// the failing ones released back to the unassigned pool. Afterwards the
// courier's active bundle is settled: voided if the cascade emptied it before
// any order completed, finalized normally if only completed orders remain.
// The attribute change, the releases and the bundle settlement commit as one
// transaction.
type UpdateCourierCommandHandler struct {
	uowFactory UoWFactory
}

// NewUpdateCourierCommandHandler creates a handler for courier updates.
// Requires a UoWFactory reaching all four repositories, since settling a
// bundle may credit earnings and recompute the rating.
func NewUpdateCourierCommandHandler(uowFactory UoWFactory) UpdateCourierCommandHandler {
	return UpdateCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the courier update.
// Returns errs.ObjectNotFoundError when the courier does not exist.
func (h UpdateCourierCommandHandler) Handle(ctx context.Context, cmd UpdateCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	assignee, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	active, err := orderRepo.GetActiveByCourier(ctx, assignee.ID())
	if err != nil {
		return err
	}

	released, err := h.applyAndCascade(assignee, active, cmd)
	if err != nil {
		return err
	}

	for _, o := range released {
		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
	}

	if len(released) > 0 {
		if err = h.settleBundle(ctx, uow, assignee); err != nil {
			return err
		}
	}

	if err = courierRepo.Update(ctx, assignee); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// applyAndCascade applies each requested attribute change to the aggregate
// and runs the matching cascade over the orders that are still assigned.
func (h UpdateCourierCommandHandler) applyAndCascade(
	assignee *courier.Courier,
	active []*order.Order,
	cmd UpdateCourierCommand,
) ([]*order.Order, error) {
	cascade := services.NewReassignmentCascade()
	var released []*order.Order

	if cmd.Category() != nil {
		if err := assignee.ChangeCategory(*cmd.Category()); err != nil {
			return nil, err
		}
		dropped, err := cascade.OnCategoryChange(assignee, active)
		if err != nil {
			return nil, err
		}
		released = append(released, dropped...)
		active = stillAssigned(active)
	}

	if cmd.Regions() != nil {
		if err := assignee.ChangeRegions(cmd.Regions()); err != nil {
			return nil, err
		}
		dropped, err := cascade.OnRegionsChange(assignee, active)
		if err != nil {
			return nil, err
		}
		released = append(released, dropped...)
		active = stillAssigned(active)
	}

	if cmd.WorkingHours() != nil {
		if err := assignee.ChangeWorkingHours(cmd.WorkingHours()); err != nil {
			return nil, err
		}
		dropped, err := cascade.OnWorkingHoursChange(assignee, active)
		if err != nil {
			return nil, err
		}
		released = append(released, dropped...)
	}

	return released, nil
}

// settleBundle runs the post-cascade check on the courier's active bundle:
// void when emptied, finalize when only completed orders remain. The released
// orders must already be persisted so the bundle membership query reflects
// them.
func (h UpdateCourierCommandHandler) settleBundle(
	ctx context.Context,
	uow UoW,
	assignee *courier.Courier,
) error {
	bundleRepo := uow.BundleRepository()

	activeBundle, err := bundleRepo.GetActiveByCourier(ctx, assignee.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	remaining, err := uow.OrderRepository().GetAllInBundle(ctx, activeBundle.ID())
	if err != nil {
		return err
	}

	if len(remaining) == 0 {
		if err = activeBundle.Void(); err != nil {
			return err
		}
		return bundleRepo.Update(ctx, activeBundle)
	}

	if !allCompleted(remaining) {
		return nil
	}

	earning, err := activeBundle.Finalize(latestCompletion(remaining))
	if err != nil {
		return err
	}
	if err = bundleRepo.Update(ctx, activeBundle); err != nil {
		return err
	}
	if err = assignee.CreditEarnings(earning); err != nil {
		return err
	}

	courierStats, err := uow.RegionStatRepository().GetAllByCourier(ctx, assignee.ID())
	if err != nil {
		return err
	}
	return assignee.UpdateRating(services.NewDeliveryMetrics().Rating(courierStats))
}

func stillAssigned(orders []*order.Order) []*order.Order {
	result := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if o.IsAssigned() {
			result = append(result, o)
		}
	}
	return result
}

func latestCompletion(orders []*order.Order) time.Time {
	var latest time.Time
	for _, o := range orders {
		if o.CompleteTime() != nil && o.CompleteTime().After(latest) {
			latest = *o.CompleteTime()
		}
	}
	return latest
}

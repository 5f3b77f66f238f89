package commands

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/bundle"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/stats"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// CompleteOrderCommandHandler handles the delivery-completion workflow.
//
// Completion verifies the caller owns the order, derives the delivery
// duration through DeliveryMetrics, folds it into the (courier, region)
// statistic, and, when the whole bundle is delivered, finalizes the bundle:
// earnings credited and the courier rating recomputed, all in one
// transaction.
//
// An order already completed by the stated courier is reported as success
// without mutating anything, so completion requests are safe to retry.
//
// Example:
//
//	handler := NewCompleteOrderCommandHandler(uowFactory)
//	cmd, _ := NewCompleteOrderCommand(orderID, courierID, completeTime)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown order
//	case errors.Is(err, errs.ErrConflict):
//	    // order not assigned to this courier
//	case errors.Is(err, services.ErrCompletionOutOfOrder):
//	    // completion timestamp precedes the bundle's reference point
//	}
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCompleteOrderCommandHandler creates a handler for completion reports.
// Requires a UoWFactory reaching all four repositories, since finalization
// touches the courier, the bundle and the statistics.
func NewCompleteOrderCommandHandler(uowFactory UoWFactory) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the completion report.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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

	orderRepo := uow.OrderRepository()

	completing, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !completing.AssignedTo(cmd.CourierID()) {
		return errs.NewConflictErrorWithCause("order",
			fmt.Errorf("order %d is not assigned to courier %d", cmd.OrderID(), cmd.CourierID()))
	}

	// Retry guard: reporting the same completion twice succeeds without
	// touching durations, statistics or earnings again.
	if completing.IsCompleted() {
		return uow.Commit(ctx)
	}

	bundleRepo := uow.BundleRepository()
	inBundle, err := bundleRepo.Get(ctx, *completing.Bundle())
	if err != nil {
		return err
	}

	siblings, err := orderRepo.GetAllInBundle(ctx, inBundle.ID())
	if err != nil {
		return err
	}
	siblings = withoutOrder(siblings, completing.ID())

	metrics := services.NewDeliveryMetrics()
	duration, err := metrics.DeliveryDuration(inBundle, siblings, cmd.CompleteTime())
	if err != nil {
		return err
	}

	if err = completing.Complete(cmd.CompleteTime(), duration); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, completing); err != nil {
		return err
	}

	if err = h.observeDelivery(ctx, uow, completing, duration); err != nil {
		return err
	}

	if allCompleted(siblings) {
		if err = h.finalizeBundle(ctx, uow, inBundle, cmd); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// observeDelivery folds the delivery duration into the (courier, region)
// statistic, creating it on the first completion for the pair.
func (h CompleteOrderCommandHandler) observeDelivery(
	ctx context.Context,
	uow UoW,
	completed *order.Order,
	duration float64,
) error {
	statRepo := uow.RegionStatRepository()

	stat, err := statRepo.Get(ctx, *completed.Courier(), completed.Region())
	if errors.Is(err, errs.ErrObjectNotFound) {
		stat, err = stats.NewRegionStat(*completed.Courier(), completed.Region(), duration)
		if err != nil {
			return err
		}
		return statRepo.Add(ctx, stat)
	}
	if err != nil {
		return err
	}

	if err = stat.Observe(duration); err != nil {
		return err
	}
	return statRepo.Update(ctx, stat)
}

// finalizeBundle closes the bundle whose last order just completed, credits
// the earning computed from the category snapshot and recomputes the rating.
func (h CompleteOrderCommandHandler) finalizeBundle(
	ctx context.Context,
	uow UoW,
	inBundle *bundle.Bundle,
	cmd CompleteOrderCommand,
) error {
	earning, err := inBundle.Finalize(cmd.CompleteTime())
	if err != nil {
		return err
	}
	if err = uow.BundleRepository().Update(ctx, inBundle); err != nil {
		return err
	}

	courierRepo := uow.CourierRepository()
	assignee, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if err = assignee.CreditEarnings(earning); err != nil {
		return err
	}

	courierStats, err := uow.RegionStatRepository().GetAllByCourier(ctx, cmd.CourierID())
	if err != nil {
		return err
	}
	if err = assignee.UpdateRating(services.NewDeliveryMetrics().Rating(courierStats)); err != nil {
		return err
	}

	return courierRepo.Update(ctx, assignee)
}

func withoutOrder(orders []*order.Order, id int64) []*order.Order {
	result := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if o.ID() != id {
			result = append(result, o)
		}
	}
	return result
}

func allCompleted(orders []*order.Order) bool {
	for _, o := range orders {
		if !o.IsCompleted() {
			return false
		}
	}
	return true
}

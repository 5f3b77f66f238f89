package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order intake.
// New orders start unassigned and enter the pool scanned by the assignment
// workflow.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order intake operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// Uses a transaction to ensure the order is properly persisted or rolled back
// on error.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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
	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.Weight(), cmd.Region(), cmd.DeliveryHours())
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

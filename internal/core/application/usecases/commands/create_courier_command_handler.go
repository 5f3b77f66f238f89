package commands

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
)

// CreateCourierCommandHandler handles the business logic for courier registration.
//
// Example:
//
//	handler := NewCreateCourierCommandHandler(uowFactory)
//	cmd, _ := NewCreateCourierCommand(1, "foot", []int{1}, []string{"09:00-18:00"})
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("courier creation failed: %w", err)
//	}
type CreateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewCreateCourierCommandHandler creates a handler for courier registration.
// Requires a CourierUoWFactory for transactional persistence.
func NewCreateCourierCommandHandler(uowFactory CourierUoWFactory) CreateCourierCommandHandler {
	return CreateCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the courier creation command.
// Uses a transaction to ensure the courier is properly persisted or rolled
// back on error.
func (h *CreateCourierCommandHandler) Handle(ctx context.Context, cmd CreateCourierCommand) error {
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
	newCourier, err := courier.NewCourier(cmd.CourierID(), cmd.Category(), cmd.Regions(), cmd.WorkingHours())
	if err != nil {
		return err
	}

	if err = courierRepo.Add(ctx, newCourier); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

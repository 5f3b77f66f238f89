package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/services"
)

// DispatchOrdersCommandHandler orchestrates the assignment workflow.
//
// The handler answers repeated requests for the same courier idempotently:
// while the courier still has uncompleted assigned orders, it returns the
// existing bundle's orders and assignment timestamp instead of packing a new
// bundle. Otherwise it scans the unassigned pool through the AssignmentEngine
// and persists the new bundle, the mutated orders and nothing else as one
// transaction.
//
// Example:
//
//	handler := NewDispatchOrdersCommandHandler(uowFactory)
//	cmd, _ := NewDispatchOrdersCommand(courierID)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("assignment failed: %w", err)
//	}
//	if result.AssignTime == nil {
//	    log.Println("no compatible orders")
//	}
type DispatchOrdersCommandHandler struct {
	uowFactory DispatchUoWFactory
}

// NewDispatchOrdersCommandHandler creates a handler for assignment requests.
// Requires a DispatchUoWFactory for coordinating transactional updates across
// the courier, order and bundle repositories.
func NewDispatchOrdersCommandHandler(uowFactory DispatchUoWFactory) DispatchOrdersCommandHandler {
	return DispatchOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment request.
// Returns errs.ObjectNotFoundError when the courier does not exist. An empty
// result is a normal outcome, not an error.
func (h DispatchOrdersCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchOrdersCommand,
) (DispatchOrdersResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchOrdersResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DispatchOrdersResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()
	bundleRepo := uow.BundleRepository()

	assignee, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return DispatchOrdersResult{}, err
	}

	// Idempotency: a courier with uncompleted assigned orders keeps its
	// current bundle; repeated requests are safe to retry.
	active, err := orderRepo.GetActiveByCourier(ctx, assignee.ID())
	if err != nil {
		return DispatchOrdersResult{}, err
	}
	if len(active) > 0 {
		currentBundle, err := bundleRepo.GetActiveByCourier(ctx, assignee.ID())
		if err != nil {
			return DispatchOrdersResult{}, err
		}

		result := DispatchOrdersResult{AssignTime: timePtr(currentBundle.AssignTime())}
		for _, o := range active {
			result.OrderIDs = append(result.OrderIDs, o.ID())
		}
		if err = uow.Commit(ctx); err != nil {
			return DispatchOrdersResult{}, err
		}
		return result, nil
	}

	pool, err := orderRepo.GetAllUnassigned(ctx)
	if err != nil {
		return DispatchOrdersResult{}, err
	}

	bundleID, err := bundleRepo.NextID(ctx)
	if err != nil {
		return DispatchOrdersResult{}, err
	}

	assignTime := time.Now().UTC()
	newBundle, accepted, err := services.NewAssignmentEngine().Assemble(assignee, pool, bundleID, assignTime)
	if err != nil {
		return DispatchOrdersResult{}, err
	}

	if newBundle == nil {
		if err = uow.Commit(ctx); err != nil {
			return DispatchOrdersResult{}, err
		}
		return DispatchOrdersResult{}, nil
	}

	if err = bundleRepo.Add(ctx, newBundle); err != nil {
		return DispatchOrdersResult{}, err
	}

	result := DispatchOrdersResult{AssignTime: timePtr(assignTime)}
	for _, o := range accepted {
		if err = orderRepo.Update(ctx, o); err != nil {
			return DispatchOrdersResult{}, err
		}
		result.OrderIDs = append(result.OrderIDs, o.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return DispatchOrdersResult{}, err
	}

	return result, nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}

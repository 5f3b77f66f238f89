package commands

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrDispatchOrdersCommandIsNotConstructed = errors.New(
		"DispatchOrdersCommand must be created via NewDispatchOrdersCommand constructor",
	)
)

// DispatchOrdersCommand represents a courier's request to be assigned a
// bundle of orders.
type DispatchOrdersCommand struct { //nolint:recvcheck //using for validation
	courierID int64

	guard guard.ConstructorGuard
}

// NewDispatchOrdersCommand creates a command requesting assignment for the
// given courier.
func NewDispatchOrdersCommand(courierID int64) (DispatchOrdersCommand, error) {
	if courierID <= 0 {
		return DispatchOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause("courierID",
			fmt.Errorf("%d is not greater than 0", courierID))
	}

	return DispatchOrdersCommand{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrDispatchOrdersCommandIsNotConstructed if validation fails.
func (c DispatchOrdersCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrdersCommandIsNotConstructed)
}

// CourierID returns the courier requesting assignment.
func (c DispatchOrdersCommand) CourierID() int64 {
	return c.courierID
}

// DispatchOrdersResult is the outcome of an assignment request: the ids of
// the orders in the courier's bundle and the shared assignment timestamp.
// An empty result (no ids, nil timestamp) means nothing matched, which is a
// normal outcome.
type DispatchOrdersResult struct {
	OrderIDs   []int64
	AssignTime *time.Time
}

package commands

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCompleteOrderCommandIsNotConstructed = errors.New(
		"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
	)
)

// CompleteOrderCommand represents a courier reporting a delivered order. The
// completion timestamp is supplied by the caller, not read from the clock.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      int64
	courierID    int64
	completeTime time.Time

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand creates a command marking the order delivered by
// the given courier at the given time.
func NewCompleteOrderCommand(orderID, courierID int64, completeTime time.Time) (CompleteOrderCommand, error) {
	completeCommand := CompleteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		completeCommand.setOrderID(orderID),
		completeCommand.setCourierID(courierID),
		completeCommand.setCompleteTime(completeTime),
	); err != nil {
		return CompleteOrderCommand{}, err
	}

	return completeCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteOrderCommandIsNotConstructed if validation fails.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// OrderID returns the delivered order's identifier.
func (c CompleteOrderCommand) OrderID() int64 {
	return c.orderID
}

// CourierID returns the reporting courier's identifier.
func (c CompleteOrderCommand) CourierID() int64 {
	return c.courierID
}

// CompleteTime returns the caller-supplied completion timestamp.
func (c CompleteOrderCommand) CompleteTime() time.Time {
	return c.completeTime
}

func (c *CompleteOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderID",
			fmt.Errorf("%d is not greater than 0", orderID))
	}

	c.orderID = orderID
	return nil
}

func (c *CompleteOrderCommand) setCourierID(courierID int64) error {
	if courierID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("courierID",
			fmt.Errorf("%d is not greater than 0", courierID))
	}

	c.courierID = courierID
	return nil
}

func (c *CompleteOrderCommand) setCompleteTime(completeTime time.Time) error {
	if completeTime.IsZero() {
		return errs.NewValueIsRequiredError("completeTime")
	}

	c.completeTime = completeTime
	return nil
}

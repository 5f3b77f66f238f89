package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to register a new delivery order.
// The delivery-hour strings are parsed at construction, so a command that
// constructed successfully carries only validated domain values.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(42, 3.5, 12, []string{"10:00-14:00"})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       int64
	weight        float64
	region        int
	deliveryHours []kernel.TimeWindow

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order,
// parsing the delivery-hour strings. Returns an error if any field fails
// validation.
func NewCreateOrderCommand(
	orderID int64,
	weight float64,
	region int,
	deliveryHours []string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setWeight(weight),
		orderCommand.setRegion(region),
		orderCommand.setDeliveryHours(deliveryHours),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier supplied for the new order.
func (c CreateOrderCommand) OrderID() int64 {
	return c.orderID
}

// Weight returns the order weight.
func (c CreateOrderCommand) Weight() float64 {
	return c.weight
}

// Region returns the delivery region identifier.
func (c CreateOrderCommand) Region() int {
	return c.region
}

// DeliveryHours returns the parsed delivery windows.
func (c CreateOrderCommand) DeliveryHours() []kernel.TimeWindow {
	return c.deliveryHours
}

func (c *CreateOrderCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderID",
			fmt.Errorf("%d is not greater than 0", orderID))
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setWeight(weight float64) error {
	// Bounds are re-checked by the aggregate; rejecting non-positive weight
	// here keeps the error close to the caller's input.
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%f is not greater than 0", weight))
	}

	c.weight = weight
	return nil
}

func (c *CreateOrderCommand) setRegion(region int) error {
	if region < 0 {
		return errs.NewValueIsInvalidErrorWithCause("region",
			fmt.Errorf("%d is negative", region))
	}

	c.region = region
	return nil
}

func (c *CreateOrderCommand) setDeliveryHours(deliveryHours []string) error {
	if len(deliveryHours) == 0 {
		return order.ErrDeliveryHoursAreRequired
	}

	windows := make([]kernel.TimeWindow, 0, len(deliveryHours))
	for _, raw := range deliveryHours {
		window, err := kernel.TimeWindowFromString(raw)
		if err != nil {
			return err
		}
		windows = append(windows, window)
	}

	c.deliveryHours = windows
	return nil
}

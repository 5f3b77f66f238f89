package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

const (
	// weightMin and weightMax bound an order's weight as accepted by intake.
	weightMin = 0.01
	weightMax = 50.0
)

// Domain errors for order operations.
var (
	// ErrDeliveryHoursAreRequired is returned when an order is created without delivery hours.
	ErrDeliveryHoursAreRequired = errs.NewValueIsRequiredError("deliveryHours")
	// ErrOrderIsNotConstructed is returned when using an improperly initialized Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrOrderAlreadyAssigned is returned when assigning an order that is already in a bundle.
	ErrOrderAlreadyAssigned = errors.New("order is already assigned")
	// ErrOrderNotAssigned is returned when releasing or completing an order that is not assigned.
	ErrOrderNotAssigned = errors.New("order is not assigned")
	// ErrOrderAlreadyCompleted is returned when mutating an order that has already been delivered.
	ErrOrderAlreadyCompleted = errors.New("order is already completed")
)

// Order represents a delivery order in the system. It is the aggregate root
// that manages the order lifecycle from intake through assignment to
// completion.
//
// Lifecycle: an order is created unassigned, enters a bundle through
// assignment (courier reference, bundle reference and a shared assignment
// timestamp set together), may be released back to the pool by the
// reassignment cascade, and is eventually completed with its delivery
// duration recorded. Orders are never deleted.
//
// Order follows these invariants:
//   - Positive identifier, weight within intake bounds, non-negative region
//   - At least one delivery-hour window
//   - At most one live bundle reference at any time
//   - Completion is final; completed orders cannot be released or reassigned
type Order struct {
	// id is the externally supplied unique identifier.
	id int64

	// weight is the order weight counted against the courier's capacity.
	weight float64

	// region is the delivery region identifier.
	region int

	// deliveryHours are the windows during which delivery is acceptable.
	deliveryHours []kernel.TimeWindow

	// courierID references the assigned courier (nil while unassigned).
	courierID *int64

	// assigned mirrors courierID for the unassigned-pool queries.
	assigned bool

	// assignTime is the shared timestamp of the assigning dispatch call.
	assignTime *time.Time

	// bundleID references the bundle the order was accepted into.
	bundleID *int64

	// completed marks a delivered order.
	completed bool

	// completeTime is the delivery timestamp supplied by the caller.
	completeTime *time.Time

	// deliverySeconds is the derived delivery duration.
	deliverySeconds *float64

	// isConstructed ensures the order was created via NewOrder or RestoreOrder.
	isConstructed bool
}

// NewOrder creates a new unassigned Order with validation.
func NewOrder(id int64, weight float64, region int, deliveryHours []kernel.TimeWindow) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setWeight(weight),
		order.setRegion(region),
		order.setDeliveryHours(deliveryHours),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence, including assignment
// and completion state. The assignment fields must be set or unset together.
func RestoreOrder(
	id int64,
	weight float64,
	region int,
	deliveryHours []kernel.TimeWindow,
	courierID *int64,
	assignTime *time.Time,
	bundleID *int64,
	completed bool,
	completeTime *time.Time,
	deliverySeconds *float64,
) (*Order, error) {
	order, err := NewOrder(id, weight, region, deliveryHours)
	if err != nil {
		return nil, err
	}

	assigned := courierID != nil
	if assigned != (assignTime != nil) || assigned != (bundleID != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("order",
			fmt.Errorf("courier, bundle and assign time of order %d must be set together", id))
	}
	if completed && !assigned {
		return nil, errs.NewValueIsInvalidErrorWithCause("order",
			fmt.Errorf("completed order %d has no assignment", id))
	}

	order.courierID = courierID
	order.assigned = assigned
	order.assignTime = assignTime
	order.bundleID = bundleID
	order.completed = completed
	order.completeTime = completeTime
	order.deliverySeconds = deliverySeconds
	return order, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed otherwise.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() int64 {
	return o.id
}

// Weight returns the order's weight.
func (o *Order) Weight() float64 {
	return o.weight
}

// Region returns the delivery region identifier.
func (o *Order) Region() int {
	return o.region
}

// DeliveryHours returns the acceptable delivery windows.
func (o *Order) DeliveryHours() []kernel.TimeWindow {
	return slices.Clone(o.deliveryHours)
}

// Courier returns the assigned courier's ID, or nil while unassigned.
func (o *Order) Courier() *int64 {
	return o.courierID
}

// IsAssigned reports whether the order currently belongs to a bundle.
func (o *Order) IsAssigned() bool {
	return o.assigned
}

// AssignTime returns the shared assignment timestamp, or nil while unassigned.
func (o *Order) AssignTime() *time.Time {
	return o.assignTime
}

// Bundle returns the bundle the order was accepted into, or nil.
func (o *Order) Bundle() *int64 {
	return o.bundleID
}

// IsCompleted reports whether the order has been delivered.
func (o *Order) IsCompleted() bool {
	return o.completed
}

// CompleteTime returns the delivery timestamp, or nil.
func (o *Order) CompleteTime() *time.Time {
	return o.completeTime
}

// DeliverySeconds returns the derived delivery duration, or nil.
func (o *Order) DeliverySeconds() *float64 {
	return o.deliverySeconds
}

// AssignedTo reports whether the order is currently assigned to the given courier.
func (o *Order) AssignedTo(courierID int64) bool {
	return o.assigned && o.courierID != nil && *o.courierID == courierID
}

// Assign places the order into a bundle. The assignment timestamp is shared
// by every order accepted in the same dispatch call.
func (o *Order) Assign(courierID, bundleID int64, assignTime time.Time) error {
	if o.completed {
		return ErrOrderAlreadyCompleted
	}
	if o.assigned {
		return ErrOrderAlreadyAssigned
	}

	o.courierID = &courierID
	o.assigned = true
	o.assignTime = &assignTime
	o.bundleID = &bundleID
	return nil
}

// Release returns the order to the unassigned pool, clearing the courier
// reference, assignment timestamp and bundle reference. Used by the
// reassignment cascade; released orders are not auto-reassigned.
func (o *Order) Release() error {
	if o.completed {
		return ErrOrderAlreadyCompleted
	}
	if !o.assigned {
		return ErrOrderNotAssigned
	}

	o.courierID = nil
	o.assigned = false
	o.assignTime = nil
	o.bundleID = nil
	return nil
}

// Complete marks the order delivered, recording the completion timestamp and
// the derived delivery duration. Completion is final.
func (o *Order) Complete(completeTime time.Time, deliverySeconds float64) error {
	if o.completed {
		return ErrOrderAlreadyCompleted
	}
	if !o.assigned {
		return ErrOrderNotAssigned
	}
	if deliverySeconds < 0 {
		return errs.NewValueIsInvalidErrorWithCause("deliverySeconds",
			fmt.Errorf("%f is negative", deliverySeconds))
	}

	o.completed = true
	o.completeTime = &completeTime
	o.deliverySeconds = &deliverySeconds
	return nil
}

// setID validates and sets the order's identifier.
// This is a private method used only during construction.
func (o *Order) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("%d is not greater than 0", id))
	}
	o.id = id
	return nil
}

func (o *Order) setWeight(weight float64) error {
	if weight < weightMin || weight > weightMax {
		return errs.NewValueIsOutOfRangeError("weight", weight, weightMin, weightMax)
	}
	o.weight = weight
	return nil
}

func (o *Order) setRegion(region int) error {
	if region < 0 {
		return errs.NewValueIsInvalidErrorWithCause("region",
			fmt.Errorf("%d is negative", region))
	}
	o.region = region
	return nil
}

func (o *Order) setDeliveryHours(deliveryHours []kernel.TimeWindow) error {
	if len(deliveryHours) == 0 {
		return ErrDeliveryHoursAreRequired
	}
	for _, window := range deliveryHours {
		if err := window.Validate(); err != nil {
			return err
		}
	}
	o.deliveryHours = slices.Clone(deliveryHours)
	return nil
}

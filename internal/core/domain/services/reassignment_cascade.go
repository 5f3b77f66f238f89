package services

import (
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// ReassignmentCascade is a domain service that revalidates a courier's active
// orders after one of the courier's matching attributes changed. Orders that
// no longer qualify are released back to the unassigned pool; released orders
// are not auto-reassigned.
//
// The courier aggregate must already carry the new attribute value when a
// cascade method runs. Each method mutates the failing orders via Release and
// returns them so the application handler can persist the changes and run the
// post-cascade bundle check.
type ReassignmentCascade struct{}

// NewReassignmentCascade creates a new ReassignmentCascade instance.
func NewReassignmentCascade() ReassignmentCascade {
	return ReassignmentCascade{}
}

// OnCategoryChange re-checks the cumulative weight of the courier's active
// orders against the new capacity. The orders keep their existing relative
// order; the leading ones that still fit stay assigned, each subsequent order
// that would push the total past the capacity is released.
func (c ReassignmentCascade) OnCategoryChange(
	assignee *courier.Courier,
	active []*order.Order,
) ([]*order.Order, error) {
	return c.release(assignee, active, func(o *order.Order, carried float64) bool {
		return carried+o.Weight() > assignee.Capacity()
	})
}

// OnRegionsChange releases every active order whose region is no longer in
// the courier's served set.
func (c ReassignmentCascade) OnRegionsChange(
	assignee *courier.Courier,
	active []*order.Order,
) ([]*order.Order, error) {
	return c.release(assignee, active, func(o *order.Order, _ float64) bool {
		return !assignee.ServesRegion(o.Region())
	})
}

// OnWorkingHoursChange releases every active order with no delivery-hour
// window overlapping the courier's new working hours.
func (c ReassignmentCascade) OnWorkingHoursChange(
	assignee *courier.Courier,
	active []*order.Order,
) ([]*order.Order, error) {
	return c.release(assignee, active, func(o *order.Order, _ float64) bool {
		return !kernel.AnyOverlap(o.DeliveryHours(), assignee.WorkingHours())
	})
}

// release walks the active orders in their given order, releasing those the
// predicate rejects. Orders that stay assigned accumulate into the carried
// weight handed to the predicate.
func (c ReassignmentCascade) release(
	assignee *courier.Courier,
	active []*order.Order,
	reject func(o *order.Order, carried float64) bool,
) ([]*order.Order, error) {
	if err := assignee.Validate(); err != nil {
		return nil, err
	}

	var (
		released []*order.Order
		carried  float64
	)

	for _, o := range active {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if o.IsCompleted() {
			continue
		}

		if !reject(o, carried) {
			carried += o.Weight()
			continue
		}

		if err := o.Release(); err != nil {
			return nil, err
		}
		released = append(released, o)
	}

	return released, nil
}

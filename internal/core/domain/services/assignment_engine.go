package services

import (
	"cmp"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/bundle"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// AssignmentEngine is a domain service that packs unassigned orders into a new
// bundle for one courier.
//
// Key responsibilities:
//   - Filtering candidate orders by region, weight and time-window overlap
//   - Packing accepted orders first-fit under the courier's capacity
//   - Stamping all accepted orders with one shared assignment timestamp
//
// Business rules:
//   - Candidates are scanned in ascending order id, never reordered by value
//   - An order too heavy for the remaining capacity is skipped, not queued;
//     later, lighter orders may still be accepted
//   - The packing is first-fit greedy with no backtracking. Repeated runs over
//     the same pool produce the same bundle, which the callers rely on
//
// The engine does not touch persistence and does not handle the idempotency
// check for couriers that already hold an active bundle; the application
// handler answers those from the repositories before calling Assemble.
type AssignmentEngine struct{}

// NewAssignmentEngine creates a new AssignmentEngine instance.
func NewAssignmentEngine() AssignmentEngine {
	return AssignmentEngine{}
}

// Assemble packs compatible orders from the unassigned pool into a new bundle
// owned by the courier, snapshotting the courier's category.
//
// Parameters:
//   - assignee: the courier requesting orders (must be valid)
//   - unassigned: the pool of unassigned orders to scan
//   - bundleID: the identifier reserved for the bundle if one is created
//   - assignTime: the shared assignment timestamp for this invocation
//
// Returns:
//   - *bundle.Bundle: the created bundle, or nil when no order matched
//   - []*order.Order: the accepted orders, mutated to their assigned state
//   - error: validation errors from the courier or any candidate order
//
// A nil bundle with no error is the normal empty outcome, not a failure.
func (e AssignmentEngine) Assemble(
	assignee *courier.Courier,
	unassigned []*order.Order,
	bundleID int64,
	assignTime time.Time,
) (*bundle.Bundle, []*order.Order, error) {
	if err := assignee.Validate(); err != nil {
		return nil, nil, err
	}

	for _, candidate := range unassigned {
		if err := candidate.Validate(); err != nil {
			return nil, nil, err
		}
	}

	candidates := slices.Clone(unassigned)
	slices.SortFunc(candidates, func(a, b *order.Order) int {
		return cmp.Compare(a.ID(), b.ID())
	})

	remaining := assignee.Capacity()
	var accepted []*order.Order

	for _, candidate := range candidates {
		if !assignee.ServesRegion(candidate.Region()) {
			continue
		}
		if candidate.Weight() > remaining {
			continue
		}
		if !kernel.AnyOverlap(candidate.DeliveryHours(), assignee.WorkingHours()) {
			continue
		}

		if err := candidate.Assign(assignee.ID(), bundleID, assignTime); err != nil {
			return nil, nil, err
		}
		remaining -= candidate.Weight()
		accepted = append(accepted, candidate)
	}

	if len(accepted) == 0 {
		return nil, nil, nil
	}

	newBundle, err := bundle.NewBundle(bundleID, assignee.ID(), assignee.Category(), assignTime)
	if err != nil {
		return nil, nil, err
	}

	return newBundle, accepted, nil
}

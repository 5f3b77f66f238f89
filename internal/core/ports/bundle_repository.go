package ports

import (
	"context"

	"dispatch/internal/core/domain/model/bundle"
)

// BundleRepository defines the persistence contract for bundle aggregates.
type BundleRepository interface {
	// Add persists a new bundle aggregate to storage.
	Add(ctx context.Context, aggregate *bundle.Bundle) error

	// Update persists changes to an existing bundle aggregate.
	Update(ctx context.Context, aggregate *bundle.Bundle) error

	// Get retrieves a bundle aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such bundle exists.
	Get(ctx context.Context, id int64) (*bundle.Bundle, error)

	// GetActiveByCourier retrieves the courier's active bundle: the
	// most-recently-created bundle that is not completed. Returns
	// errs.ObjectNotFoundError when the courier has no active bundle.
	GetActiveByCourier(ctx context.Context, courierID int64) (*bundle.Bundle, error)

	// NextID reserves the identifier for the next bundle: the highest
	// existing id plus one, or 1 when no bundles exist. Must be called
	// inside the transaction that inserts the bundle.
	NextID(ctx context.Context) (int64, error)
}

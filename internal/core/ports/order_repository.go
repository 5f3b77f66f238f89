package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetAllUnassigned retrieves the pool of orders with no courier, ordered
	// by ascending identifier. The ordering is part of the contract: the
	// packing scan depends on it for determinism.
	GetAllUnassigned(ctx context.Context) ([]*order.Order, error)

	// GetActiveByCourier retrieves the orders assigned to the courier and not
	// yet completed, ordered by ascending identifier.
	GetActiveByCourier(ctx context.Context, courierID int64) ([]*order.Order, error)

	// GetAllInBundle retrieves every order referencing the bundle, completed
	// or not, ordered by ascending identifier.
	GetAllInBundle(ctx context.Context, bundleID int64) ([]*order.Order, error)
}

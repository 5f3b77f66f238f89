// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// CourierRepoFactory provides access to the courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// BundleRepoFactory provides access to the bundle repository within a transaction.
	BundleRepoFactory interface {
		BundleRepository() ports.BundleRepository
	}

	// RegionStatRepoFactory provides access to the statistics repository within a transaction.
	RegionStatRepoFactory interface {
		RegionStatRepository() ports.RegionStatRepository
	}

	// CourierUoW manages transactions for courier-only operations.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	// CourierUoWFactory creates new courier unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DispatchUoW manages transactions for the assignment workflow, which
	// touches couriers, orders and bundles but never the statistics.
	DispatchUoW interface {
		TxManager
		CourierRepoFactory
		OrderRepoFactory
		BundleRepoFactory
	}

	// DispatchUoWFactory creates new dispatch unit of work instances.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// UoW manages transactions across all aggregates. Used by the completion
	// and courier-update workflows, which may finalize bundles and therefore
	// reach every repository.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   bundleRepo := uow.BundleRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		CourierRepoFactory
		OrderRepoFactory
		BundleRepoFactory
		RegionStatRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

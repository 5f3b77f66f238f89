package ports

import (
	"context"

	"dispatch/internal/core/domain/model/stats"
)

// RegionStatRepository defines the persistence contract for the per-(courier,
// region) delivery statistics.
type RegionStatRepository interface {
	// Add persists a new statistic created on the first completion for a
	// (courier, region) pair.
	Add(ctx context.Context, aggregate *stats.RegionStat) error

	// Update persists changes to an existing statistic.
	Update(ctx context.Context, aggregate *stats.RegionStat) error

	// Get retrieves the statistic for a (courier, region) pair. Returns
	// errs.ObjectNotFoundError when no completion has been recorded yet.
	Get(ctx context.Context, courierID int64, region int) (*stats.RegionStat, error)

	// GetAllByCourier retrieves every region statistic recorded for the
	// courier. Used by the rating computation.
	GetAllByCourier(ctx context.Context, courierID int64) ([]*stats.RegionStat, error)
}

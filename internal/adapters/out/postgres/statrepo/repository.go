package statrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/stats"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRegionStatRepository implements RegionStatRepository using GORM.
type GormRegionStatRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormRegionStatRepository creates a new GORM region statistic repository.
func NewGormRegionStatRepository(db *gorm.DB, tracker aggregateTracker) *GormRegionStatRepository {
	return &GormRegionStatRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves the statistic created on the first completion for a (courier, region) pair.
func (r *GormRegionStatRepository) Add(ctx context.Context, aggregate *stats.RegionStat) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.Courier(), aggregate)
	return nil
}

// Update saves an existing statistic to the database.
func (r *GormRegionStatRepository) Update(ctx context.Context, aggregate *stats.RegionStat) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.Courier(), aggregate)
	return nil
}

// Get retrieves the statistic for a (courier, region) pair.
func (r *GormRegionStatRepository) Get(ctx context.Context, courierID int64, region int) (*stats.RegionStat, error) {
	var dto RegionStatDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "courier_id = ? AND region = ?", courierID, region).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("regionStat", courierID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByCourier retrieves every region statistic recorded for the courier,
// ordered by region.
func (r *GormRegionStatRepository) GetAllByCourier(ctx context.Context, courierID int64) ([]*stats.RegionStat, error) {
	var dtos []RegionStatDTO
	if err := r.db.WithContext(ctx).
		Where("courier_id = ?", courierID).
		Order("region").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	result := make([]*stats.RegionStat, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, aggregate)
	}

	return result, nil
}

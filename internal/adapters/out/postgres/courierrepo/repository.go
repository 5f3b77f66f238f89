package courierrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCourierRepository implements CourierRepository using GORM.
type GormCourierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB, tracker aggregateTracker) *GormCourierRepository {
	return &GormCourierRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new courier to the database.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing courier to the database.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
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

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a courier by ID.
func (r *GormCourierRepository) Get(ctx context.Context, id int64) (*courier.Courier, error) {
	var dto CourierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

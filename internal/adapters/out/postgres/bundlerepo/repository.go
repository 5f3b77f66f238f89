package bundlerepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/bundle"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBundleRepository implements BundleRepository using GORM.
type GormBundleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormBundleRepository creates a new GORM bundle repository.
func NewGormBundleRepository(db *gorm.DB, tracker aggregateTracker) *GormBundleRepository {
	return &GormBundleRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new bundle to the database.
func (r *GormBundleRepository) Add(ctx context.Context, aggregate *bundle.Bundle) error {
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

// Update saves an existing bundle to the database.
func (r *GormBundleRepository) Update(ctx context.Context, aggregate *bundle.Bundle) error {
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

// Get retrieves a bundle by ID.
func (r *GormBundleRepository) Get(ctx context.Context, id int64) (*bundle.Bundle, error) {
	var dto BundleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bundle", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByCourier retrieves the courier's most recent non-completed bundle.
func (r *GormBundleRepository) GetActiveByCourier(ctx context.Context, courierID int64) (*bundle.Bundle, error) {
	var dto BundleDTO
	if err := r.db.WithContext(ctx).
		Where("courier_id = ? AND completed = ?", courierID, false).
		Order("id DESC").
		First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", courierID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// NextID reserves the identifier for the next bundle: the highest existing id
// plus one, or 1 when no bundles exist. The caller must hold the inserting
// transaction so concurrent dispatch calls cannot reserve the same id.
func (r *GormBundleRepository) NextID(ctx context.Context) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).
		Raw("SELECT COALESCE(MAX(id), 0) + 1 FROM bundles").
		Scan(&next).Error
	if err != nil {
		return 0, err
	}

	return next, nil
}

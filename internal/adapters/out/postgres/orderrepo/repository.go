package orderrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves an existing order to the database.
// Save writes every column, so a release clears the assignment columns.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
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

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllUnassigned retrieves the pool of orders with no courier, ordered by
// ascending identifier. The ordering matters: the packing scan depends on it.
func (r *GormOrderRepository) GetAllUnassigned(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("assigned = ?", false).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetActiveByCourier retrieves the orders assigned to the courier and not yet
// completed, ordered by ascending identifier.
func (r *GormOrderRepository) GetActiveByCourier(ctx context.Context, courierID int64) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("courier_id = ? AND completed = ?", courierID, false).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllInBundle retrieves every order referencing the bundle, completed or
// not, ordered by ascending identifier.
func (r *GormOrderRepository) GetAllInBundle(ctx context.Context, bundleID int64) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("bundle_id = ?", bundleID).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// toDomainAll converts a batch of DTOs, failing fast on the first bad row.
func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}

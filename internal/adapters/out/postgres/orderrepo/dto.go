// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// Handles conversion between the order aggregate and its relational representation,
// including the nullable assignment and completion columns.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The assignment columns (courier_id, assign_time, bundle_id) are set and
// cleared together; the assigned flag is denormalized for the pool queries.
type OrderDTO struct {
	ID              int64      `gorm:"primaryKey"`
	Weight          float64    `gorm:"type:decimal(10,2);not null"`
	Region          int        `gorm:"type:int;not null"`
	DeliveryHours   []string   `gorm:"serializer:json;type:jsonb;not null"`
	CourierID       *int64     `gorm:"index"`
	Assigned        bool       `gorm:"not null;default:false;index"`
	AssignTime      *time.Time `gorm:""`
	BundleID        *int64     `gorm:"index"`
	Completed       bool       `gorm:"not null;default:false"`
	CompleteTime    *time.Time `gorm:""`
	DeliverySeconds *float64   `gorm:"type:decimal(12,2)"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders" instead of "order_dtos".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(order *order.Order) OrderDTO {
	deliveryHours := make([]string, 0, len(order.DeliveryHours()))
	for _, window := range order.DeliveryHours() {
		deliveryHours = append(deliveryHours, window.String())
	}

	return OrderDTO{
		ID:              order.ID(),
		Weight:          order.Weight(),
		Region:          order.Region(),
		DeliveryHours:   deliveryHours,
		CourierID:       order.Courier(),
		Assigned:        order.IsAssigned(),
		AssignTime:      order.AssignTime(),
		BundleID:        order.Bundle(),
		Completed:       order.IsCompleted(),
		CompleteTime:    order.CompleteTime(),
		DeliverySeconds: order.DeliverySeconds(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	deliveryHours := make([]kernel.TimeWindow, 0, len(dto.DeliveryHours))
	for _, raw := range dto.DeliveryHours {
		window, err := kernel.TimeWindowFromString(raw)
		if err != nil {
			return nil, err
		}
		deliveryHours = append(deliveryHours, window)
	}

	return order.RestoreOrder(
		dto.ID,
		dto.Weight,
		dto.Region,
		deliveryHours,
		dto.CourierID,
		dto.AssignTime,
		dto.BundleID,
		dto.Completed,
		dto.CompleteTime,
		dto.DeliverySeconds,
	)
}

// Package courierrepo provides data transfer objects and mapping functions for courier persistence.
// This package implements the repository pattern for the courier domain aggregate, handling
// the conversion between domain entities and database representations.
package courierrepo

import (
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierDTO represents the database structure for persisting courier aggregates.
// Regions and working hours are stored as JSON columns; the working hours keep
// their wire format so read models can return them without remapping.
type CourierDTO struct {
	ID           int64    `gorm:"primaryKey"`
	Category     string   `gorm:"type:varchar(16);not null"`
	Regions      []int    `gorm:"serializer:json;type:jsonb;not null"`
	WorkingHours []string `gorm:"serializer:json;type:jsonb;not null"`
	Earnings     int      `gorm:"type:int;not null;default:0"`
	Rating       float64  `gorm:"type:decimal(4,2);not null;default:0"`
}

// TableName specifies the database table name for courier entities.
// Overrides GORM's default naming convention to use "couriers" instead of "courier_dtos".
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(courier *courier.Courier) CourierDTO {
	workingHours := make([]string, 0, len(courier.WorkingHours()))
	for _, window := range courier.WorkingHours() {
		workingHours = append(workingHours, window.String())
	}

	return CourierDTO{
		ID:           courier.ID(),
		Category:     courier.Category().String(),
		Regions:      courier.Regions(),
		WorkingHours: workingHours,
		Earnings:     courier.Earnings(),
		Rating:       courier.Rating(),
	}
}

// toDomain converts a database DTO to a courier domain aggregate.
// Reconstructs the aggregate including the derived earnings and rating state.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	category, err := courier.CategoryFromString(dto.Category)
	if err != nil {
		return nil, err
	}

	workingHours := make([]kernel.TimeWindow, 0, len(dto.WorkingHours))
	for _, raw := range dto.WorkingHours {
		window, windowErr := kernel.TimeWindowFromString(raw)
		if windowErr != nil {
			return nil, windowErr
		}
		workingHours = append(workingHours, window)
	}

	return courier.RestoreCourier(dto.ID, category, dto.Regions, workingHours, dto.Earnings, dto.Rating)
}

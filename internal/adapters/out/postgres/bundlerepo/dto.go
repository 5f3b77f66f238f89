// Package bundlerepo provides data transfer objects and mapping functions for bundle persistence.
// Bundles are never physically deleted; the deleted column marks voided ones.
package bundlerepo

import (
	"time"

	"dispatch/internal/core/domain/model/bundle"
	"dispatch/internal/core/domain/model/courier"
)

// BundleDTO represents the database structure for persisting bundle aggregates.
// Identifiers are allocated by the application (max plus one), not by the
// database, so the primary key carries no auto-increment.
type BundleDTO struct {
	ID           int64      `gorm:"primaryKey;autoIncrement:false"`
	CourierID    int64      `gorm:"not null;index"`
	InitCategory string     `gorm:"type:varchar(16);not null"`
	AssignTime   time.Time  `gorm:"not null"`
	Completed    bool       `gorm:"not null;default:false"`
	CompleteTime *time.Time `gorm:""`
	Earning      int        `gorm:"type:int;not null;default:0"`
	Deleted      bool       `gorm:"not null;default:false"`
}

// TableName specifies the database table name for bundle entities.
// Overrides GORM's default naming convention to use "bundles" instead of "bundle_dtos".
func (BundleDTO) TableName() string {
	return "bundles"
}

// fromDomain converts a bundle domain aggregate to its database representation.
func fromDomain(bundle *bundle.Bundle) BundleDTO {
	return BundleDTO{
		ID:           bundle.ID(),
		CourierID:    bundle.Courier(),
		InitCategory: bundle.InitCategory().String(),
		AssignTime:   bundle.AssignTime(),
		Completed:    bundle.IsCompleted(),
		CompleteTime: bundle.CompleteTime(),
		Earning:      bundle.Earning(),
		Deleted:      bundle.IsDeleted(),
	}
}

// toDomain converts a database DTO to a bundle domain aggregate.
func toDomain(dto BundleDTO) (*bundle.Bundle, error) {
	initCategory, err := courier.CategoryFromString(dto.InitCategory)
	if err != nil {
		return nil, err
	}

	return bundle.RestoreBundle(
		dto.ID,
		dto.CourierID,
		initCategory,
		dto.AssignTime,
		dto.Completed,
		dto.CompleteTime,
		dto.Earning,
		dto.Deleted,
	)
}

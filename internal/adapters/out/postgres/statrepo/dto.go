// Package statrepo provides data transfer objects and mapping functions for
// persisting the per-(courier, region) delivery statistics.
package statrepo

import (
	"dispatch/internal/core/domain/model/stats"
)

// RegionStatDTO represents the database structure for persisting delivery statistics.
// The (courier_id, region) pair forms the composite primary key.
type RegionStatDTO struct {
	CourierID      int64   `gorm:"primaryKey;autoIncrement:false"`
	Region         int     `gorm:"primaryKey;autoIncrement:false"`
	AverageSeconds float64 `gorm:"type:decimal(12,2);not null"`
}

// TableName specifies the database table name for region statistic entities.
// Overrides GORM's default naming convention to use "region_stats" instead of "region_stat_dtos".
func (RegionStatDTO) TableName() string {
	return "region_stats"
}

// fromDomain converts a statistic domain aggregate to its database representation.
func fromDomain(stat *stats.RegionStat) RegionStatDTO {
	return RegionStatDTO{
		CourierID:      stat.Courier(),
		Region:         stat.Region(),
		AverageSeconds: stat.AverageSeconds(),
	}
}

// toDomain converts a database DTO to a statistic domain aggregate.
func toDomain(dto RegionStatDTO) (*stats.RegionStat, error) {
	return stats.RestoreRegionStat(dto.CourierID, dto.Region, dto.AverageSeconds)
}

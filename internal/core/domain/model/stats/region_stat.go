// Package stats holds the per-(courier, region) delivery statistics that feed
// the courier rating.
package stats

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ErrRegionStatIsNotConstructed is returned when using an improperly initialized RegionStat.
var ErrRegionStatIsNotConstructed = errors.New("RegionStat must be created via NewRegionStat constructor")

// RegionStat tracks the running average delivery duration for one courier in
// one region. Created on the first completed order for the pair, updated on
// every completion afterwards, never deleted.
type RegionStat struct {
	courierID      int64
	region         int
	averageSeconds float64

	isConstructed bool
}

// NewRegionStat creates the statistic for a (courier, region) pair from its
// first delivery sample.
func NewRegionStat(courierID int64, region int, firstSampleSeconds float64) (*RegionStat, error) {
	if courierID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("courierID",
			fmt.Errorf("%d is not greater than 0", courierID))
	}
	if region < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("region",
			fmt.Errorf("%d is negative", region))
	}
	if firstSampleSeconds < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("firstSampleSeconds",
			fmt.Errorf("%f is negative", firstSampleSeconds))
	}

	return &RegionStat{
		courierID:      courierID,
		region:         region,
		averageSeconds: firstSampleSeconds,
		isConstructed:  true,
	}, nil
}

// RestoreRegionStat reconstructs a RegionStat from persistence.
func RestoreRegionStat(courierID int64, region int, averageSeconds float64) (*RegionStat, error) {
	return NewRegionStat(courierID, region, averageSeconds)
}

// Validate ensures the RegionStat instance was properly constructed.
func (s *RegionStat) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrRegionStatIsNotConstructed
	}
	return nil
}

// Courier returns the courier's identifier.
func (s *RegionStat) Courier() int64 {
	return s.courierID
}

// Region returns the region identifier.
func (s *RegionStat) Region() int {
	return s.region
}

// AverageSeconds returns the current running average delivery duration.
func (s *RegionStat) AverageSeconds() float64 {
	return s.averageSeconds
}

// Observe folds a new delivery duration into the running average using the
// fixed two-term blend (previous + sample) / 2. This is the business rule as
// shipped, not a cumulative mean over all samples.
func (s *RegionStat) Observe(sampleSeconds float64) error {
	if sampleSeconds < 0 {
		return errs.NewValueIsInvalidErrorWithCause("sampleSeconds",
			fmt.Errorf("%f is negative", sampleSeconds))
	}
	s.averageSeconds = (s.averageSeconds + sampleSeconds) / 2
	return nil
}

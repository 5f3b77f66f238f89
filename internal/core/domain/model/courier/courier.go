package courier

import (
	"errors"
	"fmt"
	"slices"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

const (
	// ratingMin and ratingMax bound the derived courier rating.
	ratingMin = 0.0
	ratingMax = 5.0
)

// Domain errors for courier operations.
var (
	// ErrRegionsAreRequired is returned when a courier is created or updated with no served regions.
	ErrRegionsAreRequired = errs.NewValueIsRequiredError("regions")
	// ErrWorkingHoursAreRequired is returned when a courier is created or updated with no working hours.
	ErrWorkingHoursAreRequired = errs.NewValueIsRequiredError("workingHours")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a delivery courier in the system.
// It is an aggregate root that manages courier identity, availability, and the
// derived earnings/rating state.
//
// Key responsibilities:
//   - Managing courier identity, category, served regions and working hours
//   - Accepting attribute updates that later drive the reassignment cascade
//   - Accumulating earnings credited at bundle finalization
//   - Carrying the rating derived from delivery history
//
// Business rules:
//   - Courier must have a positive identifier and a category from the capacity table
//   - At least one served region and one working-hour window are required
//   - Earnings are only ever credited, never debited or rewritten
//   - Rating stays within [0, 5] and is recomputed only on bundle finalization
type Courier struct {
	// id is the externally supplied unique identifier.
	id int64

	// category determines carry capacity and the earning coefficient.
	category Category

	// regions is the set of region identifiers the courier serves.
	regions []int

	// workingHours are the recurring daily windows the courier is available in.
	workingHours []kernel.TimeWindow

	// earnings is the cumulative amount credited on bundle finalization.
	earnings int

	// rating is derived from per-region delivery averages.
	rating float64

	// isConstructed ensures the courier was created via NewCourier or RestoreCourier.
	isConstructed bool
}

// NewCourier creates a new Courier with validation. This is the only way to
// create a valid Courier apart from RestoreCourier, which rebuilds one from
// persistence.
func NewCourier(id int64, category Category, regions []int, workingHours []kernel.TimeWindow) (*Courier, error) {
	courier := &Courier{
		isConstructed: true,
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setCategory(category),
		courier.setRegions(regions),
		courier.setWorkingHours(workingHours),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier reconstructs a Courier from persistence, including the
// derived earnings and rating state.
func RestoreCourier(
	id int64,
	category Category,
	regions []int,
	workingHours []kernel.TimeWindow,
	earnings int,
	rating float64,
) (*Courier, error) {
	courier, err := NewCourier(id, category, regions, workingHours)
	if err != nil {
		return nil, err
	}

	if earnings < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("earnings",
			fmt.Errorf("%d is negative", earnings))
	}
	if rating < ratingMin || rating > ratingMax {
		return nil, errs.NewValueIsOutOfRangeError("rating", rating, ratingMin, ratingMax)
	}

	courier.earnings = earnings
	courier.rating = rating
	return courier, nil
}

// Validate ensures the Courier instance was properly constructed.
// Returns ErrCourierIsNotConstructed otherwise.
func (c *Courier) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCourierIsNotConstructed
	}
	return nil
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() int64 {
	return c.id
}

// Category returns the courier's current category.
func (c *Courier) Category() Category {
	return c.category
}

// Regions returns the region identifiers the courier serves.
func (c *Courier) Regions() []int {
	return slices.Clone(c.regions)
}

// WorkingHours returns the courier's working-hour windows.
func (c *Courier) WorkingHours() []kernel.TimeWindow {
	return slices.Clone(c.workingHours)
}

// Earnings returns the courier's cumulative earnings.
func (c *Courier) Earnings() int {
	return c.earnings
}

// Rating returns the courier's current rating.
func (c *Courier) Rating() float64 {
	return c.rating
}

// ServesRegion reports whether the given region is in the courier's served set.
func (c *Courier) ServesRegion(region int) bool {
	return slices.Contains(c.regions, region)
}

// Capacity returns the carry capacity of the courier's current category.
func (c *Courier) Capacity() float64 {
	return c.category.Capacity()
}

// ChangeCategory replaces the courier's category. The caller is responsible
// for running the reassignment cascade afterwards: already accepted orders may
// no longer fit under the new capacity.
func (c *Courier) ChangeCategory(category Category) error {
	return c.setCategory(category)
}

// ChangeRegions replaces the courier's served regions. The caller is
// responsible for running the reassignment cascade afterwards.
func (c *Courier) ChangeRegions(regions []int) error {
	return c.setRegions(regions)
}

// ChangeWorkingHours replaces the courier's working hours. The caller is
// responsible for running the reassignment cascade afterwards.
func (c *Courier) ChangeWorkingHours(workingHours []kernel.TimeWindow) error {
	return c.setWorkingHours(workingHours)
}

// CreditEarnings adds a finalized bundle's earning to the courier's total.
// Crediting happens exactly once per bundle, at finalization.
func (c *Courier) CreditEarnings(amount int) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is not greater than 0", amount))
	}
	c.earnings += amount
	return nil
}

// UpdateRating replaces the courier's derived rating.
func (c *Courier) UpdateRating(rating float64) error {
	if rating < ratingMin || rating > ratingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, ratingMin, ratingMax)
	}
	c.rating = rating
	return nil
}

// setID validates and sets the courier's identifier.
// This is a private method used only during construction.
func (c *Courier) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("%d is not greater than 0", id))
	}
	c.id = id
	return nil
}

func (c *Courier) setCategory(category Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	c.category = category
	return nil
}

func (c *Courier) setRegions(regions []int) error {
	if len(regions) == 0 {
		return ErrRegionsAreRequired
	}
	for _, region := range regions {
		if region < 0 {
			return errs.NewValueIsInvalidErrorWithCause("regions",
				fmt.Errorf("region %d is negative", region))
		}
	}
	c.regions = slices.Clone(regions)
	return nil
}

func (c *Courier) setWorkingHours(workingHours []kernel.TimeWindow) error {
	if len(workingHours) == 0 {
		return ErrWorkingHoursAreRequired
	}
	for _, window := range workingHours {
		if err := window.Validate(); err != nil {
			return err
		}
	}
	c.workingHours = slices.Clone(workingHours)
	return nil
}

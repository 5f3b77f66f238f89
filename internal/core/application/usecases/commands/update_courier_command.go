package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrUpdateCourierCommandIsNotConstructed = errors.New(
		"UpdateCourierCommand must be created via NewUpdateCourierCommand constructor",
	)
	ErrNoAttributesToUpdate = errors.New("at least one attribute must be updated")
)

// UpdateCourierCommand represents a partial update of a courier's matching
// attributes. Nil fields stay unchanged; at least one must be present. Every
// changed attribute triggers the reassignment cascade for the courier's
// active orders.
type UpdateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID    int64
	category     *courier.Category
	regions      []int
	workingHours []kernel.TimeWindow

	guard guard.ConstructorGuard
}

// NewUpdateCourierCommand creates a partial-update command. The category and
// working-hour strings are parsed here; nil means the attribute is not
// updated, while a present but empty collection is rejected.
func NewUpdateCourierCommand(
	courierID int64,
	category *string,
	regions []int,
	workingHours []string,
) (UpdateCourierCommand, error) {
	updateCommand := UpdateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		updateCommand.setCourierID(courierID),
		updateCommand.setCategory(category),
		updateCommand.setRegions(regions),
		updateCommand.setWorkingHours(workingHours),
	); err != nil {
		return UpdateCourierCommand{}, err
	}

	if updateCommand.category == nil && updateCommand.regions == nil && updateCommand.workingHours == nil {
		return UpdateCourierCommand{}, ErrNoAttributesToUpdate
	}

	return updateCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateCourierCommandIsNotConstructed if validation fails.
func (c UpdateCourierCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierCommandIsNotConstructed)
}

// CourierID returns the courier being updated.
func (c UpdateCourierCommand) CourierID() int64 {
	return c.courierID
}

// Category returns the new category, or nil when unchanged.
func (c UpdateCourierCommand) Category() *courier.Category {
	return c.category
}

// Regions returns the new region set, or nil when unchanged.
func (c UpdateCourierCommand) Regions() []int {
	return c.regions
}

// WorkingHours returns the new working hours, or nil when unchanged.
func (c UpdateCourierCommand) WorkingHours() []kernel.TimeWindow {
	return c.workingHours
}

func (c *UpdateCourierCommand) setCourierID(courierID int64) error {
	if courierID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("courierID",
			fmt.Errorf("%d is not greater than 0", courierID))
	}

	c.courierID = courierID
	return nil
}

func (c *UpdateCourierCommand) setCategory(category *string) error {
	if category == nil {
		return nil
	}

	parsed, err := courier.CategoryFromString(*category)
	if err != nil {
		return err
	}

	c.category = &parsed
	return nil
}

func (c *UpdateCourierCommand) setRegions(regions []int) error {
	if regions == nil {
		return nil
	}
	if len(regions) == 0 {
		return courier.ErrRegionsAreRequired
	}

	c.regions = regions
	return nil
}

func (c *UpdateCourierCommand) setWorkingHours(workingHours []string) error {
	if workingHours == nil {
		return nil
	}
	if len(workingHours) == 0 {
		return courier.ErrWorkingHoursAreRequired
	}

	windows := make([]kernel.TimeWindow, 0, len(workingHours))
	for _, raw := range workingHours {
		window, err := kernel.TimeWindowFromString(raw)
		if err != nil {
			return err
		}
		windows = append(windows, window)
	}

	c.workingHours = windows
	return nil
}

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
	ErrCreateCourierCommandIsNotConstructed = errors.New(
		"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
	)
)

// CreateCourierCommand represents a request to register a new courier.
// The constructor parses the wire representations of the category and the
// working hours, so a command that constructed successfully carries only
// validated domain values.
//
// Example:
//
//	cmd, err := NewCreateCourierCommand(1, "bike", []int{1, 22}, []string{"09:00-18:00"})
//	if err != nil {
//	    return fmt.Errorf("invalid courier data: %w", err)
//	}
//
//	handler := NewCreateCourierCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create courier: %w", err)
//	}
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID    int64
	category     courier.Category
	regions      []int
	workingHours []kernel.TimeWindow

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand creates a command to register a new courier,
// parsing the category and working-hour strings. Returns an error if any
// field fails validation.
func NewCreateCourierCommand(
	courierID int64,
	category string,
	regions []int,
	workingHours []string,
) (CreateCourierCommand, error) {
	courierCommand := CreateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courierCommand.setCourierID(courierID),
		courierCommand.setCategory(category),
		courierCommand.setRegions(regions),
		courierCommand.setWorkingHours(workingHours),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return courierCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateCourierCommandIsNotConstructed if validation fails.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// CourierID returns the identifier supplied for the new courier.
func (c CreateCourierCommand) CourierID() int64 {
	return c.courierID
}

// Category returns the parsed courier category.
func (c CreateCourierCommand) Category() courier.Category {
	return c.category
}

// Regions returns the region identifiers the courier will serve.
func (c CreateCourierCommand) Regions() []int {
	return c.regions
}

// WorkingHours returns the parsed working-hour windows.
func (c CreateCourierCommand) WorkingHours() []kernel.TimeWindow {
	return c.workingHours
}

func (c *CreateCourierCommand) setCourierID(courierID int64) error {
	if courierID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("courierID",
			fmt.Errorf("%d is not greater than 0", courierID))
	}

	c.courierID = courierID
	return nil
}

func (c *CreateCourierCommand) setCategory(category string) error {
	parsed, err := courier.CategoryFromString(category)
	if err != nil {
		return err
	}

	c.category = parsed
	return nil
}

func (c *CreateCourierCommand) setRegions(regions []int) error {
	if len(regions) == 0 {
		return courier.ErrRegionsAreRequired
	}

	c.regions = regions
	return nil
}

func (c *CreateCourierCommand) setWorkingHours(workingHours []string) error {
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

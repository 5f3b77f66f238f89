package kernel

import (
	"fmt"
	"strings"
	"time"

	"dispatch/internal/pkg/errs"
)

const (
	// minutesPerDay bounds window endpoints: a window lives entirely within one
	// recurring day, expressed in minutes since midnight.
	minutesPerDay = 24 * 60
)

// ErrTimeWindowIsNotConstructed indicates that a TimeWindow was not properly
// initialized through one of the constructor functions. This error is returned
// when validating a zero-value TimeWindow.
var ErrTimeWindowIsNotConstructed = errs.NewValueIsRequiredError(
	"TimeWindow must be created via NewTimeWindow or TimeWindowFromString")

// TimeWindow is a value object representing a recurring daily half-open time
// interval, e.g. "09:00-18:00". Couriers carry them as working hours, orders
// as acceptable delivery hours. Only the interval semantics matter, not the
// calendar date: all windows are anchored to the same reference day.
//
// The zero value of TimeWindow is invalid and must be constructed using
// NewTimeWindow or TimeWindowFromString. TimeWindow is immutable and
// thread-safe, making it suitable for concurrent use.
type TimeWindow struct {
	start int // minutes since midnight, inclusive
	end   int // minutes since midnight, exclusive

	guard ConstructorGuard
}

// NewTimeWindow creates a TimeWindow from start and end offsets in minutes
// since midnight. The window must not be inverted (start < end) and both
// endpoints must lie within one day.
func NewTimeWindow(startMinutes, endMinutes int) (TimeWindow, error) {
	if startMinutes < 0 || startMinutes >= minutesPerDay {
		return TimeWindow{}, errs.NewValueIsOutOfRangeError("startMinutes", startMinutes, 0, minutesPerDay-1)
	}
	if endMinutes < 0 || endMinutes > minutesPerDay {
		return TimeWindow{}, errs.NewValueIsOutOfRangeError("endMinutes", endMinutes, 0, minutesPerDay)
	}
	if startMinutes >= endMinutes {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("timeWindow",
			fmt.Errorf("time inversion: start %d is not before end %d", startMinutes, endMinutes))
	}

	return TimeWindow{
		start: startMinutes,
		end:   endMinutes,
		guard: NewConstructorGuard(),
	}, nil
}

// TimeWindowFromString parses the wire format "HH:MM-HH:MM" used by courier
// working hours and order delivery hours.
func TimeWindowFromString(s string) (TimeWindow, error) {
	points := strings.Split(s, "-")
	if len(points) != 2 {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("timeWindow",
			fmt.Errorf("%q is not in HH:MM-HH:MM format", s))
	}

	start, err := time.Parse("15:04", points[0])
	if err != nil {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("timeWindow", err)
	}
	end, err := time.Parse("15:04", points[1])
	if err != nil {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("timeWindow", err)
	}

	return NewTimeWindow(start.Hour()*60+start.Minute(), end.Hour()*60+end.Minute())
}

// Start returns the window start in minutes since midnight.
func (w TimeWindow) Start() int {
	return w.start
}

// End returns the window end in minutes since midnight.
func (w TimeWindow) End() int {
	return w.end
}

// String returns the wire representation "HH:MM-HH:MM".
func (w TimeWindow) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", w.start/60, w.start%60, w.end/60, w.end%60)
}

// IsEqual compares two windows by their endpoints.
func (w TimeWindow) IsEqual(other TimeWindow) bool {
	return w.start == other.start && w.end == other.end
}

// Overlaps reports whether two windows share at least one instant.
// Touching endpoints do not count: "09:00-10:00" and "10:00-11:00" are disjoint.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.start < other.end && other.start < w.end
}

// Validate checks that the window was properly constructed.
// Returns ErrTimeWindowIsNotConstructed for a zero value.
func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}

// AnyOverlap reports whether at least one window from the first collection
// overlaps at least one window from the second. This is the availability check
// shared by order assignment and the reassignment cascade: an order can only
// go to a courier whose working hours intersect its delivery hours.
//
// Both collections are assumed to hold validated, non-inverted windows.
func AnyOverlap(a, b []TimeWindow) bool {
	for _, wa := range a {
		for _, wb := range b {
			if wa.Overlaps(wb) {
				return true
			}
		}
	}
	return false
}

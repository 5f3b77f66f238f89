// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetCourierQueryIsNotConstructed = errors.New(
		"GetCourierQuery must be created via NewGetCourierQuery constructor",
	)
)

// GetCourierQuery retrieves one courier's profile together with the derived
// earnings and rating.
//
// Example:
//
//	query, _ := NewGetCourierQuery(courierID)
//	handler := NewGetCourierQueryHandler(db)
//
//	courier, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown courier
//	}
type GetCourierQuery struct {
	courierID int64

	guard guard.ConstructorGuard
}

// NewGetCourierQuery creates a query for the given courier.
func NewGetCourierQuery(courierID int64) (GetCourierQuery, error) {
	if courierID <= 0 {
		return GetCourierQuery{}, errs.NewValueIsInvalidErrorWithCause("courierID",
			fmt.Errorf("%d is not greater than 0", courierID))
	}

	return GetCourierQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCourierQueryIsNotConstructed if validation fails.
func (q GetCourierQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierQueryIsNotConstructed)
}

// CourierID returns the requested courier's identifier.
func (q GetCourierQuery) CourierID() int64 {
	return q.courierID
}

// GetCourierQueryResponse represents a courier in the read model, with the
// working hours in their wire format.
type GetCourierQueryResponse struct {
	ID           int64
	Category     string
	Regions      []int
	WorkingHours []string
	Earnings     int
	Rating       float64
}

package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var (
	ErrGetUnassignedOrdersQueryIsNotConstructed = errors.New(
		"GetUnassignedOrdersQuery must be created via NewGetUnassignedOrdersQuery constructor",
	)
)

// GetUnassignedOrdersQuery retrieves the backlog of orders awaiting
// assignment. Used by the backlog monitor job and operational tooling.
type GetUnassignedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUnassignedOrdersQuery creates a query for the unassigned backlog.
// This is a parameterless query that fetches the whole pool.
func NewGetUnassignedOrdersQuery() GetUnassignedOrdersQuery {
	return GetUnassignedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetUnassignedOrdersQueryIsNotConstructed if validation fails.
func (q GetUnassignedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnassignedOrdersQueryIsNotConstructed)
}

// GetUnassignedOrdersQueryResponse represents one backlog order in the read model.
type GetUnassignedOrdersQueryResponse struct {
	ID     int64
	Weight float64
	Region int
}

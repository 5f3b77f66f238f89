package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetUnassignedOrdersQueryHandler retrieves the unassigned-order backlog.
type GetUnassignedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUnassignedOrdersQueryHandler creates a handler for backlog queries.
// Requires a GORM database connection for query execution.
func NewGetUnassignedOrdersQueryHandler(db *gorm.DB) GetUnassignedOrdersQueryHandler {
	return GetUnassignedOrdersQueryHandler{db: db}
}

// Handle executes the backlog query.
// Returns the unassigned orders sorted by ascending identifier, the same
// order the assignment scan uses.
func (h GetUnassignedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUnassignedOrdersQuery,
) ([]GetUnassignedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	backlog := make([]GetUnassignedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			weight,
			region
		FROM orders
		WHERE assigned = false
		ORDER BY id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetUnassignedOrdersQueryResponse

		if err = rows.Scan(&item.ID, &item.Weight, &item.Region); err != nil {
			return nil, err
		}
		backlog = append(backlog, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return backlog, nil
}

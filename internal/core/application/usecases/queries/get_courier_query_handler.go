package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetCourierQueryHandler retrieves courier read models from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetCourierQueryHandler struct {
	db *gorm.DB
}

// NewGetCourierQueryHandler creates a handler for courier retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetCourierQueryHandler(db *gorm.DB) GetCourierQueryHandler {
	return GetCourierQueryHandler{db: db}
}

// Handle executes the query for one courier.
// Returns errs.ObjectNotFoundError when the courier does not exist.
func (h GetCourierQueryHandler) Handle(
	ctx context.Context,
	query GetCourierQuery,
) (GetCourierQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			category,
			regions,
			working_hours,
			earnings,
			rating
		FROM couriers
		WHERE id = ?
	`, query.CourierID()).Row()

	var (
		response     GetCourierQueryResponse
		regions      []byte
		workingHours []byte
	)

	err := row.Scan(
		&response.ID,
		&response.Category,
		&regions,
		&workingHours,
		&response.Earnings,
		&response.Rating,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetCourierQueryResponse{}, errs.NewObjectNotFoundError("courierID", query.CourierID())
	}
	if err != nil {
		return GetCourierQueryResponse{}, err
	}

	if err = json.Unmarshal(regions, &response.Regions); err != nil {
		return GetCourierQueryResponse{}, err
	}
	if err = json.Unmarshal(workingHours, &response.WorkingHours); err != nil {
		return GetCourierQueryResponse{}, err
	}

	return response, nil
}

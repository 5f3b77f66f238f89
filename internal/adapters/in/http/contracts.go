package http

// Wire types for the dispatch HTTP API. Hours travel as "HH:MM-HH:MM"
// strings, timestamps as RFC3339.

// CreateCouriersRequest is the bulk courier intake payload.
type CreateCouriersRequest struct {
	Data []CourierItem `json:"data"`
}

// CourierItem is one courier in the bulk intake payload.
type CourierItem struct {
	CourierID    int64    `json:"courier_id"`
	CourierType  string   `json:"courier_type"`
	Regions      []int    `json:"regions"`
	WorkingHours []string `json:"working_hours"`
}

// CreateOrdersRequest is the bulk order intake payload.
type CreateOrdersRequest struct {
	Data []OrderItem `json:"data"`
}

// OrderItem is one order in the bulk intake payload.
type OrderItem struct {
	OrderID       int64    `json:"order_id"`
	Weight        float64  `json:"weight"`
	Region        int      `json:"region"`
	DeliveryHours []string `json:"delivery_hours"`
}

// IDRef carries a single identifier in list responses.
type IDRef struct {
	ID int64 `json:"id"`
}

// IDList wraps accepted or rejected identifier lists.
type IDList struct {
	Couriers []IDRef `json:"couriers,omitempty"`
	Orders   []IDRef `json:"orders,omitempty"`
}

// ValidationErrorResponse lists the items rejected by a bulk intake call.
type ValidationErrorResponse struct {
	ValidationError IDList `json:"validation_error"`
}

// CourierResponse is the courier read model returned by GET and PATCH.
// Rating is omitted until the courier has completed a delivery.
type CourierResponse struct {
	CourierID    int64    `json:"courier_id"`
	CourierType  string   `json:"courier_type"`
	Regions      []int    `json:"regions"`
	WorkingHours []string `json:"working_hours"`
	Earnings     int      `json:"earnings"`
	Rating       *float64 `json:"rating,omitempty"`
}

// UpdateCourierRequest is the partial update payload for PATCH /couriers/:id.
// Nil fields are left unchanged.
type UpdateCourierRequest struct {
	CourierType  *string  `json:"courier_type"`
	Regions      []int    `json:"regions"`
	WorkingHours []string `json:"working_hours"`
}

// AssignOrdersRequest selects the courier to dispatch for.
type AssignOrdersRequest struct {
	CourierID int64 `json:"courier_id"`
}

// AssignOrdersResponse lists the orders accepted into the courier's bundle.
// AssignTime is omitted when nothing was assigned.
type AssignOrdersResponse struct {
	Orders     []IDRef `json:"orders"`
	AssignTime string  `json:"assign_time,omitempty"`
}

// CompleteOrderRequest reports one delivered order.
type CompleteOrderRequest struct {
	CourierID    int64  `json:"courier_id"`
	OrderID      int64  `json:"order_id"`
	CompleteTime string `json:"complete_time"`
}

// CompleteOrderResponse acknowledges a completion report.
type CompleteOrderResponse struct {
	OrderID int64 `json:"order_id"`
}

// ErrorResponse is the generic error payload.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

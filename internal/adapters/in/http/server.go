// Package http implements the inbound HTTP adapter for the dispatch service.
// It translates the wire contract into commands and queries and maps domain
// errors onto HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server implements the HTTP handlers for the dispatch API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createCourierHandler commands.CreateCourierCommandHandler
	createOrderHandler   commands.CreateOrderCommandHandler
	dispatchHandler      commands.DispatchOrdersCommandHandler
	completeHandler      commands.CompleteOrderCommandHandler
	updateCourierHandler commands.UpdateCourierCommandHandler

	// Query handlers
	getCourierHandler queries.GetCourierQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createCourierHandler commands.CreateCourierCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	dispatchHandler commands.DispatchOrdersCommandHandler,
	completeHandler commands.CompleteOrderCommandHandler,
	updateCourierHandler commands.UpdateCourierCommandHandler,
	getCourierHandler queries.GetCourierQueryHandler,
) *Server {
	return &Server{
		createCourierHandler: createCourierHandler,
		createOrderHandler:   createOrderHandler,
		dispatchHandler:      dispatchHandler,
		completeHandler:      completeHandler,
		updateCourierHandler: updateCourierHandler,
		getCourierHandler:    getCourierHandler,
	}
}

// RegisterRoutes attaches the API routes and middleware to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Recover())

	e.GET("/health", s.Health)

	e.POST("/couriers", s.CreateCouriers)
	e.GET("/couriers/:id", s.GetCourier)
	e.PATCH("/couriers/:id", s.UpdateCourier)

	e.POST("/orders", s.CreateOrders)
	e.POST("/orders/assign", s.AssignOrders)
	e.POST("/orders/complete", s.CompleteOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateCouriers handles POST /couriers - bulk courier intake.
// Per-item validation failures are collected and the whole request is
// rejected as one 400 listing the offending identifiers.
func (s *Server) CreateCouriers(ctx echo.Context) error {
	var request CreateCouriersRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmds := make([]commands.CreateCourierCommand, 0, len(request.Data))
	accepted := make([]IDRef, 0, len(request.Data))
	rejected := make([]IDRef, 0)

	for _, item := range request.Data {
		cmd, err := commands.NewCreateCourierCommand(
			item.CourierID, item.CourierType, item.Regions, item.WorkingHours)
		if err != nil {
			rejected = append(rejected, IDRef{ID: item.CourierID})
			continue
		}
		cmds = append(cmds, cmd)
		accepted = append(accepted, IDRef{ID: item.CourierID})
	}

	if len(rejected) > 0 {
		return ctx.JSON(http.StatusBadRequest, ValidationErrorResponse{
			ValidationError: IDList{Couriers: rejected},
		})
	}

	for _, cmd := range cmds {
		if err := s.createCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
			return s.errorResponse(ctx, err)
		}
	}

	return ctx.JSON(http.StatusCreated, IDList{Couriers: accepted})
}

// CreateOrders handles POST /orders - bulk order intake, mirror of couriers.
func (s *Server) CreateOrders(ctx echo.Context) error {
	var request CreateOrdersRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmds := make([]commands.CreateOrderCommand, 0, len(request.Data))
	accepted := make([]IDRef, 0, len(request.Data))
	rejected := make([]IDRef, 0)

	for _, item := range request.Data {
		cmd, err := commands.NewCreateOrderCommand(
			item.OrderID, item.Weight, item.Region, item.DeliveryHours)
		if err != nil {
			rejected = append(rejected, IDRef{ID: item.OrderID})
			continue
		}
		cmds = append(cmds, cmd)
		accepted = append(accepted, IDRef{ID: item.OrderID})
	}

	if len(rejected) > 0 {
		return ctx.JSON(http.StatusBadRequest, ValidationErrorResponse{
			ValidationError: IDList{Orders: rejected},
		})
	}

	for _, cmd := range cmds {
		if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
			return s.errorResponse(ctx, err)
		}
	}

	return ctx.JSON(http.StatusCreated, IDList{Orders: accepted})
}

// GetCourier handles GET /couriers/:id.
func (s *Server) GetCourier(ctx echo.Context) error {
	courierID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return badRequest(ctx, "courier id must be an integer")
	}

	return s.respondWithCourier(ctx, courierID)
}

// UpdateCourier handles PATCH /couriers/:id - partial attribute update with
// the reassignment cascade, returning the updated courier.
func (s *Server) UpdateCourier(ctx echo.Context) error {
	courierID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		return badRequest(ctx, "courier id must be an integer")
	}

	var request UpdateCourierRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewUpdateCourierCommand(
		courierID, request.CourierType, request.Regions, request.WorkingHours)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	if err = s.updateCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return s.respondWithCourier(ctx, courierID)
}

// AssignOrders handles POST /orders/assign - dispatches the unassigned pool
// for one courier. Repeating the call for an active bundle returns the
// existing assignment unchanged.
func (s *Server) AssignOrders(ctx echo.Context) error {
	var request AssignOrdersRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewDispatchOrdersCommand(request.CourierID)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	result, err := s.dispatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	response := AssignOrdersResponse{Orders: make([]IDRef, 0, len(result.OrderIDs))}
	for _, orderID := range result.OrderIDs {
		response.Orders = append(response.Orders, IDRef{ID: orderID})
	}
	if result.AssignTime != nil {
		response.AssignTime = result.AssignTime.Format(time.RFC3339)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CompleteOrder handles POST /orders/complete - records one delivery.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	var request CompleteOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	completeTime, err := time.Parse(time.RFC3339, request.CompleteTime)
	if err != nil {
		return badRequest(ctx, "complete_time must be RFC3339")
	}

	cmd, err := commands.NewCompleteOrderCommand(request.OrderID, request.CourierID, completeTime)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	if err = s.completeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CompleteOrderResponse{OrderID: request.OrderID})
}

// respondWithCourier renders the read model for one courier.
func (s *Server) respondWithCourier(ctx echo.Context, courierID int64) error {
	query, err := queries.NewGetCourierQuery(courierID)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	view, err := s.getCourierHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err)
	}

	response := CourierResponse{
		CourierID:    view.ID,
		CourierType:  view.Category,
		Regions:      view.Regions,
		WorkingHours: view.WorkingHours,
		Earnings:     view.Earnings,
	}
	if view.Rating > 0 {
		rating := view.Rating
		response.Rating = &rating
	}

	return ctx.JSON(http.StatusOK, response)
}

// errorResponse maps domain errors onto HTTP status codes.
func (s *Server) errorResponse(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrConflict):
		return ctx.JSON(http.StatusConflict, ErrorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, services.ErrCompletionOutOfOrder),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, commands.ErrNoAttributesToUpdate):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		})
	}
}

// badRequest renders a 400 with the given message.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

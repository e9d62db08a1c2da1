// Package http exposes order placement and tracking over echo.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResponse, error)
}

type TrackOrderHandler interface {
	Handle(ctx context.Context, query queries.TrackOrderQuery) (queries.TrackOrderQueryResponse, error)
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler CreateOrderHandler
	trackOrderHandler  TrackOrderHandler
	logger             *slog.Logger
}

func NewServer(
	createOrderHandler CreateOrderHandler,
	trackOrderHandler TrackOrderHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler: createOrderHandler,
		trackOrderHandler:  trackOrderHandler,
		logger:             logger.With("component", "http_server"),
	}
}

// RegisterRoutes mounts the order API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:trackingId", s.TrackOrder)
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := newCreateOrderCommand(body)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	resp, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{
		OrderTrackingID: resp.TrackingID.String(),
		OrderStatus:     resp.Status.String(),
		Message:         resp.Message,
	})
}

// TrackOrder handles GET /api/v1/orders/:trackingId - shows an order's status.
func (s *Server) TrackOrder(ctx echo.Context) error {
	trackingID, err := parseID(ctx.Param("trackingId"), "tracking id", kernel.TrackingIDFrom)
	if err != nil {
		return s.errorResponse(ctx, err, "Invalid tracking id")
	}

	query, err := queries.NewTrackOrderQuery(trackingID)
	if err != nil {
		return s.errorResponse(ctx, err, "Invalid tracking id")
	}

	resp, err := s.trackOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.errorResponse(ctx, err, "Failed to track order")
	}

	failures := resp.FailureMessages
	if failures == nil {
		failures = []string{}
	}
	return ctx.JSON(http.StatusOK, TrackedOrder{
		OrderTrackingID: resp.TrackingID.String(),
		OrderStatus:     resp.Status.String(),
		FailureMessages: failures,
	})
}

// errorResponse maps the error taxonomy onto status codes. Server-side
// failures are logged and answered with the generic message only.
func (s *Server) errorResponse(ctx echo.Context, err error, internalMessage string) error {
	status := http.StatusInternalServerError
	message := internalMessage

	switch {
	case errors.Is(err, errs.ErrPersistence), errors.Is(err, errs.ErrInvalidStateTransition):
	case errors.Is(err, errs.ErrObjectNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrPricing),
		errors.Is(err, errs.ErrRestaurantInactive),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, commands.ErrOrderItemsAreRequired):
		status, message = http.StatusBadRequest, err.Error()
	}

	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
	}

	return ctx.JSON(status, Error{Code: status, Message: message})
}

func newCreateOrderCommand(body NewOrder) (commands.CreateOrderCommand, error) {
	customerID, errCustomer := parseID(body.CustomerID, "customer id", kernel.CustomerIDFrom)
	restaurantID, errRestaurant := parseID(body.RestaurantID, "restaurant id", kernel.RestaurantIDFrom)
	address, errAddress := order.NewStreetAddress(body.Address.Street, body.Address.PostalCode, body.Address.City)
	if err := errors.Join(errCustomer, errRestaurant, errAddress); err != nil {
		return commands.CreateOrderCommand{}, err
	}

	items := make([]commands.CreateOrderItem, 0, len(body.Items))
	for i, item := range body.Items {
		productID, errProduct := parseID(item.ProductID, fmt.Sprintf("items[%d].product id", i), kernel.ProductIDFrom)
		price, errPrice := kernel.NewExactMoney(fmt.Sprintf("items[%d].price", i), item.Price)
		subTotal, errSubTotal := kernel.NewExactMoney(fmt.Sprintf("items[%d].sub total", i), item.SubTotal)
		if err := errors.Join(errProduct, errPrice, errSubTotal); err != nil {
			return commands.CreateOrderCommand{}, err
		}
		items = append(items, commands.CreateOrderItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			Price:     price,
			SubTotal:  subTotal,
		})
	}

	price, err := kernel.NewExactMoney("price", body.Price)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	return commands.NewCreateOrderCommand(customerID, restaurantID, address, price, items)
}

func parseID[T any](raw, paramName string, from func(kernel.UUID) (T, error)) (T, error) {
	var zero T
	if raw == "" {
		return zero, errs.NewValueIsRequiredError(paramName)
	}
	u, err := kernel.UUIDFromString(raw)
	if err != nil {
		return zero, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return from(u)
}

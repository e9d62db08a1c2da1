package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/application/messages"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// OrderCreatedMessage is returned to the customer after a successful placement.
const OrderCreatedMessage = "Order created successfully"

// CreateOrderResponse is the outcome of a successful placement.
type CreateOrderResponse struct {
	TrackingID kernel.TrackingID
	Status     order.Status
	Message    string
}

// CreateOrderCommandHandler places orders: it checks the customer and the
// restaurant, validates the order against the catalog, stores it and asks
// the payment service to charge it.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, services.NewOrderDomainService(),
//	    eventPublisher, paymentRequests, logger)
//	resp, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown customer or restaurant
//	case errors.Is(err, errs.ErrPricing), errors.Is(err, errs.ErrRestaurantInactive):
//	    // rejected request
//	case err != nil:
//	    // server side failure
//	}
//	fmt.Println(resp.TrackingID, resp.Status)
type CreateOrderCommandHandler struct {
	uowFactory      UoWFactory
	domainService   services.OrderDomainService
	events          ports.EventPublisher
	paymentRequests ports.OutboundMessagePublisher
	logger          *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	domainService services.OrderDomainService,
	events ports.EventPublisher,
	paymentRequests ports.OutboundMessagePublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:      uowFactory,
		domainService:   domainService,
		events:          events,
		paymentRequests: paymentRequests,
		logger:          logger.With("component", "create_order_handler"),
	}
}

// Handle places the order. The order is stored exactly once and only after
// it passed validation; publication happens after the commit.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResponse, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResponse{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResponse{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.CustomerRepository().Get(ctx, cmd.CustomerID()); err != nil {
		return CreateOrderResponse{}, err
	}

	r, err := uow.RestaurantRepository().FindWithProducts(ctx, cmd.RestaurantID(), cmd.ProductIDs())
	if err != nil {
		return CreateOrderResponse{}, err
	}

	o, err := newOrderFromCommand(cmd)
	if err != nil {
		return CreateOrderResponse{}, err
	}

	created, err := h.domainService.ValidateAndInitiateOrder(o, r)
	if err != nil {
		return CreateOrderResponse{}, err
	}

	saved, err := saveOrder(ctx, uow.OrderRepository(), o)
	if err != nil {
		return CreateOrderResponse{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResponse{}, errs.NewPersistenceErrorWithCause("commit order", err)
	}

	h.logger.InfoContext(ctx, "Order created",
		"order_id", saved.ID().String(), "tracking_id", saved.TrackingID().String())

	h.events.PublishOrderCreated(ctx, created)
	publish(ctx, h.logger, h.paymentRequests, messages.PaymentRequest(created))

	return CreateOrderResponse{
		TrackingID: saved.TrackingID(),
		Status:     saved.Status(),
		Message:    OrderCreatedMessage,
	}, nil
}

func newOrderFromCommand(cmd CreateOrderCommand) (*order.Order, error) {
	items := make([]*order.OrderItem, 0, len(cmd.Items()))
	for _, line := range cmd.Items() {
		product, err := restaurant.NewProductReference(line.ProductID)
		if err != nil {
			return nil, err
		}
		item, err := order.NewOrderItem(product, line.Quantity, line.Price, line.SubTotal)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return order.NewOrder(order.NewOrderParams{
		CustomerID:      cmd.CustomerID(),
		RestaurantID:    cmd.RestaurantID(),
		DeliveryAddress: cmd.Address(),
		Price:           cmd.Price(),
		Items:           items,
	})
}

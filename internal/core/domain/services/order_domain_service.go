package services

import (
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"
)

// OrderDomainService runs the order lifecycle operations and stamps the
// resulting events with the current UTC time.
//
// Example usage:
//
//	svc := services.NewOrderDomainService()
//	created, err := svc.ValidateAndInitiateOrder(o, r)
//	if err != nil {
//	    // RestaurantInactiveError, PricingError or InvalidStateTransitionError
//	    return err
//	}
//	// persist o, then publish created
type OrderDomainService struct {
	now func() time.Time
}

// Option configures an OrderDomainService.
type Option func(*OrderDomainService)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *OrderDomainService) {
		s.now = now
	}
}

func NewOrderDomainService(opts ...Option) OrderDomainService {
	s := OrderDomainService{now: time.Now}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// ValidateAndInitiateOrder checks the order against the restaurant and, when
// everything is consistent, gives it its identity.
//
// Steps, in order:
//   - the restaurant must be active
//   - products found in the restaurant catalog get the catalog name and price
//   - Order.ValidateOrder
//   - Order.Initialize
//
// An inactive restaurant is reported even if the pricing is also wrong.
func (s OrderDomainService) ValidateAndInitiateOrder(o *order.Order, r *restaurant.Restaurant) (order.OrderCreatedEvent, error) {
	if err := o.Validate(); err != nil {
		return order.OrderCreatedEvent{}, err
	}
	if err := r.Validate(); err != nil {
		return order.OrderCreatedEvent{}, err
	}

	if !r.IsActive() {
		return order.OrderCreatedEvent{}, errs.NewRestaurantInactiveError(r.ID().String())
	}

	setOrderProductInformation(o, r)

	if err := o.ValidateOrder(); err != nil {
		return order.OrderCreatedEvent{}, err
	}
	if err := o.Initialize(); err != nil {
		return order.OrderCreatedEvent{}, err
	}

	return order.NewOrderCreatedEvent(o, s.now()), nil
}

// PayOrder records a successful payment.
func (s OrderDomainService) PayOrder(o *order.Order) (order.OrderPaidEvent, error) {
	if err := o.Pay(); err != nil {
		return order.OrderPaidEvent{}, err
	}
	return order.NewOrderPaidEvent(o, s.now()), nil
}

// ApproveOrder records the restaurant approval. Approval is terminal and
// raises no event.
func (s OrderDomainService) ApproveOrder(o *order.Order) error {
	return o.Approve()
}

// InitiateCancel starts cancelling a paid order. The returned event asks for
// the payment to be compensated.
func (s OrderDomainService) InitiateCancel(o *order.Order, failureMessages []string) (order.OrderCancelledEvent, error) {
	if err := o.InitiateCancel(failureMessages); err != nil {
		return order.OrderCancelledEvent{}, err
	}
	return order.NewOrderCancelledEvent(o, s.now()), nil
}

// CancelOrder finishes a cancellation. Like approval it raises no event.
func (s OrderDomainService) CancelOrder(o *order.Order, failureMessages []string) error {
	return o.Cancel(failureMessages)
}

func setOrderProductInformation(o *order.Order, r *restaurant.Restaurant) {
	catalog := r.Catalog()
	for _, item := range o.Items() {
		confirmed, ok := catalog[item.Product().ID()]
		if !ok {
			continue
		}
		item.Product().UpdateWithConfirmedNameAndPrice(confirmed.Name(), confirmed.Price())
	}
}

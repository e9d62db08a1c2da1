package order

import "time"

// event is the common shape of order lifecycle events: a copy of the order
// taken right after the transition and the UTC time of the transition. Later
// transitions of the live order do not show through the copy.
type event struct {
	order     *Order
	createdAt time.Time
}

func (e event) Order() *Order {
	return e.order
}

func (e event) CreatedAt() time.Time {
	return e.createdAt
}

// OrderCreatedEvent is raised once an order was validated and initialized.
type OrderCreatedEvent struct {
	event
}

func NewOrderCreatedEvent(o *Order, createdAt time.Time) OrderCreatedEvent {
	return OrderCreatedEvent{event{order: o.snapshot(), createdAt: createdAt.UTC()}}
}

// OrderPaidEvent is raised when the payment of an order succeeded.
type OrderPaidEvent struct {
	event
}

func NewOrderPaidEvent(o *Order, createdAt time.Time) OrderPaidEvent {
	return OrderPaidEvent{event{order: o.snapshot(), createdAt: createdAt.UTC()}}
}

// OrderCancelledEvent is raised when the cancellation of a paid order starts.
type OrderCancelledEvent struct {
	event
}

func NewOrderCancelledEvent(o *Order, createdAt time.Time) OrderCancelledEvent {
	return OrderCancelledEvent{event{order: o.snapshot(), createdAt: createdAt.UTC()}}
}

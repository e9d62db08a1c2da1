package ports

import (
	"context"

	"ordering/internal/core/application/messages"
	"ordering/internal/core/domain/model/order"
)

// EventPublisher hands lifecycle events to in-process subscribers.
// Publishing never fails from the caller's point of view.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, evt order.OrderCreatedEvent)
	PublishOrderPaid(ctx context.Context, evt order.OrderPaidEvent)
	PublishOrderCancelled(ctx context.Context, evt order.OrderCancelledEvent)
}

// OutboundMessagePublisher forwards an order message to one destination
// (payment requests, restaurant approval requests or customer notices),
// keyed by order id where the transport supports it.
type OutboundMessagePublisher interface {
	Publish(ctx context.Context, msg messages.OrderMessage) error
}

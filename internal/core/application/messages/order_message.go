// Package messages defines the payloads exchanged with the payment service,
// the restaurant service and the customer-facing side.
package messages

import (
	"time"

	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type names the intent of an outbound order message.
type Type string

const (
	// PaymentRequested asks the payment service to charge a new order.
	PaymentRequested Type = "PAYMENT_REQUESTED"
	// PaymentCancelRequested asks the payment service to refund a paid order.
	PaymentCancelRequested Type = "PAYMENT_CANCEL_REQUESTED"
	// RestaurantApprovalRequested asks the restaurant to accept a paid order.
	RestaurantApprovalRequested Type = "RESTAURANT_APPROVAL_REQUESTED"
	// OrderCancelled tells the customer that the order was cancelled.
	OrderCancelled Type = "ORDER_CANCELLED"
)

// OrderMessage is the outbound representation of an order at a point of its
// lifecycle. Amounts carry the confirmed catalog prices.
type OrderMessage struct {
	EventID         uuid.UUID          `json:"event_id"`
	Type            Type               `json:"type"`
	OrderID         string             `json:"order_id"`
	TrackingID      string             `json:"tracking_id"`
	CustomerID      string             `json:"customer_id"`
	RestaurantID    string             `json:"restaurant_id"`
	Status          string             `json:"status"`
	Items           []OrderItemMessage `json:"items"`
	Price           decimal.Decimal    `json:"price"`
	FailureMessages []string           `json:"failure_messages,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
}

type OrderItemMessage struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	SubTotal  decimal.Decimal `json:"sub_total"`
}

// PaymentRequest builds the charge request for a created order.
func PaymentRequest(evt order.OrderCreatedEvent) OrderMessage {
	return newOrderMessage(PaymentRequested, evt.Order(), evt.CreatedAt())
}

// RestaurantApprovalRequest builds the approval request for a paid order.
func RestaurantApprovalRequest(evt order.OrderPaidEvent) OrderMessage {
	return newOrderMessage(RestaurantApprovalRequested, evt.Order(), evt.CreatedAt())
}

// PaymentCancelRequest builds the refund request for an order being cancelled.
func PaymentCancelRequest(evt order.OrderCancelledEvent) OrderMessage {
	return newOrderMessage(PaymentCancelRequested, evt.Order(), evt.CreatedAt())
}

// CustomerCancellationNotice builds the message telling the customer that
// the order ended up cancelled.
func CustomerCancellationNotice(o *order.Order, at time.Time) OrderMessage {
	return newOrderMessage(OrderCancelled, o, at)
}

func newOrderMessage(t Type, o *order.Order, at time.Time) OrderMessage {
	items := make([]OrderItemMessage, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItemMessage{
			ProductID: item.Product().ID().String(),
			Quantity:  item.Quantity(),
			Price:     item.Product().Price().Amount(),
			SubTotal:  item.SubTotal().Amount(),
		})
	}

	return OrderMessage{
		EventID:         uuid.New(),
		Type:            t,
		OrderID:         o.ID().String(),
		TrackingID:      o.TrackingID().String(),
		CustomerID:      o.CustomerID().String(),
		RestaurantID:    o.RestaurantID().String(),
		Status:          o.Status().String(),
		Items:           items,
		Price:           o.Price().Amount(),
		FailureMessages: o.FailureMessages(),
		CreatedAt:       at.UTC(),
	}
}

package messages_test

import (
	"encoding/json"
	"testing"
	"time"

	"ordering/internal/core/application/messages"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initializedOrder(t *testing.T) *order.Order {
	t.Helper()
	productID, err := kernel.ProductIDFrom(kernel.NewUUID())
	require.NoError(t, err)
	product, err := restaurant.NewProduct(productID, "Margherita", kernel.MustMoney("50.00"))
	require.NoError(t, err)
	item, err := order.NewOrderItem(product, 3, kernel.MustMoney("50.00"), kernel.MustMoney("150.00"))
	require.NoError(t, err)
	customerID, _ := kernel.CustomerIDFrom(kernel.NewUUID())
	restaurantID, _ := kernel.RestaurantIDFrom(kernel.NewUUID())
	address, _ := order.NewStreetAddress("street_1", "1000AB", "Amsterdam")

	o, err := order.NewOrder(order.NewOrderParams{
		CustomerID:      customerID,
		RestaurantID:    restaurantID,
		DeliveryAddress: address,
		Price:           kernel.MustMoney("150.00"),
		Items:           []*order.OrderItem{item},
	})
	require.NoError(t, err)
	require.NoError(t, o.Initialize())
	return o
}

func TestPaymentRequest(t *testing.T) {
	o := initializedOrder(t)
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	msg := messages.PaymentRequest(order.NewOrderCreatedEvent(o, at))

	assert.Equal(t, messages.PaymentRequested, msg.Type)
	assert.NotEqual(t, [16]byte{}, [16]byte(msg.EventID))
	assert.Equal(t, o.ID().String(), msg.OrderID)
	assert.Equal(t, o.TrackingID().String(), msg.TrackingID)
	assert.Equal(t, o.CustomerID().String(), msg.CustomerID)
	assert.Equal(t, o.RestaurantID().String(), msg.RestaurantID)
	assert.Equal(t, "PENDING", msg.Status)
	assert.Equal(t, "150.00", msg.Price.StringFixed(2))
	require.Len(t, msg.Items, 1)
	assert.Equal(t, 3, msg.Items[0].Quantity)
	assert.Equal(t, "50.00", msg.Items[0].Price.StringFixed(2))
	assert.Equal(t, "150.00", msg.Items[0].SubTotal.StringFixed(2))
	assert.True(t, msg.CreatedAt.Equal(at))
	assert.Empty(t, msg.FailureMessages)
}

func TestOrderMessage_Types(t *testing.T) {
	o := initializedOrder(t)
	at := time.Now()

	assert.Equal(t, messages.RestaurantApprovalRequested,
		messages.RestaurantApprovalRequest(order.NewOrderPaidEvent(o, at)).Type)
	assert.Equal(t, messages.PaymentCancelRequested,
		messages.PaymentCancelRequest(order.NewOrderCancelledEvent(o, at)).Type)

	require.NoError(t, o.Cancel([]string{"payment timed out"}))
	notice := messages.CustomerCancellationNotice(o, at)
	assert.Equal(t, messages.OrderCancelled, notice.Type)
	assert.Equal(t, "CANCELLED", notice.Status)
	assert.Equal(t, []string{"payment timed out"}, notice.FailureMessages)
	assert.Equal(t, time.UTC, notice.CreatedAt.Location())
}

func TestOrderMessage_JSONFieldNames(t *testing.T) {
	msg := messages.PaymentRequest(order.NewOrderCreatedEvent(initializedOrder(t), time.Now()))

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{"event_id", "type", "order_id", "tracking_id", "customer_id",
		"restaurant_id", "status", "items", "price", "created_at"} {
		assert.Contains(t, fields, key)
	}
	assert.NotContains(t, fields, "failure_messages")
}

func TestResponses(t *testing.T) {
	var payment messages.PaymentResponse
	require.NoError(t, json.Unmarshal(
		[]byte(`{"order_id":"x","status":"FAILED","failure_messages":["insufficient funds"]}`), &payment))
	assert.False(t, payment.Succeeded())
	assert.Equal(t, []string{"insufficient funds"}, payment.FailureMessages)
	assert.True(t, messages.PaymentResponse{Status: messages.PaymentCompleted}.Succeeded())

	var approval messages.RestaurantApprovalResponse
	require.NoError(t, json.Unmarshal([]byte(`{"order_id":"x","status":"APPROVED"}`), &approval))
	assert.True(t, approval.Approved())
	assert.False(t, messages.RestaurantApprovalResponse{Status: messages.RestaurantRejected}.Approved())
}

package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"ordering/internal/core/application/messages"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

// Save returns the first Return value as is, or calls it with the saved
// order when it is a func(*order.Order) *order.Order.
func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) (*order.Order, error) {
	args := m.Called(ctx, o)
	if fn, ok := args.Get(0).(func(*order.Order) *order.Order); ok {
		return fn(o), args.Error(1)
	}
	saved, _ := args.Get(0).(*order.Order)
	return saved, args.Error(1)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) FindByTrackingID(ctx context.Context, id kernel.TrackingID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) FindPendingCreatedBefore(ctx context.Context, before time.Time, limit int) ([]kernel.OrderID, error) {
	args := m.Called(ctx, before, limit)
	ids, _ := args.Get(0).([]kernel.OrderID)
	return ids, args.Error(1)
}

var returnSaved = func(o *order.Order) *order.Order { return o }

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.CustomerID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

type MockRestaurantRepository struct{ mock.Mock }

func (m *MockRestaurantRepository) FindWithProducts(
	ctx context.Context,
	id kernel.RestaurantID,
	productIDs []kernel.ProductID,
) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id, productIDs)
	r, _ := args.Get(0).(*restaurant.Restaurant)
	return r, args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

func (m *MockUoW) RestaurantRepository() ports.RestaurantRepository {
	args := m.Called()
	return args.Get(0).(ports.RestaurantRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishOrderCreated(ctx context.Context, evt order.OrderCreatedEvent) {
	m.Called(ctx, evt)
}

func (m *MockEventPublisher) PublishOrderPaid(ctx context.Context, evt order.OrderPaidEvent) {
	m.Called(ctx, evt)
}

func (m *MockEventPublisher) PublishOrderCancelled(ctx context.Context, evt order.OrderCancelledEvent) {
	m.Called(ctx, evt)
}

type MockMessagePublisher struct{ mock.Mock }

func (m *MockMessagePublisher) Publish(ctx context.Context, msg messages.OrderMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func messageOfType(t messages.Type) any {
	return mock.MatchedBy(func(msg messages.OrderMessage) bool { return msg.Type == t })
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// orderIn builds an initialized order of one 50.00 item and moves it to status.
func orderIn(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	productID, err := kernel.ProductIDFrom(kernel.NewUUID())
	require.NoError(t, err)
	product, err := restaurant.NewProduct(productID, "product", kernel.MustMoney("50.00"))
	require.NoError(t, err)
	item, err := order.NewOrderItem(product, 1, kernel.MustMoney("50.00"), kernel.MustMoney("50.00"))
	require.NoError(t, err)
	customerID, _ := kernel.CustomerIDFrom(kernel.NewUUID())
	restaurantID, _ := kernel.RestaurantIDFrom(kernel.NewUUID())
	address, _ := order.NewStreetAddress("street_1", "1000AB", "Amsterdam")

	o, err := order.NewOrder(order.NewOrderParams{
		CustomerID:      customerID,
		RestaurantID:    restaurantID,
		DeliveryAddress: address,
		Price:           kernel.MustMoney("50.00"),
		Items:           []*order.OrderItem{item},
	})
	require.NoError(t, err)
	require.NoError(t, o.Initialize())

	switch status {
	case order.Pending:
	case order.Paid:
		require.NoError(t, o.Pay())
	case order.Approved:
		require.NoError(t, o.Pay())
		require.NoError(t, o.Approve())
	case order.Cancelling:
		require.NoError(t, o.Pay())
		require.NoError(t, o.InitiateCancel([]string{"rejected"}))
	case order.Cancelled:
		require.NoError(t, o.Cancel([]string{"failed"}))
	default:
		t.Fatalf("unsupported status %s", status)
	}
	return o
}

package order_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemID(t *testing.T) {
	id, err := order.NewItemID(3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id.Value())

	_, err = order.NewItemID(0)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = order.NewItemID(-1)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewOrderItem(t *testing.T) {
	product := newCatalogProduct(t, "50.00")

	t.Run("should build an unbound item", func(t *testing.T) {
		item, err := order.NewOrderItem(product, 3, kernel.MustMoney("50.00"), kernel.MustMoney("150.00"))

		require.NoError(t, err)
		assert.Same(t, product, item.Product())
		assert.Equal(t, 3, item.Quantity())
		assert.Equal(t, "50.00", item.Price().String())
		assert.Equal(t, "150.00", item.SubTotal().String())
		assert.True(t, item.ID().IsZero())
		assert.True(t, item.OrderID().IsZero())
	})

	t.Run("should reject missing product and non positive quantity together", func(t *testing.T) {
		_, err := order.NewOrderItem(nil, 0, kernel.MustMoney("1"), kernel.MustMoney("1"))

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "0 is not greater than 0")
	})
}

func TestRestoreOrderItem(t *testing.T) {
	product := newCatalogProduct(t, "50.00")
	orderID := kernel.NewOrderID()
	itemID, _ := order.NewItemID(1)

	t.Run("should bind to the order", func(t *testing.T) {
		item, err := order.RestoreOrderItem(itemID, orderID, product, 1, kernel.MustMoney("50.00"), kernel.MustMoney("50.00"))

		require.NoError(t, err)
		assert.Equal(t, itemID, item.ID())
		assert.True(t, item.OrderID().IsEqual(orderID))
	})

	t.Run("should require ids", func(t *testing.T) {
		_, err := order.RestoreOrderItem(order.ItemID{}, orderID, product, 1, kernel.MustMoney("1"), kernel.MustMoney("1"))
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = order.RestoreOrderItem(itemID, kernel.OrderID{}, product, 1, kernel.MustMoney("1"), kernel.MustMoney("1"))
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func newCatalogProduct(t *testing.T, price string) *restaurant.Product {
	t.Helper()
	id, err := kernel.ProductIDFrom(kernel.NewUUID())
	require.NoError(t, err)
	p, err := restaurant.NewProduct(id, "product", kernel.MustMoney(price))
	require.NoError(t, err)
	return p
}

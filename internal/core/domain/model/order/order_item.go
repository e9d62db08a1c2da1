package order

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"
)

type itemKind struct{}

// ItemID numbers the items of one order, starting at 1.
type ItemID = kernel.Identifier[itemKind, int64]

// NewItemID wraps a positive item number.
func NewItemID(n int64) (ItemID, error) {
	if n < 0 {
		return ItemID{}, errs.NewValueIsInvalidErrorWithCause("order item id", fmt.Errorf("%d is negative", n))
	}
	return kernel.NewIdentifier[itemKind]("order item id", n)
}

// OrderItem is one line of an order: a product reference, how many of it,
// the unit price the customer saw and the resulting subtotal.
//
// The unit price and subtotal are the values the client submitted. They are
// only checked against the product and against each other by Order.ValidateOrder.
type OrderItem struct {
	id       ItemID
	orderID  kernel.OrderID
	product  *restaurant.Product
	quantity int
	price    kernel.Money
	subTotal kernel.Money
}

// NewOrderItem builds an item that is not yet bound to an order.
func NewOrderItem(product *restaurant.Product, quantity int, price, subTotal kernel.Money) (*OrderItem, error) {
	var errProduct error
	if product == nil {
		errProduct = errs.NewValueIsRequiredError("product")
	}

	var errQuantity error
	if quantity <= 0 {
		errQuantity = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}

	if err := errors.Join(errProduct, errQuantity); err != nil {
		return nil, err
	}

	return &OrderItem{
		product:  product,
		quantity: quantity,
		price:    price,
		subTotal: subTotal,
	}, nil
}

// RestoreOrderItem rebuilds a persisted item.
func RestoreOrderItem(
	id ItemID,
	orderID kernel.OrderID,
	product *restaurant.Product,
	quantity int,
	price, subTotal kernel.Money,
) (*OrderItem, error) {
	item, err := NewOrderItem(product, quantity, price, subTotal)
	if err != nil {
		return nil, err
	}
	if id.IsZero() {
		return nil, errs.NewValueIsRequiredError("order item id")
	}
	if orderID.IsZero() {
		return nil, errs.NewValueIsRequiredError("order id")
	}

	item.id = id
	item.orderID = orderID
	return item, nil
}

func (i *OrderItem) ID() ItemID {
	return i.id
}

func (i *OrderItem) OrderID() kernel.OrderID {
	return i.orderID
}

func (i *OrderItem) Product() *restaurant.Product {
	return i.product
}

func (i *OrderItem) Quantity() int {
	return i.quantity
}

func (i *OrderItem) Price() kernel.Money {
	return i.price
}

func (i *OrderItem) SubTotal() kernel.Money {
	return i.subTotal
}

// isPriceValid checks the unit price against the catalog-confirmed product
// price and the subtotal against price*quantity. An unconfirmed product never
// has a valid price.
func (i *OrderItem) isPriceValid() bool {
	return i.product.IsConfirmed() &&
		i.price.IsPositive() &&
		i.price.IsEqual(i.product.Price()) &&
		i.price.MultiplyByInt(i.quantity).IsEqual(i.subTotal)
}

func (i *OrderItem) initialize(orderID kernel.OrderID, id ItemID) {
	i.orderID = orderID
	i.id = id
}

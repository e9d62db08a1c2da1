package commands

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderItemsAreRequired = errors.New("order items are required")
)

// CreateOrderItem is one line of a placement request, as submitted by the client.
type CreateOrderItem struct {
	ProductID kernel.ProductID
	Quantity  int
	Price     kernel.Money
	SubTotal  kernel.Money
}

// CreateOrderCommand represents a customer placing an order with a restaurant.
// Prices are the client's view; they are checked against the catalog by the handler.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(customerID, restaurantID, address, kernel.MustMoney("200.00"),
//	    []CreateOrderItem{
//	        {ProductID: pizzaID, Quantity: 1, Price: kernel.MustMoney("50.00"), SubTotal: kernel.MustMoney("50.00")},
//	        {ProductID: pastaID, Quantity: 3, Price: kernel.MustMoney("50.00"), SubTotal: kernel.MustMoney("150.00")},
//	    })
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	resp, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID   kernel.CustomerID
	restaurantID kernel.RestaurantID
	address      order.StreetAddress
	price        kernel.Money
	items        []CreateOrderItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the shape of a placement request.
func NewCreateOrderCommand(
	customerID kernel.CustomerID,
	restaurantID kernel.RestaurantID,
	address order.StreetAddress,
	price kernel.Money,
	items []CreateOrderItem,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		price: price,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setAddress(address),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerID() kernel.CustomerID {
	return c.customerID
}

func (c CreateOrderCommand) RestaurantID() kernel.RestaurantID {
	return c.restaurantID
}

func (c CreateOrderCommand) Address() order.StreetAddress {
	return c.address
}

func (c CreateOrderCommand) Price() kernel.Money {
	return c.price
}

// Items returns a copy of the submitted lines.
func (c CreateOrderCommand) Items() []CreateOrderItem {
	return append([]CreateOrderItem(nil), c.items...)
}

// ProductIDs lists the distinct product ids in submission order.
func (c CreateOrderCommand) ProductIDs() []kernel.ProductID {
	seen := make(map[kernel.ProductID]struct{}, len(c.items))
	ids := make([]kernel.ProductID, 0, len(c.items))
	for _, item := range c.items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

func (c *CreateOrderCommand) setCustomerID(id kernel.CustomerID) error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("customer id")
	}
	c.customerID = id
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(id kernel.RestaurantID) error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("restaurant id")
	}
	c.restaurantID = id
	return nil
}

func (c *CreateOrderCommand) setAddress(address order.StreetAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.address = address
	return nil
}

func (c *CreateOrderCommand) setItems(items []CreateOrderItem) error {
	if len(items) == 0 {
		return ErrOrderItemsAreRequired
	}
	for i, item := range items {
		if item.ProductID.IsZero() {
			return errs.NewValueIsRequiredError(fmt.Sprintf("items[%d].product id", i))
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity", i),
				fmt.Errorf("%d is not greater than 0", item.Quantity),
			)
		}
	}
	c.items = append([]CreateOrderItem(nil), items...)
	return nil
}

package order

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the ordering core. It holds the items a
// customer asked a restaurant for and drives the order through its lifecycle:
// pending payment, paid, approved by the restaurant or cancelled.
//
// Order follows these invariants:
//   - id, tracking id and status stay unset until Initialize runs, exactly once
//   - the total price equals the sum of item subtotals once ValidateOrder passed
//   - every item price equals its product's confirmed price at validation time
//   - failure messages are only ever appended to, never with empty entries
//   - a rejected transition leaves the status untouched
//
// An Order is not safe for concurrent mutation. Load, mutate and save it
// within one unit of work.
type Order struct {
	id              kernel.OrderID
	customerID      kernel.CustomerID
	restaurantID    kernel.RestaurantID
	deliveryAddress StreetAddress
	price           kernel.Money
	items           []*OrderItem
	trackingID      kernel.TrackingID
	status          Status
	failureMessages []string

	guard guard.ConstructorGuard
}

// NewOrderParams carries what a customer submits when placing an order.
type NewOrderParams struct {
	CustomerID      kernel.CustomerID
	RestaurantID    kernel.RestaurantID
	DeliveryAddress StreetAddress
	Price           kernel.Money
	Items           []*OrderItem
}

// RestoreOrderParams carries a persisted order.
type RestoreOrderParams struct {
	ID              kernel.OrderID
	CustomerID      kernel.CustomerID
	RestaurantID    kernel.RestaurantID
	DeliveryAddress StreetAddress
	Price           kernel.Money
	Items           []*OrderItem
	TrackingID      kernel.TrackingID
	Status          Status
	FailureMessages []string
}

// NewOrder creates an unvalidated, uninitialized order from a placement request.
// Structural problems (missing ids, address or items) are reported together.
// Pricing consistency is not checked here; see ValidateOrder.
//
// Example:
//
//	o, err := order.NewOrder(order.NewOrderParams{
//	    CustomerID:      customerID,
//	    RestaurantID:    restaurantID,
//	    DeliveryAddress: address,
//	    Price:           kernel.MustMoney("200.00"),
//	    Items:           items,
//	})
func NewOrder(params NewOrderParams) (*Order, error) {
	o := &Order{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		o.setCustomerID(params.CustomerID),
		o.setRestaurantID(params.RestaurantID),
		o.setDeliveryAddress(params.DeliveryAddress),
		o.setItems(params.Items),
	); err != nil {
		return nil, err
	}
	o.price = params.Price

	return o, nil
}

// RestoreOrder rebuilds an initialized order from storage. Items must already
// be bound to the order id.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	o, err := NewOrder(NewOrderParams{
		CustomerID:      params.CustomerID,
		RestaurantID:    params.RestaurantID,
		DeliveryAddress: params.DeliveryAddress,
		Price:           params.Price,
		Items:           params.Items,
	})
	if err != nil {
		return nil, err
	}

	var errID, errTrackingID, errItems error
	if params.ID.IsZero() {
		errID = errs.NewValueIsRequiredError("order id")
	}
	if params.TrackingID.IsZero() {
		errTrackingID = errs.NewValueIsRequiredError("tracking id")
	}
	for _, item := range params.Items {
		if !item.OrderID().IsEqual(params.ID) {
			errItems = errs.NewValueIsInvalidError("order item does not belong to order")
			break
		}
	}
	if err = errors.Join(errID, errTrackingID, params.Status.Validate(), errItems); err != nil {
		return nil, err
	}

	o.id = params.ID
	o.trackingID = params.TrackingID
	o.status = params.Status
	o.AppendFailureMessages(params.FailureMessages)
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.OrderID {
	return o.id
}

func (o *Order) CustomerID() kernel.CustomerID {
	return o.customerID
}

func (o *Order) RestaurantID() kernel.RestaurantID {
	return o.restaurantID
}

func (o *Order) DeliveryAddress() StreetAddress {
	return o.deliveryAddress
}

// Price returns the total price submitted for the order.
func (o *Order) Price() kernel.Money {
	return o.price
}

// Items returns the items in submission order. The slice is a copy.
func (o *Order) Items() []*OrderItem {
	return append([]*OrderItem(nil), o.items...)
}

// ProductIDs lists the product ids referenced by the items, in item order.
func (o *Order) ProductIDs() []kernel.ProductID {
	ids := make([]kernel.ProductID, 0, len(o.items))
	for _, item := range o.items {
		ids = append(ids, item.product.ID())
	}
	return ids
}

func (o *Order) TrackingID() kernel.TrackingID {
	return o.trackingID
}

func (o *Order) Status() Status {
	return o.status
}

// FailureMessages returns a copy of the accumulated failure messages.
// It is nil when no failure was ever recorded.
func (o *Order) FailureMessages() []string {
	if o.failureMessages == nil {
		return nil
	}
	return append([]string(nil), o.failureMessages...)
}

// ValidateOrder checks pricing consistency of an order that has not been
// initialized yet:
//   - the total price is strictly positive
//   - every item product is confirmed by the catalog, and every item price
//     is positive, equals that product's price and times the quantity
//     equals the item subtotal
//   - the item subtotals add up to the total price
//
// The first violation is returned as an *errs.PricingError. Item checks run
// before the total comparison, which only happens once every item passed.
// The order is never mutated, so a failed validation can be retried.
func (o *Order) ValidateOrder() error {
	if err := o.ensureUninitialized("validate"); err != nil {
		return err
	}

	if !o.price.IsPositive() {
		return errs.NewTotalPriceNotPositiveError(o.price.String())
	}

	itemsTotal := kernel.ZeroMoney
	for _, item := range o.items {
		if !item.isPriceValid() {
			return errs.NewItemPriceIsInvalidError(item.price.String(), item.product.ID().String())
		}
		itemsTotal = itemsTotal.Add(item.subTotal)
	}

	if !o.price.IsEqual(itemsTotal) {
		return errs.NewTotalPriceMismatchError(o.price.String(), itemsTotal.String())
	}

	return nil
}

// Initialize assigns the order identity and moves it to Pending. Items are
// numbered 1..n in submission order and bound to the new order id.
// It fails with *errs.InvalidStateTransitionError on any second call.
func (o *Order) Initialize() error {
	if err := o.ensureUninitialized("initialize"); err != nil {
		return err
	}

	o.id = kernel.NewOrderID()
	o.trackingID = kernel.NewTrackingID()
	o.status = Pending

	for i, item := range o.items {
		itemID, err := NewItemID(int64(i + 1))
		if err != nil {
			return err
		}
		item.initialize(o.id, itemID)
	}

	return nil
}

// Pay records a successful payment: Pending -> Paid.
func (o *Order) Pay() error {
	newStatus, err := o.status.Pay()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Approve records the restaurant approval: Paid -> Approved.
func (o *Order) Approve() error {
	newStatus, err := o.status.Approve()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// InitiateCancel starts cancelling a paid order: Paid -> Cancelling.
// failureMessages explain why and are appended on success only.
func (o *Order) InitiateCancel(failureMessages []string) error {
	newStatus, err := o.status.InitiateCancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.AppendFailureMessages(failureMessages)
	return nil
}

// Cancel finishes a cancellation: Pending or Cancelling -> Cancelled.
// failureMessages are appended on success only.
func (o *Order) Cancel(failureMessages []string) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.AppendFailureMessages(failureMessages)
	return nil
}

// AppendFailureMessages adds the non-empty messages to the failure list.
// Existing messages are kept. It never fails.
func (o *Order) AppendFailureMessages(failureMessages []string) {
	for _, msg := range failureMessages {
		if msg == "" {
			continue
		}
		o.failureMessages = append(o.failureMessages, msg)
	}
}

func (o *Order) ensureUninitialized(operation string) error {
	if !o.id.IsZero() || o.status != Unknown {
		return errs.NewInvalidStateTransitionError(operation, o.status)
	}
	return nil
}

func (o *Order) setCustomerID(id kernel.CustomerID) error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("customer id")
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.RestaurantID) error {
	if id.IsZero() {
		return errs.NewValueIsRequiredError("restaurant id")
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setDeliveryAddress(address StreetAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setItems(items []*OrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	for _, item := range items {
		if item == nil {
			return errs.NewValueIsRequiredError("order item")
		}
	}
	o.items = append([]*OrderItem(nil), items...)
	return nil
}

// snapshot copies the order down to its items and products.
func (o *Order) snapshot() *Order {
	c := *o
	c.items = make([]*OrderItem, 0, len(o.items))
	for _, item := range o.items {
		itemCopy := *item
		product := *item.product
		itemCopy.product = &product
		c.items = append(c.items, &itemCopy)
	}
	c.failureMessages = append([]string(nil), o.failureMessages...)
	return &c
}

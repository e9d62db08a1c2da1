package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Identifier is the single typed identity wrapper used by every entity.
// K is a phantom kind that keeps identifiers of different entities from being
// mixed up at compile time; V is the wrapped value (UUID or an integer).
// Equality is by wrapped value only. The zero Identifier is "unset".
type Identifier[K any, V comparable] struct {
	value V
}

// NewIdentifier wraps value. It fails when value is the zero value of V.
func NewIdentifier[K any, V comparable](paramName string, value V) (Identifier[K, V], error) {
	id := Identifier[K, V]{value: value}
	if id.IsZero() {
		return Identifier[K, V]{}, errs.NewValueIsRequiredError(paramName)
	}
	if v, ok := any(value).(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return Identifier[K, V]{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
		}
	}
	return id, nil
}

// Value returns the wrapped value.
func (i Identifier[K, V]) Value() V {
	return i.value
}

// IsZero reports whether the identifier has not been assigned.
func (i Identifier[K, V]) IsZero() bool {
	var zero V
	return i.value == zero
}

// IsEqual compares wrapped values.
func (i Identifier[K, V]) IsEqual(other Identifier[K, V]) bool {
	return i.value == other.value
}

func (i Identifier[K, V]) String() string {
	return fmt.Sprint(i.value)
}

type (
	orderKind      struct{}
	customerKind   struct{}
	restaurantKind struct{}
	productKind    struct{}
	trackingKind   struct{}
)

type (
	// OrderID identifies an Order aggregate.
	OrderID = Identifier[orderKind, UUID]
	// CustomerID identifies a customer placing orders.
	CustomerID = Identifier[customerKind, UUID]
	// RestaurantID identifies a restaurant and its catalog.
	RestaurantID = Identifier[restaurantKind, UUID]
	// ProductID identifies a catalog product.
	ProductID = Identifier[productKind, UUID]
	// TrackingID is the customer-facing handle of an order.
	TrackingID = Identifier[trackingKind, UUID]
)

func NewOrderID() OrderID {
	return OrderID{value: NewUUID()}
}

func NewTrackingID() TrackingID {
	return TrackingID{value: NewUUID()}
}

func OrderIDFrom(u UUID) (OrderID, error) {
	return NewIdentifier[orderKind]("order id", u)
}

func CustomerIDFrom(u UUID) (CustomerID, error) {
	return NewIdentifier[customerKind]("customer id", u)
}

func RestaurantIDFrom(u UUID) (RestaurantID, error) {
	return NewIdentifier[restaurantKind]("restaurant id", u)
}

func ProductIDFrom(u UUID) (ProductID, error) {
	return NewIdentifier[productKind]("product id", u)
}

func TrackingIDFrom(u UUID) (TrackingID, error) {
	return NewIdentifier[trackingKind]("tracking id", u)
}

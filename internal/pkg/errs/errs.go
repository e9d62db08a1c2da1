package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound         = errors.New("object not found")
	ErrValueIsInvalid         = errors.New("value is invalid")
	ErrValueIsRequired        = errors.New("value is required")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrPricing                = errors.New("pricing is invalid")
	ErrRestaurantInactive     = errors.New("restaurant is not active")
	ErrPersistence            = errors.New("persistence failed")
)

// ObjectNotFoundError reports that an entity identified by ID could not be found.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
	}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{
		ParamName: paramName,
		ID:        id,
		Cause:     cause,
	}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a parameter whose value breaks a business rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsRequiredError reports a missing mandatory parameter.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{
		ParamName: paramName,
		Cause:     cause,
	}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidStateTransitionError reports a lifecycle operation attempted from a
// state that does not allow it. It always points at a defect in the calling sequence.
type InvalidStateTransitionError struct {
	Operation string
	State     string
}

func NewInvalidStateTransitionError(operation string, state fmt.Stringer) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{
		Operation: operation,
		State:     state.String(),
	}
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("%s: order is not in correct state for %s operation: %s",
		ErrInvalidStateTransition, e.Operation, e.State)
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// PricingError reports submitted prices that are inconsistent with each other
// or with the restaurant catalog. Amount is the offending submitted value,
// Expected the computed one (if any), ProductID the offending product (if any).
type PricingError struct {
	Amount    string
	Expected  string
	ProductID string
	reason    string
}

func NewTotalPriceNotPositiveError(amount string) *PricingError {
	return &PricingError{
		Amount: amount,
		reason: "total price must be greater than zero",
	}
}

func NewItemPriceIsInvalidError(amount, productID string) *PricingError {
	return &PricingError{
		Amount:    amount,
		ProductID: productID,
		reason:    fmt.Sprintf("order item price: %s is not valid for product %s", amount, productID),
	}
}

func NewTotalPriceMismatchError(amount, expected string) *PricingError {
	return &PricingError{
		Amount:   amount,
		Expected: expected,
		reason:   fmt.Sprintf("total price: %s is not equal to order items total: %s", amount, expected),
	}
}

func (e *PricingError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPricing, e.reason)
}

func (e *PricingError) Unwrap() error {
	return ErrPricing
}

// RestaurantInactiveError reports an order placed with a restaurant that is not active.
type RestaurantInactiveError struct {
	RestaurantID string
}

func NewRestaurantInactiveError(restaurantID string) *RestaurantInactiveError {
	return &RestaurantInactiveError{RestaurantID: restaurantID}
}

func (e *RestaurantInactiveError) Error() string {
	return fmt.Sprintf("%s: restaurant with id %s is not active", ErrRestaurantInactive, e.RestaurantID)
}

func (e *RestaurantInactiveError) Unwrap() error {
	return ErrRestaurantInactive
}

// PersistenceError reports a write the store did not confirm. The core never retries it.
type PersistenceError struct {
	Operation string
	Cause     error
}

func NewPersistenceError(operation string) *PersistenceError {
	return &PersistenceError{Operation: operation}
}

func NewPersistenceErrorWithCause(operation string, cause error) *PersistenceError {
	return &PersistenceError{
		Operation: operation,
		Cause:     cause,
	}
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: could not %s (cause: %v)", ErrPersistence, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: could not %s", ErrPersistence, e.Operation)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *PersistenceError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrPersistence, e.Cause}
	}
	return []error{ErrPersistence}
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%s", v), "\n", " ")
}

package order

import (
	"errors"

	"ordering/internal/pkg/errs"
)

// StreetAddress is the delivery address of an order. It carries no business
// rules beyond being complete.
type StreetAddress struct {
	street     string
	postalCode string
	city       string
}

// NewStreetAddress requires every part of the address.
func NewStreetAddress(street, postalCode, city string) (StreetAddress, error) {
	if err := errors.Join(
		requireText("street", street),
		requireText("postal code", postalCode),
		requireText("city", city),
	); err != nil {
		return StreetAddress{}, err
	}

	return StreetAddress{
		street:     street,
		postalCode: postalCode,
		city:       city,
	}, nil
}

func (a StreetAddress) Street() string {
	return a.street
}

func (a StreetAddress) PostalCode() string {
	return a.postalCode
}

func (a StreetAddress) City() string {
	return a.city
}

func (a StreetAddress) IsEqual(other StreetAddress) bool {
	return a == other
}

// Validate fails for the zero address.
func (a StreetAddress) Validate() error {
	if a == (StreetAddress{}) {
		return errs.NewValueIsRequiredError("delivery address")
	}
	return nil
}

func requireText(paramName, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	return nil
}

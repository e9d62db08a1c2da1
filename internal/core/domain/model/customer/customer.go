// Package customer holds the Customer entity. The ordering core only needs to
// know that a customer exists before accepting an order on their behalf.
package customer

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer is a person allowed to place orders.
type Customer struct {
	id        kernel.CustomerID
	username  string
	firstName string
	lastName  string

	guard guard.ConstructorGuard
}

// NewCustomer validates and builds a Customer. Names are informational only.
func NewCustomer(id kernel.CustomerID, username, firstName, lastName string) (*Customer, error) {
	if id.IsZero() {
		return nil, errs.NewValueIsRequiredError("customer id")
	}
	if username == "" {
		return nil, errs.NewValueIsRequiredError("username")
	}

	return &Customer{
		id:        id,
		username:  username,
		firstName: firstName,
		lastName:  lastName,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.CustomerID {
	return c.id
}

func (c *Customer) Username() string {
	return c.username
}

func (c *Customer) FirstName() string {
	return c.firstName
}

func (c *Customer) LastName() string {
	return c.lastName
}

// Package ports defines the contracts between the ordering core and its
// infrastructure: repositories, the unit of work and the publishers.
package ports

import (
	"context"

	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
)

// CustomerRepository looks up customers allowed to place orders.
type CustomerRepository interface {
	// Get returns errs.ObjectNotFoundError when the customer does not exist.
	Get(ctx context.Context, id kernel.CustomerID) (*customer.Customer, error)
}

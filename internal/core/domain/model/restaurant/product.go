package restaurant

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// Product is a catalog entry. Order items reference products; the catalog copy
// of a product carries the confirmed name and price.
type Product struct {
	id        kernel.ProductID
	name      string
	price     kernel.Money
	confirmed bool
}

// NewProduct builds a catalog product with its confirmed name and price.
func NewProduct(id kernel.ProductID, name string, price kernel.Money) (*Product, error) {
	if id.IsZero() {
		return nil, errs.NewValueIsRequiredError("product id")
	}
	return &Product{id: id, name: name, price: price, confirmed: true}, nil
}

// NewProductReference builds a product known only by id, as submitted with an
// order item. It has no name and no price until the catalog confirms it.
func NewProductReference(id kernel.ProductID) (*Product, error) {
	if id.IsZero() {
		return nil, errs.NewValueIsRequiredError("product id")
	}
	return &Product{id: id}, nil
}

func (p *Product) ID() kernel.ProductID {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Price() kernel.Money {
	return p.price
}

// IsConfirmed reports whether name and price come from the catalog.
func (p *Product) IsConfirmed() bool {
	return p.confirmed
}

// UpdateWithConfirmedNameAndPrice takes the catalog's name and price.
func (p *Product) UpdateWithConfirmedNameAndPrice(name string, price kernel.Money) {
	p.name = name
	p.price = price
	p.confirmed = true
}

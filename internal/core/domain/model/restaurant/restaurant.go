package restaurant

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant constructor")

// Restaurant is a lookup result: a restaurant with the subset of its catalog
// matching the products of one order.
type Restaurant struct {
	id       kernel.RestaurantID
	products []*Product
	active   bool

	guard guard.ConstructorGuard
}

// NewRestaurant builds a Restaurant. Nil products are rejected.
func NewRestaurant(id kernel.RestaurantID, products []*Product, active bool) (*Restaurant, error) {
	if id.IsZero() {
		return nil, errs.NewValueIsRequiredError("restaurant id")
	}
	for _, p := range products {
		if p == nil {
			return nil, errs.NewValueIsRequiredError("product")
		}
	}

	return &Restaurant{
		id:       id,
		products: append([]*Product(nil), products...),
		active:   active,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (r *Restaurant) Validate() error {
	if r == nil {
		return ErrRestaurantIsNotConstructed
	}
	return r.guard.Validate(ErrRestaurantIsNotConstructed)
}

func (r *Restaurant) ID() kernel.RestaurantID {
	return r.id
}

func (r *Restaurant) IsActive() bool {
	return r.active
}

// Products returns the catalog slice. The slice is a copy, the products are shared.
func (r *Restaurant) Products() []*Product {
	return append([]*Product(nil), r.products...)
}

// Catalog indexes the products by id.
func (r *Restaurant) Catalog() map[kernel.ProductID]*Product {
	catalog := make(map[kernel.ProductID]*Product, len(r.products))
	for _, p := range r.products {
		catalog[p.ID()] = p
	}
	return catalog
}

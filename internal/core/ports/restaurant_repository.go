package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/restaurant"
)

// RestaurantRepository looks up a restaurant together with the requested
// part of its catalog.
type RestaurantRepository interface {
	// FindWithProducts returns the restaurant and those of productIDs it
	// offers. It returns errs.ObjectNotFoundError when the restaurant does not exist.
	FindWithProducts(ctx context.Context, id kernel.RestaurantID, productIDs []kernel.ProductID) (*restaurant.Restaurant, error)
}

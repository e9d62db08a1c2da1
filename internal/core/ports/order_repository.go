package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Save inserts a new order with its items and address, or stores the
	// status and failure messages of an existing one. It returns the order as
	// stored; a nil order means the store did not confirm the write.
	Save(ctx context.Context, aggregate *order.Order) (*order.Order, error)

	// Get loads an order by id and locks it until the unit of work ends, so
	// that load, check, transition and save are serialized per order.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// FindByTrackingID loads an order by its customer-facing tracking id.
	FindByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*order.Order, error)

	// FindPendingCreatedBefore returns at most limit order ids that are still
	// pending and were created before the given time, oldest first.
	FindPendingCreatedBefore(ctx context.Context, before time.Time, limit int) ([]kernel.OrderID, error)
}

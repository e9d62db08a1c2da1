package queries

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderFinder is the part of the order repository the tracking query needs.
type OrderFinder interface {
	FindByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*order.Order, error)
}

// TrackOrderQueryHandler maps a tracked order to its customer view. Unknown
// tracking ids surface as *errs.ObjectNotFoundError from the finder.
type TrackOrderQueryHandler struct {
	orders OrderFinder
}

func NewTrackOrderQueryHandler(orders OrderFinder) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{orders: orders}
}

func (h TrackOrderQueryHandler) Handle(ctx context.Context, query TrackOrderQuery) (TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	o, err := h.orders.FindByTrackingID(ctx, query.TrackingID())
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}

	return TrackOrderQueryResponse{
		TrackingID:      o.TrackingID(),
		Status:          o.Status(),
		FailureMessages: o.FailureMessages(),
	}, nil
}

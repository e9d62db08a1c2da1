// Package queries contains read operations of the ordering core.
package queries

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrTrackOrderQueryIsNotConstructed = errors.New(
		"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
	)
)

// TrackOrderQuery looks an order up by the tracking id handed to the customer.
//
// Example:
//
//	query, err := NewTrackOrderQuery(trackingID)
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // unknown tracking id
//	}
//	fmt.Println(resp.Status, resp.FailureMessages)
type TrackOrderQuery struct {
	trackingID kernel.TrackingID

	guard guard.ConstructorGuard
}

func NewTrackOrderQuery(trackingID kernel.TrackingID) (TrackOrderQuery, error) {
	if trackingID.IsZero() {
		return TrackOrderQuery{}, errs.NewValueIsRequiredError("tracking id")
	}
	return TrackOrderQuery{trackingID: trackingID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

func (q TrackOrderQuery) TrackingID() kernel.TrackingID {
	return q.trackingID
}

// TrackOrderQueryResponse is the read-only view of an order shown to the customer.
type TrackOrderQueryResponse struct {
	TrackingID      kernel.TrackingID
	Status          order.Status
	FailureMessages []string
}

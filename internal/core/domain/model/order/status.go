package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Unknown ──initialize──> Pending ──pay──> Paid ──approve──> Approved
//	                           │               │
//	                           │         initiate cancel
//	                           │               │
//	                           │               v
//	                           └──cancel──> Cancelled <──cancel── Cancelling
//
// Unknown is the zero value and stands for an order that has not been
// initialized yet. It is never persisted.
type Status int

const (
	// Unknown is the status of an order that has not been initialized.
	Unknown Status = iota

	// Pending orders are waiting for the payment outcome.
	Pending

	// Paid orders are waiting for the restaurant approval.
	Paid

	// Approved is the terminal success state.
	Approved

	// Cancelling orders were paid but rejected; the payment is being rolled back.
	Cancelling

	// Cancelled is the terminal failure state.
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:    "UNINITIALIZED",
	Pending:    "PENDING",
	Paid:       "PAID",
	Approved:   "APPROVED",
	Cancelling: "CANCELLING",
	Cancelled:  "CANCELLED",
}

// ParseStatus maps a persisted or transmitted status name back to a Status.
// Only initialized statuses are accepted.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name && s != Unknown {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", name))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the upper-case status name used on the wire and in storage.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Approved || s == Cancelled
}

// Pay transitions Pending to Paid.
func (s Status) Pay() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidStateTransitionError("pay", s)
	}
	return Paid, nil
}

// Approve transitions Paid to Approved.
func (s Status) Approve() (Status, error) {
	if s != Paid {
		return 0, errs.NewInvalidStateTransitionError("approve", s)
	}
	return Approved, nil
}

// InitiateCancel transitions Paid to Cancelling.
func (s Status) InitiateCancel() (Status, error) {
	if s != Paid {
		return 0, errs.NewInvalidStateTransitionError("initiate cancel", s)
	}
	return Cancelling, nil
}

// Cancel transitions Pending or Cancelling to Cancelled. Paid orders must go
// through InitiateCancel first so the payment gets compensated.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Cancelling {
		return 0, errs.NewInvalidStateTransitionError("cancel", s)
	}
	return Cancelled, nil
}

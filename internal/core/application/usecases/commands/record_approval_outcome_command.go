package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrRecordApprovalOutcomeCommandIsNotConstructed = errors.New(
	"RecordApprovalOutcomeCommand must be created via NewRecordApprovalOutcomeCommand constructor",
)

// RecordApprovalOutcomeCommand carries the restaurant's decision on a paid order.
type RecordApprovalOutcomeCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.OrderID
	approved        bool
	failureMessages []string

	guard guard.ConstructorGuard
}

func NewRecordApprovalOutcomeCommand(
	orderID kernel.OrderID,
	approved bool,
	failureMessages []string,
) (RecordApprovalOutcomeCommand, error) {
	if orderID.IsZero() {
		return RecordApprovalOutcomeCommand{}, errs.NewValueIsRequiredError("order id")
	}

	return RecordApprovalOutcomeCommand{
		orderID:         orderID,
		approved:        approved,
		failureMessages: append([]string(nil), failureMessages...),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c RecordApprovalOutcomeCommand) Validate() error {
	return c.guard.Validate(ErrRecordApprovalOutcomeCommandIsNotConstructed)
}

func (c RecordApprovalOutcomeCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c RecordApprovalOutcomeCommand) Approved() bool {
	return c.approved
}

func (c RecordApprovalOutcomeCommand) FailureMessages() []string {
	return append([]string(nil), c.failureMessages...)
}

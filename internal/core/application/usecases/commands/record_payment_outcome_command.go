package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrRecordPaymentOutcomeCommandIsNotConstructed = errors.New(
	"RecordPaymentOutcomeCommand must be created via NewRecordPaymentOutcomeCommand constructor",
)

// RecordPaymentOutcomeCommand carries the payment service's verdict on an order.
type RecordPaymentOutcomeCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.OrderID
	succeeded       bool
	failureMessages []string

	guard guard.ConstructorGuard
}

func NewRecordPaymentOutcomeCommand(
	orderID kernel.OrderID,
	succeeded bool,
	failureMessages []string,
) (RecordPaymentOutcomeCommand, error) {
	if orderID.IsZero() {
		return RecordPaymentOutcomeCommand{}, errs.NewValueIsRequiredError("order id")
	}

	return RecordPaymentOutcomeCommand{
		orderID:         orderID,
		succeeded:       succeeded,
		failureMessages: append([]string(nil), failureMessages...),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c RecordPaymentOutcomeCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentOutcomeCommandIsNotConstructed)
}

func (c RecordPaymentOutcomeCommand) OrderID() kernel.OrderID {
	return c.orderID
}

func (c RecordPaymentOutcomeCommand) Succeeded() bool {
	return c.succeeded
}

func (c RecordPaymentOutcomeCommand) FailureMessages() []string {
	return append([]string(nil), c.failureMessages...)
}

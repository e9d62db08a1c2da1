package commands

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

// PaymentTimedOutMessage is recorded on orders cancelled for waiting too long on a payment.
const PaymentTimedOutMessage = "payment timed out"

var ErrCancelStalePendingOrdersCommandIsNotConstructed = errors.New(
	"CancelStalePendingOrdersCommand must be created via NewCancelStalePendingOrdersCommand constructor",
)

// CancelStalePendingOrdersCommand cancels orders that stayed PENDING for
// longer than maxAge, at most batchSize per run.
type CancelStalePendingOrdersCommand struct { //nolint:recvcheck //using for validation
	maxAge    time.Duration
	batchSize int

	guard guard.ConstructorGuard
}

func NewCancelStalePendingOrdersCommand(maxAge time.Duration, batchSize int) (CancelStalePendingOrdersCommand, error) {
	var errAge, errBatch error
	if maxAge <= 0 {
		errAge = errs.NewValueIsInvalidErrorWithCause("max age", fmt.Errorf("%s is not positive", maxAge))
	}
	if batchSize <= 0 {
		errBatch = errs.NewValueIsInvalidErrorWithCause("batch size", fmt.Errorf("%d is not greater than 0", batchSize))
	}
	if err := errors.Join(errAge, errBatch); err != nil {
		return CancelStalePendingOrdersCommand{}, err
	}

	return CancelStalePendingOrdersCommand{
		maxAge:    maxAge,
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CancelStalePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelStalePendingOrdersCommandIsNotConstructed)
}

func (c CancelStalePendingOrdersCommand) MaxAge() time.Duration {
	return c.maxAge
}

func (c CancelStalePendingOrdersCommand) BatchSize() int {
	return c.batchSize
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ordering/internal/core/application/messages"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// CancelStalePendingOrdersCommandHandler enforces the payment timeout of the
// saga. Each order is cancelled in its own unit of work so one failure does
// not hold back the rest of the batch.
type CancelStalePendingOrdersCommandHandler struct {
	uowFactory      OrderUoWFactory
	domainService   services.OrderDomainService
	customerNotices ports.OutboundMessagePublisher
	now             func() time.Time
	logger          *slog.Logger
}

func NewCancelStalePendingOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	domainService services.OrderDomainService,
	customerNotices ports.OutboundMessagePublisher,
	logger *slog.Logger,
) CancelStalePendingOrdersCommandHandler {
	return CancelStalePendingOrdersCommandHandler{
		uowFactory:      uowFactory,
		domainService:   domainService,
		customerNotices: customerNotices,
		now:             time.Now,
		logger:          logger.With("component", "stale_order_canceller"),
	}
}

// Handle returns how many orders were cancelled. Errors of individual orders
// are joined; orders that left PENDING in the meantime are skipped.
func (h CancelStalePendingOrdersCommandHandler) Handle(ctx context.Context, cmd CancelStalePendingOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	ids, err := h.findStale(ctx, h.now().Add(-cmd.MaxAge()), cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	var (
		cancelled int
		failures  []error
	)
	for _, id := range ids {
		done, cancelErr := h.cancelOne(ctx, id)
		if cancelErr != nil {
			failures = append(failures, fmt.Errorf("order %s: %w", id, cancelErr))
			continue
		}
		if done {
			cancelled++
		}
	}

	return cancelled, errors.Join(failures...)
}

func (h CancelStalePendingOrdersCommandHandler) findStale(ctx context.Context, before time.Time, limit int) ([]kernel.OrderID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().FindPendingCreatedBefore(ctx, before, limit)
}

func (h CancelStalePendingOrdersCommandHandler) cancelOne(ctx context.Context, id kernel.OrderID) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if o.Status() != order.Pending {
		return false, nil
	}

	if err = h.domainService.CancelOrder(o, []string{PaymentTimedOutMessage}); err != nil {
		return false, err
	}
	if _, err = saveOrder(ctx, repo, o); err != nil {
		return false, err
	}
	if err = uow.Commit(ctx); err != nil {
		return false, errs.NewPersistenceErrorWithCause("commit order", err)
	}

	h.logger.InfoContext(ctx, "Stale pending order cancelled", "order_id", id.String())
	publish(ctx, h.logger, h.customerNotices, messages.CustomerCancellationNotice(o, h.now()))
	return true, nil
}

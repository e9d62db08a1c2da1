package commands

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/application/messages"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// RecordPaymentOutcomeCommandHandler applies a payment result to an order.
//
// A successful payment moves the order to PAID and asks the restaurant for
// approval. A failed payment cancels the order:
//   - PENDING and CANCELLING orders are cancelled directly
//   - PAID orders go through InitiateCancel first, then Cancel
//
// In both failure cases the customer is notified. Any other status is an
// out-of-sequence message and fails with *errs.InvalidStateTransitionError.
type RecordPaymentOutcomeCommandHandler struct {
	uowFactory       OrderUoWFactory
	domainService    services.OrderDomainService
	events           ports.EventPublisher
	approvalRequests ports.OutboundMessagePublisher
	customerNotices  ports.OutboundMessagePublisher
	logger           *slog.Logger
}

func NewRecordPaymentOutcomeCommandHandler(
	uowFactory OrderUoWFactory,
	domainService services.OrderDomainService,
	events ports.EventPublisher,
	approvalRequests ports.OutboundMessagePublisher,
	customerNotices ports.OutboundMessagePublisher,
	logger *slog.Logger,
) RecordPaymentOutcomeCommandHandler {
	return RecordPaymentOutcomeCommandHandler{
		uowFactory:       uowFactory,
		domainService:    domainService,
		events:           events,
		approvalRequests: approvalRequests,
		customerNotices:  customerNotices,
		logger:           logger.With("component", "payment_outcome_handler"),
	}
}

func (h RecordPaymentOutcomeCommandHandler) Handle(ctx context.Context, cmd RecordPaymentOutcomeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if cmd.Succeeded() {
		return h.pay(ctx, uow, repo, o)
	}
	return h.cancel(ctx, uow, repo, o, cmd.FailureMessages())
}

func (h RecordPaymentOutcomeCommandHandler) pay(
	ctx context.Context,
	uow TxManager,
	repo ports.OrderRepository,
	o *order.Order,
) error {
	paid, err := h.domainService.PayOrder(o)
	if err != nil {
		return err
	}

	if _, err = saveOrder(ctx, repo, o); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return errs.NewPersistenceErrorWithCause("commit order", err)
	}

	h.logger.InfoContext(ctx, "Order paid", "order_id", o.ID().String())

	h.events.PublishOrderPaid(ctx, paid)
	publish(ctx, h.logger, h.approvalRequests, messages.RestaurantApprovalRequest(paid))
	return nil
}

func (h RecordPaymentOutcomeCommandHandler) cancel(
	ctx context.Context,
	uow TxManager,
	repo ports.OrderRepository,
	o *order.Order,
	failureMessages []string,
) error {
	var initiated *order.OrderCancelledEvent

	if o.Status() == order.Paid {
		evt, err := h.domainService.InitiateCancel(o, failureMessages)
		if err != nil {
			return err
		}
		initiated = &evt
		failureMessages = nil
	}

	if err := h.domainService.CancelOrder(o, failureMessages); err != nil {
		return err
	}

	if _, err := saveOrder(ctx, repo, o); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return errs.NewPersistenceErrorWithCause("commit order", err)
	}

	h.logger.InfoContext(ctx, "Order cancelled after payment failure",
		"order_id", o.ID().String(), "failure_messages", o.FailureMessages())

	if initiated != nil {
		h.events.PublishOrderCancelled(ctx, *initiated)
	}
	publish(ctx, h.logger, h.customerNotices, messages.CustomerCancellationNotice(o, time.Now()))
	return nil
}

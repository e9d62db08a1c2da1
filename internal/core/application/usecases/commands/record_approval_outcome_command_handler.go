package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/application/messages"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// RecordApprovalOutcomeCommandHandler applies the restaurant decision to a
// paid order. Approval is terminal and only stored. A rejection starts the
// cancellation and asks the payment service for a refund; the refund
// confirmation comes back as a payment outcome.
type RecordApprovalOutcomeCommandHandler struct {
	uowFactory      OrderUoWFactory
	domainService   services.OrderDomainService
	events          ports.EventPublisher
	paymentRequests ports.OutboundMessagePublisher
	logger          *slog.Logger
}

func NewRecordApprovalOutcomeCommandHandler(
	uowFactory OrderUoWFactory,
	domainService services.OrderDomainService,
	events ports.EventPublisher,
	paymentRequests ports.OutboundMessagePublisher,
	logger *slog.Logger,
) RecordApprovalOutcomeCommandHandler {
	return RecordApprovalOutcomeCommandHandler{
		uowFactory:      uowFactory,
		domainService:   domainService,
		events:          events,
		paymentRequests: paymentRequests,
		logger:          logger.With("component", "approval_outcome_handler"),
	}
}

func (h RecordApprovalOutcomeCommandHandler) Handle(ctx context.Context, cmd RecordApprovalOutcomeCommand) error {
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

	if cmd.Approved() {
		if err = h.domainService.ApproveOrder(o); err != nil {
			return err
		}
		if _, err = saveOrder(ctx, repo, o); err != nil {
			return err
		}
		if err = uow.Commit(ctx); err != nil {
			return errs.NewPersistenceErrorWithCause("commit order", err)
		}
		h.logger.InfoContext(ctx, "Order approved", "order_id", o.ID().String())
		return nil
	}

	cancelled, err := h.domainService.InitiateCancel(o, cmd.FailureMessages())
	if err != nil {
		return err
	}
	if _, err = saveOrder(ctx, repo, o); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return errs.NewPersistenceErrorWithCause("commit order", err)
	}

	h.logger.InfoContext(ctx, "Order rejected by restaurant, cancelling",
		"order_id", o.ID().String(), "failure_messages", o.FailureMessages())

	h.events.PublishOrderCancelled(ctx, cancelled)
	publish(ctx, h.logger, h.paymentRequests, messages.PaymentCancelRequest(cancelled))
	return nil
}

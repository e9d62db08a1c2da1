package commands

import (
	"context"
	"log/slog"

	"ordering/internal/core/application/messages"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// saveOrder stores o and turns a failed or unconfirmed write into an
// *errs.PersistenceError.
func saveOrder(ctx context.Context, repo ports.OrderRepository, o *order.Order) (*order.Order, error) {
	saved, err := repo.Save(ctx, o)
	if err != nil {
		return nil, errs.NewPersistenceErrorWithCause("save order", err)
	}
	if saved == nil {
		return nil, errs.NewPersistenceError("save order")
	}
	return saved, nil
}

// publish sends msg after the unit of work committed. The order state is
// already durable at that point, so a failed delivery is logged, not returned.
func publish(ctx context.Context, logger *slog.Logger, publisher ports.OutboundMessagePublisher, msg messages.OrderMessage) {
	if err := publisher.Publish(ctx, msg); err != nil {
		logger.ErrorContext(ctx, "Failed to publish order message",
			"type", string(msg.Type), "order_id", msg.OrderID, "error", err)
	}
}

package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"ordering/internal/core/application/messages"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

type PaymentOutcomeHandler interface {
	Handle(ctx context.Context, cmd commands.RecordPaymentOutcomeCommand) error
}

type ApprovalOutcomeHandler interface {
	Handle(ctx context.Context, cmd commands.RecordApprovalOutcomeCommand) error
}

// NewPaymentResponseConsumer feeds payment responses to the payment outcome
// handler. A cancelled payment counts as a failed one: the order ends up cancelled.
func NewPaymentResponseConsumer(
	reader Reader,
	topic string,
	handler PaymentOutcomeHandler,
	observer Observer,
	logger *slog.Logger,
	opts ...Option,
) *Consumer {
	handle := func(ctx context.Context, msg kafka.Message) error {
		var resp messages.PaymentResponse
		if err := json.Unmarshal(msg.Value, &resp); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("payment response", err)
		}

		orderID, err := parseOrderID(resp.OrderID)
		if err != nil {
			return err
		}

		cmd, err := commands.NewRecordPaymentOutcomeCommand(orderID, resp.Succeeded(), resp.FailureMessages)
		if err != nil {
			return err
		}
		return handler.Handle(ctx, cmd)
	}
	return newConsumer(reader, topic, handle, observer, logger, opts...)
}

// NewApprovalResponseConsumer feeds restaurant decisions to the approval outcome handler.
func NewApprovalResponseConsumer(
	reader Reader,
	topic string,
	handler ApprovalOutcomeHandler,
	observer Observer,
	logger *slog.Logger,
	opts ...Option,
) *Consumer {
	handle := func(ctx context.Context, msg kafka.Message) error {
		var resp messages.RestaurantApprovalResponse
		if err := json.Unmarshal(msg.Value, &resp); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("restaurant approval response", err)
		}

		orderID, err := parseOrderID(resp.OrderID)
		if err != nil {
			return err
		}

		cmd, err := commands.NewRecordApprovalOutcomeCommand(orderID, resp.Approved(), resp.FailureMessages)
		if err != nil {
			return err
		}
		return handler.Handle(ctx, cmd)
	}
	return newConsumer(reader, topic, handle, observer, logger, opts...)
}

func parseOrderID(raw string) (kernel.OrderID, error) {
	u, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.OrderID{}, errs.NewValueIsInvalidErrorWithCause("order id", err)
	}
	return kernel.OrderIDFrom(u)
}

// Package kafka publishes outbound order messages (payment and restaurant
// approval requests) to Kafka topics.
package kafka

import (
	"context"
	"fmt"

	"ordering/internal/core/application/messages"
	pkgkafka "ordering/internal/pkg/kafka"
)

// OrderMessagePublisher writes order messages to one topic, keyed by order id.
type OrderMessagePublisher struct {
	writer pkgkafka.Writer
	topic  string
}

func NewOrderMessagePublisher(writer pkgkafka.Writer, topic string) *OrderMessagePublisher {
	return &OrderMessagePublisher{writer: writer, topic: topic}
}

func (p *OrderMessagePublisher) Publish(ctx context.Context, msg messages.OrderMessage) error {
	if msg.OrderID == "" {
		return fmt.Errorf("publish %s to %s: order id is empty", msg.Type, p.topic)
	}
	if err := pkgkafka.PublishJSON(ctx, p.writer, msg.OrderID, msg); err != nil {
		return fmt.Errorf("publish %s to %s: %w", msg.Type, p.topic, err)
	}
	return nil
}

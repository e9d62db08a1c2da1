// Package rabbitmq delivers customer notices through a RabbitMQ topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/application/messages"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// Connection owns one AMQP connection and the channel used for publishing.
type Connection struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects and declares the durable topic exchange notices are sent to.
func Dial(url, exchange string) (*Connection, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(10 * time.Second),
	})
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	return &Connection{conn: conn, ch: ch}, nil
}

func (c *Connection) Channel() *amqp.Channel {
	return c.ch
}

func (c *Connection) Close() error {
	return errors.Join(c.ch.Close(), c.conn.Close())
}

// Channel is the part of *amqp.Channel used for publishing.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// CustomerNotificationPublisher sends order messages to customers. The
// routing key is customer.<customer id>.<message type>, so consumers can
// bind per customer or per message type.
type CustomerNotificationPublisher struct {
	ch       Channel
	exchange string
}

func NewCustomerNotificationPublisher(ch Channel, exchange string) *CustomerNotificationPublisher {
	return &CustomerNotificationPublisher{ch: ch, exchange: exchange}
}

func (p *CustomerNotificationPublisher) Publish(ctx context.Context, msg messages.OrderMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode %s notice: %w", msg.Type, err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(ctx, p.exchange, RoutingKey(msg), false, false, amqp.Publishing{
		DeliveryMode:  amqp.Persistent,
		ContentType:   "application/json",
		MessageId:     msg.EventID.String(),
		CorrelationId: msg.OrderID,
		Type:          string(msg.Type),
		Timestamp:     msg.CreatedAt,
		Body:          body,
	})
	if err != nil {
		return fmt.Errorf("publish %s notice to %s: %w", msg.Type, p.exchange, err)
	}
	return nil
}

func RoutingKey(msg messages.OrderMessage) string {
	return fmt.Sprintf("customer.%s.%s", msg.CustomerID, msg.Type)
}

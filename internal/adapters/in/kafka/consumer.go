// Package kafka consumes the payment and restaurant approval response topics
// and turns every message into a command.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ordering/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// Outcomes reported to the Observer.
const (
	OutcomeProcessed = "processed"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// Reader is the part of *kafka.Reader the consumer needs. Offsets are only
// committed once a message has been dealt with.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Observer records the outcome of every message.
type Observer interface {
	Observe(topic, outcome string)
}

type messageHandler func(ctx context.Context, msg kafka.Message) error

// Consumer runs one topic's fetch, handle, commit loop.
type Consumer struct {
	reader      Reader
	topic       string
	handle      messageHandler
	observer    Observer
	logger      *slog.Logger
	maxAttempts int
	backoff     time.Duration
}

// Option tunes retry behavior.
type Option func(*Consumer)

// WithRetry sets how often a message failing for transient reasons is
// handled before it is given up, and the pause between attempts.
func WithRetry(maxAttempts int, backoff time.Duration) Option {
	return func(c *Consumer) {
		if maxAttempts > 0 {
			c.maxAttempts = maxAttempts
		}
		c.backoff = backoff
	}
}

func newConsumer(reader Reader, topic string, handle messageHandler, observer Observer, logger *slog.Logger, opts ...Option) *Consumer {
	c := &Consumer{
		reader:      reader,
		topic:       topic,
		handle:      handle,
		observer:    observer,
		logger:      logger.With("component", "kafka_consumer", "topic", topic),
		maxAttempts: 3,
		backoff:     2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Consumer) Topic() string {
	return c.topic
}

// Run consumes until ctx is cancelled. It returns nil on cancellation, the
// commit error if an offset cannot be stored, and the handler error once a
// message still fails after its retries. That message is left uncommitted so
// the group redelivers it after a restart.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("consumer started")
	defer c.logger.Info("consumer stopped")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("kafka fetch failed", "error", err)
			if !c.sleep(ctx) {
				return nil
			}
			continue
		}

		outcome, err := c.process(ctx, msg)
		c.observer.Observe(c.topic, outcome)
		if outcome == OutcomeFailed {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("handle %s message at partition %d offset %d: %w", c.topic, msg.Partition, msg.Offset, err)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// process handles one message. Messages that can never succeed (undecodable,
// unknown order, transition not allowed in the current state) are rejected
// at once; anything else is retried before being given up.
func (c *Consumer) process(ctx context.Context, msg kafka.Message) (string, error) {
	logger := c.logger.With("partition", msg.Partition, "offset", msg.Offset, "key", string(msg.Key))

	for attempt := 1; ; attempt++ {
		err := c.handle(ctx, msg)
		if err == nil {
			return OutcomeProcessed, nil
		}

		if isPermanent(err) {
			logger.Warn("message rejected", "error", err)
			return OutcomeRejected, nil
		}

		if attempt >= c.maxAttempts || !c.sleep(ctx) {
			logger.Error("message handling failed", "error", err, "attempts", attempt)
			return OutcomeFailed, err
		}
		logger.Warn("message handling failed, retrying", "error", err, "attempt", attempt)
	}
}

func (c *Consumer) sleep(ctx context.Context) bool {
	t := time.NewTimer(c.backoff)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func isPermanent(err error) bool {
	return errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrInvalidStateTransition)
}

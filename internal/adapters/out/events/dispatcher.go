// Package events implements ports.EventPublisher as an in-process registry of
// typed callbacks, one list per lifecycle event.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"ordering/internal/core/domain/model/order"
)

// Handler reacts to one lifecycle event. Handlers run synchronously on the
// publishing goroutine and must not block for long.
type Handler[E any] func(ctx context.Context, evt E)

type subscribers[E any] struct {
	mu       sync.RWMutex
	handlers []Handler[E]
}

func (s *subscribers[E]) add(h Handler[E]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, h)
}

func (s *subscribers[E]) snapshot() []Handler[E] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Handler[E](nil), s.handlers...)
}

// Dispatcher fans lifecycle events out to the registered handlers. A handler
// that panics is logged and skipped; the remaining handlers still run.
type Dispatcher struct {
	created   subscribers[order.OrderCreatedEvent]
	paid      subscribers[order.OrderPaidEvent]
	cancelled subscribers[order.OrderCancelledEvent]

	logger *slog.Logger
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{logger: logger.With("component", "event_dispatcher")}
}

func (d *Dispatcher) OnOrderCreated(h Handler[order.OrderCreatedEvent]) {
	d.created.add(h)
}

func (d *Dispatcher) OnOrderPaid(h Handler[order.OrderPaidEvent]) {
	d.paid.add(h)
}

func (d *Dispatcher) OnOrderCancelled(h Handler[order.OrderCancelledEvent]) {
	d.cancelled.add(h)
}

func (d *Dispatcher) PublishOrderCreated(ctx context.Context, evt order.OrderCreatedEvent) {
	dispatch(ctx, d.logger, "order_created", evt.Order(), d.created.snapshot(), evt)
}

func (d *Dispatcher) PublishOrderPaid(ctx context.Context, evt order.OrderPaidEvent) {
	dispatch(ctx, d.logger, "order_paid", evt.Order(), d.paid.snapshot(), evt)
}

func (d *Dispatcher) PublishOrderCancelled(ctx context.Context, evt order.OrderCancelledEvent) {
	dispatch(ctx, d.logger, "order_cancelled", evt.Order(), d.cancelled.snapshot(), evt)
}

func dispatch[E any](ctx context.Context, logger *slog.Logger, name string, o *order.Order, handlers []Handler[E], evt E) {
	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.ErrorContext(ctx, "event handler panicked",
						"event", name,
						"order_id", o.ID().String(),
						"panic", fmt.Sprint(r))
				}
			}()
			h(ctx, evt)
		}()
	}
}

// Package metrics exposes Prometheus collectors for the HTTP surface, the
// order lifecycle and the inbound message consumers.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"ordering/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ordering"

type ServerMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

func NewServerMetrics(reg prometheus.Registerer) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"handler"})

	reg.MustRegister(requests, latency)
	return &ServerMetrics{Requests: requests, LatencyMS: latency}
}

// Middleware records every request under its route pattern, so that
// /api/v1/orders/:trackingId is one series regardless of the id.
func (m *ServerMetrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.Requests.WithLabelValues(route, strconv.Itoa(c.Response().Status)).Inc()
			m.LatencyMS.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
			return nil
		}
	}
}

// OrderMetrics counts lifecycle events. Its methods match the event
// dispatcher's handler signature.
type OrderMetrics struct {
	Events *prometheus.CounterVec
}

func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "lifecycle_events_total",
		Help:      "Order lifecycle events published, by event.",
	}, []string{"event"})

	reg.MustRegister(events)
	return &OrderMetrics{Events: events}
}

func (m *OrderMetrics) OrderCreated(context.Context, order.OrderCreatedEvent) {
	m.Events.WithLabelValues("created").Inc()
}

func (m *OrderMetrics) OrderPaid(context.Context, order.OrderPaidEvent) {
	m.Events.WithLabelValues("paid").Inc()
}

func (m *OrderMetrics) OrderCancelled(context.Context, order.OrderCancelledEvent) {
	m.Events.WithLabelValues("cancelled").Inc()
}

// ConsumerMetrics counts inbound messages by topic and outcome
// (processed, rejected, failed).
type ConsumerMetrics struct {
	Messages *prometheus.CounterVec
}

func NewConsumerMetrics(reg prometheus.Registerer) *ConsumerMetrics {
	messages := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "consumer",
		Name:      "messages_total",
		Help:      "Inbound messages handled, by topic and outcome.",
	}, []string{"topic", "outcome"})

	reg.MustRegister(messages)
	return &ConsumerMetrics{Messages: messages}
}

func (m *ConsumerMetrics) Observe(topic, outcome string) {
	m.Messages.WithLabelValues(topic, outcome).Inc()
}

// Handler serves the collectors registered on the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

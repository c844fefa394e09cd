package metrics

import (
	"context"
	"strconv"
	"time"

	"shipzone-backend/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	MethodEvents    *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		MethodEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shipzone",
			Name:      "method_events_total",
			Help:      "Shipping zone method events by type and method type.",
		}, []string{"type", "method_id"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "shipzone",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "shipzone",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	reg.MustRegister(m.MethodEvents, m.HTTPRequests, m.RequestDuration)
	return m
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method string, status int, d time.Duration) {
	m.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(d.Seconds())
}

func (m *Metrics) Name() string { return "metrics" }

// Handle counts an event. It satisfies the event subscriber contract.
func (m *Metrics) Handle(ctx context.Context, event domain.MethodEvent) error {
	m.MethodEvents.WithLabelValues(string(event.Type), event.MethodID).Inc()
	return nil
}

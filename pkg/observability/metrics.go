// Package observability provides drop-in middleware for watching the
// dispatch pipeline: Prometheus metrics and structured logging.
package observability

import (
	"log/slog"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for action dispatch.
type Metrics struct {
	dispatched *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics creates and registers the dispatch collectors against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		dispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "arbor",
			Name:      "actions_dispatched_total",
			Help:      "Outer action calls that entered the middleware pipeline.",
		}, []string{"action", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "arbor",
			Name:      "action_duration_seconds",
			Help:      "Wall time of outer action calls, middleware included.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action"}),
	}
	reg.MustRegister(m.dispatched, m.duration)
	return m
}

// Middleware returns a handler that counts and times every call flowing
// through it. The call itself is always forwarded unchanged.
func (m *Metrics) Middleware() domain.Middleware {
	return func(call *domain.RawActionCall, next domain.Next) (any, error) {
		start := time.Now()
		result, err := next(call)
		m.duration.WithLabelValues(call.Name).Observe(time.Since(start).Seconds())

		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		m.dispatched.WithLabelValues(call.Name, outcome).Inc()
		return result, err
	}
}

// LoggingMiddleware returns a handler that logs every call's start and
// outcome through logger, forwarding the call unchanged.
func LoggingMiddleware(logger *slog.Logger) domain.Middleware {
	return func(call *domain.RawActionCall, next domain.Next) (any, error) {
		logger.Debug("action dispatch", "action", call.Name, "args", len(call.Args))
		result, err := next(call)
		if err != nil {
			logger.Warn("action failed", "action", call.Name, "err", err)
			return result, err
		}
		logger.Debug("action completed", "action", call.Name)
		return result, err
	}
}

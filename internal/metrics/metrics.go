package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewDeliveryUpdatesTotal returns a counter of persisted tracking updates, labeled by status
func NewDeliveryUpdatesTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_updates_total",
		Help: "Total number of persisted delivery tracking updates",
	}, []string{"status"})
}

// NewQRVerificationsTotal returns a counter of QR verification attempts, labeled by outcome
func NewQRVerificationsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "qr_verifications_total",
		Help: "Total number of drone QR verification attempts",
	}, []string{"outcome"})
}

// NewSideEffectFailuresTotal returns a counter of dropped best-effort side effects, labeled by effect
func NewSideEffectFailuresTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_side_effect_failures_total",
		Help: "Total number of best-effort side effects that failed and were dropped",
	}, []string{"effect"})
}

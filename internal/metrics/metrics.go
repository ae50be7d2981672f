package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes
const (
	OutcomeLoaded = "loaded"
	OutcomeEmpty  = "empty"
)

// Metrics holds the collectors exported on /metrics.
type Metrics struct {
	// Rates provider calls by outcome: loaded, empty or the failure kind
	RatesFetchTotal *prometheus.CounterVec
	// Rates provider call latency
	RatesFetchDuration prometheus.Histogram
	// Widgets mounted
	WidgetsMountedTotal prometheus.Counter
	// Completions dropped because the widget was already unmounted
	StaleCompletionsTotal prometheus.Counter

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		RatesFetchTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rates_fetch_total",
				Help: "Number of rates provider requests by outcome",
			},
			[]string{"outcome"},
		),
		RatesFetchDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rates_fetch_duration_seconds",
				Help:    "Rates provider request latency",
				Buckets: prometheus.DefBuckets,
			},
		),
		WidgetsMountedTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "rates_widget_mounted_total",
				Help: "Number of mounted rates widgets",
			},
		),
		StaleCompletionsTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "rates_widget_stale_completions_total",
				Help: "Fetch completions ignored because the widget was unmounted",
			},
		),
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Number of HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency by method and route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// NewNop returns metrics registered on a private registry, for tests and tools
// that do not export them.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

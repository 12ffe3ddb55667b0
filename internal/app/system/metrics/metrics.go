// Package metrics holds the Prometheus collectors for the directory view.
//
// Collectors are package-level so the API client, view registry and HTTP
// middleware can record without plumbing. They are registered with the default registry by
// Init, which bootstrap calls once when metrics are enabled.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes recorded in FetchTotal.
const (
	OutcomeOK             = "ok"
	OutcomeHTTPError      = "http_error"
	OutcomeTransportError = "transport_error"
	OutcomeParseError     = "parse_error"
	OutcomeCanceled       = "canceled"
)

var (
	FetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advocates_fetch_total",
			Help: "Requests made to the advocates API, by outcome",
		},
		[]string{"outcome"},
	)

	FetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "advocates_fetch_duration_seconds",
			Help:    "Duration of advocates API requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 30},
		},
		[]string{"method", "route"},
	)

	ActiveViews = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "advocates_active_views",
			Help: "Directory views currently held in memory",
		},
	)
)

var initOnce sync.Once

// Init registers the collectors with the default Prometheus registry.
// Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(FetchTotal)
		prometheus.MustRegister(FetchDuration)
		prometheus.MustRegister(ActiveViews)
		prometheus.MustRegister(RequestsTotal)
		prometheus.MustRegister(RequestDuration)
	})
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

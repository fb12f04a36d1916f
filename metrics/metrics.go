// Package metrics defines the Prometheus collectors exported by the API.
// Everything is registered on the default registry via promauto and served
// from the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal counts handled HTTP requests by method, route pattern
	// and response status.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	// APIRequestDuration tracks request latency per route pattern.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// APIActiveRequests gauges requests currently in flight.
	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// CoverRendersTotal counts cover image renders by source: "posters" when
	// a collage was composed, "default" when the fallback cover was served.
	CoverRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cover_renders_total",
			Help: "Total number of watchlist cover renders",
		},
		[]string{"source"},
	)

	// PosterFetchFailuresTotal counts poster downloads that failed or
	// decoded incorrectly and were skipped during collage composition.
	PosterFetchFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cover_poster_fetch_failures_total",
			Help: "Total number of poster fetches skipped due to errors",
		},
	)
)

// Package metrics exposes Prometheus instruments for the page server and
// the almanac clients. Instruments register with the default registry.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values.
const (
	ResultHit      = "hit"
	ResultMiss     = "miss"
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRejected = "rejected"
	ResultFallback = "fallback"
)

var (
	// HTTP
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thisday_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "thisday_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	AuthFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thisday_auth_failures_total",
			Help: "Rejected Basic Auth attempts by reason",
		},
		[]string{"reason"}, // "missing", "malformed", "invalid", "misconfigured"
	)

	PagesRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thisday_pages_rendered_total",
			Help: "Rendered pages, split by whether facts were shown",
		},
		[]string{"show"},
	)

	// Almanac
	AlmanacRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thisday_almanac_requests_total",
			Help: "Upstream almanac calls by source and result",
		},
		[]string{"source", "result"},
	)

	AlmanacCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thisday_almanac_cache_total",
			Help: "Almanac cache lookups by source and result",
		},
		[]string{"source", "result"},
	)

	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "thisday_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Calendar feed
	CalendarBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thisday_calendar_builds_total",
			Help: "iCalendar feed generations by result",
		},
		[]string{"result"},
	)

	CalendarEvents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "thisday_calendar_events",
			Help: "Number of VEVENTs in the last generated feed",
		},
	)

	// Scheduler
	WarmupRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "thisday_warmup_runs_total",
			Help: "Scheduled cache warm-up runs by result",
		},
		[]string{"result"},
	)
)

// RecordRequest records one served HTTP request.
func RecordRequest(route string, status int, elapsed time.Duration) {
	HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// RecordPage counts a rendered page.
func RecordPage(show bool) {
	PagesRendered.WithLabelValues(strconv.FormatBool(show)).Inc()
}

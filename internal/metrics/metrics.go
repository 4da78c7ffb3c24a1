package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paddy_http_requests_total",
			Help: "Total HTTP requests by method, route, and status code.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "paddy_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	EntriesRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paddy_gate_entries_recorded_total",
			Help: "Gate pass entries successfully recorded.",
		},
	)

	QuantityReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paddy_quantity_received_quintals_total",
			Help: "Total paddy quantity recorded, in quintals.",
		},
	)

	ReportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paddy_reports_generated_total",
			Help: "Reports generated by type.",
		},
		[]string{"type"},
	)

	DashboardCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paddy_dashboard_cache_requests_total",
			Help: "Dashboard cache lookups by outcome (hit or miss).",
		},
		[]string{"outcome"},
	)
)

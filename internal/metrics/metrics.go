// Package metrics defines Prometheus metrics for labsync.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "labsync_api_request_duration_seconds",
			Help:    "Workspace API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labsync_api_requests_total",
			Help: "Total workspace API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	UpsertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labsync_upserts_total",
			Help: "Total record upserts by resulting action",
		},
		[]string{"action"},
	)

	AlertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labsync_alerts_total",
			Help: "Total alerts raised by severity",
		},
		[]string{"severity"},
	)

	DispatchFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labsync_dispatch_failures_total",
			Help: "Total alert dispatch failures by sink",
		},
		[]string{"sink"},
	)

	DispatchQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "labsync_dispatch_queue_depth",
			Help: "Current alert dispatch queue depth",
		},
	)

	CyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "labsync_cycles_total",
			Help: "Total monitoring cycles by outcome",
		},
		[]string{"status"},
	)

	CycleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "labsync_cycle_duration_seconds",
			Help:    "Monitoring cycle duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(
		APIRequestDuration, APIRequestsTotal,
		UpsertsTotal, AlertsTotal,
		DispatchFailuresTotal, DispatchQueueDepth,
		CyclesTotal, CycleDuration,
	)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sensor_monitor_scans_total",
			Help: "Total number of scan cycles",
		},
		[]string{"tenant", "status"}, // status: completed, failed, skipped
	)

	ScanDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sensor_monitor_scan_duration_seconds",
			Help:    "Duration of one scan cycle",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"tenant"},
	)

	ScanOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sensor_monitor_scan_outcomes_total",
			Help: "Per sensor outcomes of scan cycles",
		},
		[]string{"tenant", "outcome"}, // outcome: created, escalated, checked, resolved, normal, no_data, error
	)

	TimeseriesQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sensor_monitor_timeseries_queries_total",
			Help: "Total number of queries against external time series stores",
		},
		[]string{"status"}, // status: ok, no_data, error
	)

	ActiveAlerts = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sensor_monitor_active_alerts",
			Help: "Number of currently active alerts per tenant",
		},
		[]string{"tenant"},
	)
)

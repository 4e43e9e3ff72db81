package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NotifierSweepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_sweeps_total",
			Help: "Total number of notifier sweeps by outcome",
		},
		[]string{"outcome"},
	)

	NotifierDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_deliveries_total",
			Help: "Total number of item notifications by result",
		},
		[]string{"result"},
	)

	NotifierSweepDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "notifier_sweep_duration_seconds",
			Help:    "Duration of notifier sweeps in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

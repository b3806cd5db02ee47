package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Load / fetch instrumentation, exposed on /metrics.
var (
	LoadAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "entregas",
		Name:      "load_attempts_total",
		Help:      "Dataset load attempts against the delivery API",
	})

	LoadFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "entregas",
		Name:      "load_failures_total",
		Help:      "Dataset load attempts that ended in a fetch or decode error",
	})

	RecordsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "entregas",
		Name:      "records_loaded",
		Help:      "Number of records in the currently loaded dataset",
	})

	FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "entregas",
		Name:      "fetch_duration_seconds",
		Help:      "Time spent fetching and decoding the delivery API response",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
	})
)

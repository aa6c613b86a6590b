package compressor

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const compressionTypeLabel string = "compression_type"

var ensureMetricRegisteringOnce sync.Once

var successCounter *prometheus.CounterVec
var errorCounter *prometheus.CounterVec
var durationHistogram *prometheus.HistogramVec

type metricCollector struct{}

func newMetricCollector(metricRegistry *prometheus.Registry) *metricCollector {
	ensureMetricRegisteringOnce.Do(func() {
		successCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "logroller",
				Subsystem: "compressor",
				Name:      "success_total",
				Help:      "The total number of compression tasks that finished successfully.",
			},
			[]string{},
		)

		errorCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "logroller",
				Subsystem: "compressor",
				Name:      "errors_total",
				Help:      "The total number of compression tasks that failed.",
			},
			[]string{},
		)

		durationHistogram = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "logroller",
				Subsystem: "compressor",
				Name:      "duration_seconds",
				Help:      "The time a compression task took, from pickup to terminal state.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{compressionTypeLabel},
		)

		metricRegistry.MustRegister(successCounter, errorCounter, durationHistogram)
	})

	return &metricCollector{}
}

func (m *metricCollector) incSuccess() {
	successCounter.WithLabelValues().Inc()
}

func (m *metricCollector) incError() {
	errorCounter.WithLabelValues().Inc()
}

func (m *metricCollector) observeDuration(compressionType string, elapsed time.Duration) {
	durationHistogram.WithLabelValues(compressionType).Observe(elapsed.Seconds())
}

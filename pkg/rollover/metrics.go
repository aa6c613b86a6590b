package rollover

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var ensureMetricRegisteringOnce sync.Once

var rolloverCounter prometheus.Counter
var renameErrorCounter prometheus.Counter
var compressionTimeoutCounter prometheus.Counter
var compressionErrorCounter prometheus.Counter

type metricCollector struct{}

func newMetricCollector(metricRegistry *prometheus.Registry) *metricCollector {
	ensureMetricRegisteringOnce.Do(func() {
		rolloverCounter = prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "logroller",
				Subsystem: "rollover",
				Name:      "success_total",
				Help:      "The total number of rollovers that reached the upload submission.",
			},
		)

		renameErrorCounter = prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "logroller",
				Subsystem: "rollover",
				Name:      "rename_errors_total",
				Help:      "The total number of rollovers that failed at the rename step.",
			},
		)

		compressionTimeoutCounter = prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "logroller",
				Subsystem: "rollover",
				Name:      "compression_timeouts_total",
				Help:      "How many times the bounded wait on compression expired.",
			},
		)

		compressionErrorCounter = prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "logroller",
				Subsystem: "rollover",
				Name:      "compression_errors_total",
				Help:      "How many times awaiting the compression handle failed.",
			},
		)

		metricRegistry.MustRegister(
			rolloverCounter, renameErrorCounter, compressionTimeoutCounter,
			compressionErrorCounter,
		)
	})

	return &metricCollector{}
}

func (m *metricCollector) incRollover() {
	rolloverCounter.Inc()
}

func (m *metricCollector) incRenameError() {
	renameErrorCounter.Inc()
}

func (m *metricCollector) incCompressionTimeout() {
	compressionTimeoutCounter.Inc()
}

func (m *metricCollector) incCompressionError() {
	compressionErrorCounter.Inc()
}

package uploader

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var ensureMetricRegisteringOnce sync.Once

var queueCapacityGauge prometheus.Gauge
var enqueueCounter prometheus.Counter
var enqueuedItemsGauge prometheus.Gauge
var enqueueFailed prometheus.Counter
var skippedCounter prometheus.Counter
var workInFlightGauge prometheus.Gauge

type metricCollector struct{}

func newMetricCollector(metricRegistry *prometheus.Registry) *metricCollector {
	ensureMetricRegisteringOnce.Do(func() {
		queueCapacityGauge = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "logroller",
				Subsystem: "uploader",
				Name:      "queue_capacity",
				Help:      "The total capacity of the upload work queue.",
			},
		)

		enqueueCounter = prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "logroller",
				Subsystem: "uploader",
				Name:      "enqueue_calls_total",
				Help:      "The total number of times an upload task was enqueued.",
			},
		)

		enqueuedItemsGauge = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "logroller",
				Subsystem: "uploader",
				Name:      "items_in_queue",
				Help:      "The count of current items on the work queue, waiting to be uploaded.",
			},
		)

		enqueueFailed = prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "logroller",
				Subsystem: "uploader",
				Name:      "enqueue_failed_total",
				Help:      "Counter for upload tasks rejected because the work queue was full.",
			},
		)

		skippedCounter = prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "logroller",
				Subsystem: "uploader",
				Name:      "skipped_total",
				Help:      "Counter for enqueue calls that were no-ops, the file being missing or empty.",
			},
		)

		workInFlightGauge = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "logroller",
				Subsystem: "uploader",
				Name:      "work_in_flight",
				Help:      "How many uploads are executing right now. With a single worker it is 0 or 1.",
			},
		)

		metricRegistry.MustRegister(
			queueCapacityGauge, enqueueCounter, enqueuedItemsGauge, enqueueFailed,
			skippedCounter, workInFlightGauge,
		)
	})

	return &metricCollector{}
}

func (m *metricCollector) queueCapacity(queueCapacity int) {
	queueCapacityGauge.Set(float64(queueCapacity))
}

func (m *metricCollector) increaseEnqueueCounter() {
	enqueueCounter.Inc()
}

func (m *metricCollector) enqueuedItems(itemsCount int) {
	enqueuedItemsGauge.Set(float64(itemsCount))
}

func (m *metricCollector) incEnqueueFailed() {
	enqueueFailed.Inc()
}

func (m *metricCollector) incSkipped() {
	skippedCounter.Inc()
}

func (m *metricCollector) incWorkInFlight() {
	workInFlightGauge.Inc()
}

func (m *metricCollector) decWorkInFlight() {
	workInFlightGauge.Dec()
}

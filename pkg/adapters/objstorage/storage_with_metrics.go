package objstorage

import (
	"context"
	"sync"
	"time"

	"github.com/jademcosta/logroller/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	StorageTypeLabel string = "storage_type"
	NameLabel        string = "name"
)

var (
	ensureMetricRegisteringOnce sync.Once
	latencyHistogram            *prometheus.HistogramVec
	uploadCounter               *prometheus.CounterVec
	uploadSuccessCounter        *prometheus.CounterVec
	uploadErrorCounter          *prometheus.CounterVec
)

type storageWithMetrics struct {
	storage     ObjStorageWithMetadata
	wrappedType string
	wrappedName string
}

func NewStorageWithMetrics(storage ObjStorageWithMetadata, metricRegistry *prometheus.Registry) ObjStorageWithMetadata {
	ensureMetricRegisteringOnce.Do(func() {
		latencyHistogram = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:      "upload_latency_seconds",
				Subsystem: "object_storage",
				Namespace: "logroller",
				Help:      "the time it took to finish the upload of a file to object storage",
				Buckets:   []float64{0.25, 0.5, 1.0, 1.5, 2.0, 5.0, 10.0, 30.0, 45.0, 60.0, 90.0, 120.0, 180.0, 240.0, 300.0, 600.0},
			},
			[]string{StorageTypeLabel, NameLabel},
		)

		uploadCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:      "upload_total",
				Namespace: "logroller",
				Subsystem: "object_storage",
				Help:      "count of uploads to object storage that finished",
			},
			[]string{StorageTypeLabel, NameLabel},
		)

		uploadSuccessCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:      "upload_success_total",
				Namespace: "logroller",
				Subsystem: "object_storage",
				Help:      "count of successes uploading to object storage",
			},
			[]string{StorageTypeLabel, NameLabel},
		)

		uploadErrorCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:      "upload_errors_total",
				Namespace: "logroller",
				Subsystem: "object_storage",
				Help:      "count of errors uploading to object storage",
			},
			[]string{StorageTypeLabel, NameLabel},
		)

		metricRegistry.MustRegister(
			latencyHistogram,
			uploadCounter,
			uploadSuccessCounter,
			uploadErrorCounter,
		)
	})

	return &storageWithMetrics{
		storage:     storage,
		wrappedType: storage.Type(),
		wrappedName: storage.Name(),
	}
}

func (w *storageWithMetrics) Upload(ctx context.Context, task *domain.UploadTask) (*domain.UploadResult, error) {
	startTime := time.Now()

	uploadResult, err := w.storage.Upload(ctx, task)
	elapsedTime := time.Since(startTime).Seconds()

	latencyHistogram.
		WithLabelValues(w.wrappedType, w.wrappedName).
		Observe(elapsedTime)

	uploadCounter.
		WithLabelValues(w.wrappedType, w.wrappedName).
		Inc()

	if err != nil {
		uploadErrorCounter.WithLabelValues(w.wrappedType, w.wrappedName).Inc()
	} else {
		uploadSuccessCounter.WithLabelValues(w.wrappedType, w.wrappedName).Inc()
	}
	return uploadResult, err
}

func (w *storageWithMetrics) Type() string {
	return w.wrappedType
}

func (w *storageWithMetrics) Name() string {
	return w.wrappedName
}

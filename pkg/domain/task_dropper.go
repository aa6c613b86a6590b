package domain

import (
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const ComponentLabel string = "component"

var ensureMetricRegisteringOnce sync.Once

type TaskDropper interface {
	Drop(*UploadTask)
}

// ObservableTaskDropper records every dropped upload task on a counter and
// the log, so overflow never goes unnoticed.
type ObservableTaskDropper struct {
	l              *slog.Logger
	componentOwner string
	counter        *prometheus.CounterVec
}

func NewObservableTaskDropper(l *slog.Logger, metricRegistry *prometheus.Registry, owner string) TaskDropper {
	dropCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:      "dropped_tasks_total",
			Namespace: "logroller",
			Help:      "How many upload tasks have been dropped",
		},
		[]string{ComponentLabel},
	)

	ensureMetricRegisteringOnce.Do(func() {
		metricRegistry.MustRegister(dropCounter)
	})

	return &ObservableTaskDropper{
		l:              l,
		componentOwner: owner,
		counter:        dropCounter,
	}
}

func (dropper *ObservableTaskDropper) Drop(task *UploadTask) {
	dropper.counter.WithLabelValues(dropper.componentOwner).Inc()
	dropper.l.Warn("an upload task has just been dropped",
		"local_path", task.LocalPath, "key", task.Key, "subject", dropper.componentOwner)
}

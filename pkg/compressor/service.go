package compressor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jademcosta/logroller/pkg/config"
	"github.com/jademcosta/logroller/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
)

const ComponentName = "compressor"

const submissionQueueCapacity = 8

// Task describes one file to compress. Source is the renamed (temporary)
// raw file, Destination the compressed artifact to produce.
type Task struct {
	Source         string
	Destination    string
	InnerEntryName string
}

type submission struct {
	task   Task
	handle *Handle
}

// Service runs all compression tasks on a single dedicated worker, so two
// tasks never race on the same file-name pattern.
type Service struct {
	l             *slog.Logger
	conf          config.CompressionConfig
	tasks         chan *submission
	metrics       *metricCollector
	shutdownMutex sync.RWMutex
	shuttingDown  bool
	doneChan      chan struct{}
	doneChanMu    sync.Mutex
}

func NewService(
	l *slog.Logger, conf config.CompressionConfig, metricRegistry *prometheus.Registry,
) *Service {
	return &Service{
		l:       l.With(logger.ComponentKey, ComponentName),
		conf:    conf,
		tasks:   make(chan *submission, submissionQueueCapacity),
		metrics: newMetricCollector(metricRegistry),
	}
}

// Submit hands a task to the compression worker and returns its completion
// handle. Callers decide how long they are willing to wait on it.
func (s *Service) Submit(task Task) *Handle {
	s.shutdownMutex.RLock()
	defer s.shutdownMutex.RUnlock()

	sub := &submission{task: task, handle: newHandle()}
	if s.shuttingDown {
		sub.handle.complete(errors.New("compressor shutting down"))
		return sub.handle
	}

	s.tasks <- sub
	return sub.handle
}

// Run should be called in a new goroutine
func (s *Service) Run(ctx context.Context) {
	s.doneChanMu.Lock()
	s.doneChan = make(chan struct{})
	defer close(s.doneChan)
	s.doneChanMu.Unlock()

	s.l.Info("starting compressor loop", "type", s.conf.Type)
	for {
		select {
		case <-ctx.Done():
			s.l.Debug("compressor starting shutdown")
			s.shutdown()
			s.l.Info("compressor shutdown finished")
			return
		case sub := <-s.tasks:
			s.work(sub)
		}
	}
}

func (s *Service) Done() <-chan struct{} {
	s.doneChanMu.Lock()
	defer s.doneChanMu.Unlock()
	return s.doneChan
}

func (s *Service) work(sub *submission) {
	startTime := time.Now()
	err := s.compress(sub.task)
	s.metrics.observeDuration(s.conf.Type, time.Since(startTime))

	if err != nil {
		s.metrics.incError()
		s.l.Error("compression task failed",
			"source", sub.task.Source, "destination", sub.task.Destination, "error", err)
	} else {
		s.metrics.incSuccess()
		s.l.Debug("compression task finished",
			"source", sub.task.Source, "destination", sub.task.Destination)
	}

	sub.handle.complete(err)
}

// Compresses whatever is still queued, so that a final rollover submitted
// right before shutdown still produces its artifact.
func (s *Service) shutdown() {
	s.setShutdown()
	close(s.tasks)

	for sub := range s.tasks {
		s.work(sub)
	}
}

func (s *Service) setShutdown() {
	s.shutdownMutex.Lock()
	defer s.shutdownMutex.Unlock()
	s.shuttingDown = true
}

package rollover

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jademcosta/logroller/pkg/compressor"
	"github.com/jademcosta/logroller/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
)

const ComponentName = "rollover"

// UploadEnqueuer is where finished artifacts are sent. Enqueueing is
// fire-and-forget; upload failures never flow back here.
type UploadEnqueuer interface {
	Enqueue(localPath string)
}

// Coordinator sequences one rollover: synchronous rename, asynchronous
// compression with a bounded wait, then the upload submission.
type Coordinator struct {
	l                   *slog.Logger
	comp                *compressor.Service
	uploader            UploadEnqueuer
	compressionType     string
	waitTimeout         time.Duration
	currentTimeProvider func() time.Time
	metrics             *metricCollector
}

func NewCoordinator(
	l *slog.Logger, comp *compressor.Service, uploader UploadEnqueuer,
	compressionType string, waitTimeout time.Duration,
	metricRegistry *prometheus.Registry, currentTimeProvider func() time.Time,
) *Coordinator {
	return &Coordinator{
		l:                   l.With(logger.ComponentKey, ComponentName),
		comp:                comp,
		uploader:            uploader,
		compressionType:     compressionType,
		waitTimeout:         waitTimeout,
		currentTimeProvider: currentTimeProvider,
		metrics:             newMetricCollector(metricRegistry),
	}
}

// PerformRollover moves the raw file out of the way, compresses it in the
// background and, if compression finishes within the configured timeout,
// enqueues the artifact for upload. The returned handle lets callers keep
// awaiting the compression if they want to; upload completion is tracked
// by the work queue alone. Only rename failures are returned as errors.
func (c *Coordinator) PerformRollover(
	rawFilePath string, compressedFileName string, innerEntryName string,
) (*compressor.Handle, error) {

	tmpTarget := fmt.Sprintf("%s%d.tmp", rawFilePath, c.currentTimeProvider().UnixNano())

	err := Rename(rawFilePath, tmpTarget)
	if err != nil {
		c.metrics.incRenameError()
		return nil, err
	}

	finalName := NormalizeCompressedName(compressedFileName, c.compressionType)
	handle := c.comp.Submit(compressor.Task{
		Source:         tmpTarget,
		Destination:    finalName,
		InnerEntryName: innerEntryName,
	})

	err = handle.Wait(c.waitTimeout)
	if err != nil {
		if errors.Is(err, compressor.ErrWaitTimeout) {
			c.metrics.incCompressionTimeout()
			c.l.Error("compression did not finish in time, skipping upload",
				"file", finalName, "timeout", c.waitTimeout)
		} else {
			c.metrics.incCompressionError()
			c.l.Error("error while waiting for compression to finish, skipping upload",
				"file", finalName, "error", err)
		}
		return handle, nil
	}

	c.uploader.Enqueue(finalName)
	c.metrics.incRollover()

	return handle, nil
}

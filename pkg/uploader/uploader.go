package uploader

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jademcosta/logroller/pkg/config"
	"github.com/jademcosta/logroller/pkg/domain"
	"github.com/jademcosta/logroller/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/trace"
)

const ComponentName = "uploader"

type ObjStorage interface {
	Upload(ctx context.Context, task *domain.UploadTask) (*domain.UploadResult, error)
}

type ExternalQueue interface {
	Enqueue(*domain.MessageContext) error
}

// Uploader owns the upload work queue. A single worker pops tasks in
// submission order, so uploads of time-named files never arrive out of
// order and never compete for bandwidth.
type Uploader struct {
	l                   *slog.Logger
	storage             ObjStorage
	extQueue            ExternalQueue
	folder              string
	compressionType     string
	queue               chan *domain.UploadTask
	dropper             domain.TaskDropper
	breaker             *gobreaker.CircuitBreaker
	tracer              trace.Tracer
	metrics             *metricCollector
	currentTimeProvider func() time.Time
	workCtx             context.Context
	workCancel          context.CancelFunc
	abortChan           chan struct{}
	abortOnce           sync.Once
	shutdownMutex       sync.RWMutex
	shuttingDown        bool
	doneChan            chan struct{}
	doneChanMu          sync.Mutex
}

func New(
	l *slog.Logger, storage ObjStorage, extQueue ExternalQueue,
	conf config.UploadConfig, compressionType string, dropper domain.TaskDropper,
	tracer trace.Tracer, metricRegistry *prometheus.Registry,
	currentTimeProvider func() time.Time,
) *Uploader {

	metrics := newMetricCollector(metricRegistry)
	metrics.queueCapacity(conf.QueueMaxSize)

	workCtx, workCancel := context.WithCancel(context.Background())

	uploader := &Uploader{
		l:                   l.With(logger.ComponentKey, ComponentName),
		storage:             storage,
		extQueue:            extQueue,
		folder:              conf.Folder,
		compressionType:     compressionType,
		queue:               make(chan *domain.UploadTask, conf.QueueMaxSize),
		dropper:             dropper,
		tracer:              tracer,
		metrics:             metrics,
		currentTimeProvider: currentTimeProvider,
		workCtx:             workCtx,
		workCancel:          workCancel,
		abortChan:           make(chan struct{}),
	}

	if conf.CircuitBreaker.Enabled {
		failureThreshold := conf.CircuitBreaker.FailureThreshold
		uploader.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    ComponentName,
			Timeout: conf.CircuitBreaker.OpenInterval(),
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failureThreshold
			},
		})
	}

	return uploader
}

// Enqueue submits a local file for upload. It is a no-op for missing or
// empty files, since those are a common benign race with compression. No
// result is ever surfaced to the caller.
func (u *Uploader) Enqueue(localPath string) {
	u.shutdownMutex.RLock()
	defer u.shutdownMutex.RUnlock()
	if u.shuttingDown {
		u.l.Warn("upload rejected, the work queue is closed", "local_path", localPath)
		return
	}

	info, err := os.Stat(localPath)
	if err != nil || info.Size() == 0 {
		u.metrics.incSkipped()
		u.l.Debug("nothing to upload, file is missing or empty", "local_path", localPath)
		return
	}

	task := &domain.UploadTask{
		ID:          uuid.NewString(),
		LocalPath:   localPath,
		Key:         u.remoteKey(localPath),
		SizeInBytes: info.Size(),
	}

	u.metrics.increaseEnqueueCounter()

	select {
	case u.queue <- task:
		u.updateEnqueuedItemsMetric()
	default:
		u.metrics.incEnqueueFailed()
		u.dropper.Drop(task)
	}
}

func (u *Uploader) remoteKey(localPath string) string {
	if u.folder != "" {
		return u.folder + "/" + filepath.Base(localPath)
	}
	return filepath.Base(localPath)
}

// Run should be called in a new goroutine
func (u *Uploader) Run(ctx context.Context) {
	u.doneChanMu.Lock()
	u.doneChan = make(chan struct{})
	defer close(u.doneChan)
	u.doneChanMu.Unlock()

	u.l.Info("starting uploader loop")
	for {
		select {
		case <-ctx.Done():
			u.l.Debug("uploader starting shutdown")
			u.shutdown()
			u.l.Info("uploader shutdown finished")
			return
		case task := <-u.queue:
			u.work(task)
			u.updateEnqueuedItemsMetric()
		}
	}
}

// Done is closed once the worker has fully stopped, drained or not.
func (u *Uploader) Done() <-chan struct{} {
	u.doneChanMu.Lock()
	defer u.doneChanMu.Unlock()
	return u.doneChan
}

// ForceStop abandons whatever is still queued and cancels the in-flight
// upload. Meant for the moment the drain deadline expires.
func (u *Uploader) ForceStop() {
	u.abortOnce.Do(func() {
		close(u.abortChan)
		u.workCancel()
	})
}

func (u *Uploader) work(task *domain.UploadTask) {
	ctx, span := u.tracer.Start(u.workCtx, "upload")
	defer span.End()

	u.metrics.incWorkInFlight()
	defer u.metrics.decWorkInFlight()

	uploadResult, err := u.upload(ctx, task)
	if err != nil {
		u.l.Error("failed to upload object", "key", task.Key, "task_id", task.ID, "error", err)
		return
	}
	u.l.Debug("finished uploading object", "key", task.Key, "task_id", task.ID)

	msgContext := &domain.MessageContext{
		Bucket:          uploadResult.Bucket,
		Region:          uploadResult.Region,
		Path:            uploadResult.Path,
		URL:             uploadResult.URL,
		SizeInBytes:     uploadResult.SizeInBytes,
		CompressionType: u.compressionType,
		SavedAt:         u.currentTimeProvider().Unix(),
	}

	err = u.extQueue.Enqueue(msgContext)
	if err != nil {
		u.l.Error("failed to enqueue upload notification", "object_path", uploadResult.Path, "error", err)
	} else {
		u.l.Debug("finished enqueueing upload notification", "object_path", uploadResult.Path)
	}
}

func (u *Uploader) upload(ctx context.Context, task *domain.UploadTask) (*domain.UploadResult, error) {
	if u.breaker == nil {
		return u.storage.Upload(ctx, task)
	}

	result, err := u.breaker.Execute(func() (interface{}, error) {
		return u.storage.Upload(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.UploadResult), nil
}

func (u *Uploader) updateEnqueuedItemsMetric() {
	u.metrics.enqueuedItems(len(u.queue))
}

// shutdown keeps uploading what is already queued. A ForceStop cuts the
// drain short.
func (u *Uploader) shutdown() {
	u.setShutdown()
	close(u.queue)

	for task := range u.queue {
		select {
		case <-u.abortChan:
			u.l.Error("drain aborted, abandoning queued uploads", "abandoned", len(u.queue)+1)
			return
		default:
		}
		u.work(task)
	}
}

func (u *Uploader) setShutdown() {
	u.shutdownMutex.Lock()
	defer u.shutdownMutex.Unlock()
	u.shuttingDown = true
}

package trigger

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/jademcosta/logroller/pkg/compressor"
	"github.com/jademcosta/logroller/pkg/logger"
)

const ComponentName = "trigger"

type RolloverPerformer interface {
	PerformRollover(rawFilePath string, compressedFileName string, innerEntryName string) (*compressor.Handle, error)
}

type FileNamer interface {
	FileName() string
	InnerEntryName() string
}

// TimedTrigger is a deliberately small rollover policy: it fires on a
// fixed interval. Anything smarter (size thresholds, calendar boundaries)
// belongs to a collaborator with this same shape.
type TimedTrigger struct {
	l           *slog.Logger
	coordinator RolloverPerformer
	namer       FileNamer
	activeFile  string
	interval    time.Duration
	doneChan    chan struct{}
	doneChanMu  sync.Mutex
}

func NewTimedTrigger(
	l *slog.Logger, coordinator RolloverPerformer, namer FileNamer,
	activeFile string, interval time.Duration,
) *TimedTrigger {
	return &TimedTrigger{
		l:           l.With(logger.ComponentKey, ComponentName),
		coordinator: coordinator,
		namer:       namer,
		activeFile:  activeFile,
		interval:    interval,
	}
}

// Run should be called in a new goroutine
func (t *TimedTrigger) Run(ctx context.Context) {
	t.doneChanMu.Lock()
	t.doneChan = make(chan struct{})
	defer close(t.doneChan)
	t.doneChanMu.Unlock()

	t.l.Info("starting rollover trigger", "interval", t.interval)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.l.Info("rollover trigger stopped")
			return
		case <-ticker.C:
			t.fire()
		}
	}
}

func (t *TimedTrigger) Done() <-chan struct{} {
	t.doneChanMu.Lock()
	defer t.doneChanMu.Unlock()
	return t.doneChan
}

func (t *TimedTrigger) fire() {
	_, err := os.Stat(t.activeFile)
	if err != nil {
		t.l.Debug("skipping rollover, no active file", "file", t.activeFile)
		return
	}

	_, err = t.coordinator.PerformRollover(
		t.activeFile, t.namer.FileName(), t.namer.InnerEntryName())
	if err != nil {
		t.l.Error("rollover failed, active file left in place", "error", err)
	}
}

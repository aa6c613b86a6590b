package shutdown

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jademcosta/logroller/pkg/compressor"
	"github.com/jademcosta/logroller/pkg/config"
	"github.com/jademcosta/logroller/pkg/logger"
)

const ComponentName = "shutdown_sequencer"

// ErrDrainDeadlineExceeded is recorded when the drain deadline elapsed
// with uploads still pending. Those uploads are abandoned, never retried.
var ErrDrainDeadlineExceeded = errors.New("drain deadline exceeded with uploads still pending")

type State string

const (
	StateIdle             State = "idle"
	StateRunning          State = "running"
	StateDraining         State = "draining"
	StateDrained          State = "drained"
	StateDeadlineExceeded State = "deadline_exceeded"
	StateDone             State = "done"
)

type RolloverPerformer interface {
	PerformRollover(rawFilePath string, compressedFileName string, innerEntryName string) (*compressor.Handle, error)
}

type UploadQueue interface {
	Enqueue(localPath string)
	Done() <-chan struct{}
	ForceStop()
}

type FileNamer interface {
	FileName() string
	InnerEntryName() string
}

// Sequencer is the process-exit hook. It runs at most once, decides
// between one final rollover and uploading the active file as-is, closes
// the work queue and waits for the drain, bounded by the configured
// deadline. It never lets a failure of its own escape: process exit must
// proceed no matter what.
type Sequencer struct {
	l            *slog.Logger
	coordinator  RolloverPerformer
	queue        UploadQueue
	namer        FileNamer
	closeQueue   context.CancelFunc
	conf         config.RolloverConfig
	runOnce      sync.Once
	stateMu      sync.Mutex
	state        State
	drainOutcome State
}

func NewSequencer(
	l *slog.Logger, coordinator RolloverPerformer, queue UploadQueue,
	namer FileNamer, closeQueue context.CancelFunc, conf config.RolloverConfig,
) *Sequencer {
	return &Sequencer{
		l:           l.With(logger.ComponentKey, ComponentName),
		coordinator: coordinator,
		queue:       queue,
		namer:       namer,
		closeQueue:  closeQueue,
		conf:        conf,
		state:       StateIdle,
	}
}

// Run blocks until the sequence finished or the drain deadline elapsed.
// Calling it more than once is a no-op.
func (s *Sequencer) Run() {
	s.runOnce.Do(s.run)
}

func (s *Sequencer) State() State {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state
}

// DrainOutcome tells whether the drain finished (StateDrained) or was cut
// by the deadline (StateDeadlineExceeded). Empty before the drain ran.
func (s *Sequencer) DrainOutcome() State {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.drainOutcome
}

func (s *Sequencer) run() {
	defer func() {
		if r := recover(); r != nil {
			s.l.Error("shutdown sequence failed, forcing the queue to stop", "error", r)
			s.queue.ForceStop()
			s.closeQueue()
		}
		s.setState(StateDone)
	}()

	s.setState(StateRunning)

	if s.conf.RollingOnExit {
		s.l.Info("performing one final rollover before exit")
		_, err := s.coordinator.PerformRollover(
			s.conf.ActiveFile, s.namer.FileName(), s.namer.InnerEntryName())
		if err != nil {
			s.l.Error("final rollover failed", "error", err)
		}
	} else {
		s.l.Info("uploading the active file as-is before exit", "file", s.conf.ActiveFile)
		s.queue.Enqueue(s.conf.ActiveFile)
	}

	s.setState(StateDraining)
	s.closeQueue()

	timer := time.NewTimer(s.conf.DrainTimeout())
	defer timer.Stop()

	select {
	case <-s.queue.Done():
		s.setState(StateDrained)
		s.l.Info("upload work queue drained")
	case <-timer.C:
		s.setState(StateDeadlineExceeded)
		s.queue.ForceStop()
		s.l.Error("shutdown drain did not finish in time, abandoning pending uploads",
			"error", ErrDrainDeadlineExceeded, "deadline", s.conf.DrainTimeout())
	}
}

func (s *Sequencer) setState(state State) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	if state == StateDrained || state == StateDeadlineExceeded {
		s.drainOutcome = state
	}
	s.state = state
}

package shutdown_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jademcosta/logroller/pkg/compressor"
	"github.com/jademcosta/logroller/pkg/config"
	"github.com/jademcosta/logroller/pkg/logger"
	"github.com/jademcosta/logroller/pkg/shutdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var llog = logger.NewDummy()

type rolloverCall struct {
	rawFilePath        string
	compressedFileName string
	innerEntryName     string
}

type mockCoordinator struct {
	mu          sync.Mutex
	calls       []rolloverCall
	returnError bool
}

func (mock *mockCoordinator) PerformRollover(
	rawFilePath string, compressedFileName string, innerEntryName string,
) (*compressor.Handle, error) {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	mock.calls = append(mock.calls, rolloverCall{rawFilePath, compressedFileName, innerEntryName})

	if mock.returnError {
		return nil, errors.New("error from mockCoordinator")
	}
	return nil, nil
}

func (mock *mockCoordinator) callCount() int {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return len(mock.calls)
}

type mockUploadQueue struct {
	mu           sync.Mutex
	enqueued     []string
	forceStopped bool
	done         chan struct{}
}

func newMockUploadQueue() *mockUploadQueue {
	return &mockUploadQueue{done: make(chan struct{})}
}

func (mock *mockUploadQueue) Enqueue(localPath string) {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	mock.enqueued = append(mock.enqueued, localPath)
}

func (mock *mockUploadQueue) Done() <-chan struct{} {
	return mock.done
}

func (mock *mockUploadQueue) ForceStop() {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	mock.forceStopped = true
}

func (mock *mockUploadQueue) wasForceStopped() bool {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return mock.forceStopped
}

func (mock *mockUploadQueue) enqueuedPaths() []string {
	mock.mu.Lock()
	defer mock.mu.Unlock()
	return append([]string(nil), mock.enqueued...)
}

type fixedNamer struct{}

func (namer *fixedNamer) FileName() string {
	return "/var/log/app.2024-05-31.log.gz"
}

func (namer *fixedNamer) InnerEntryName() string {
	return "app.2024-05-31.log"
}

type closeRecorder struct {
	mu     sync.Mutex
	called bool
}

func (recorder *closeRecorder) close() {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.called = true
}

func (recorder *closeRecorder) wasCalled() bool {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return recorder.called
}

func defaultConf() config.RolloverConfig {
	return config.RolloverConfig{
		ActiveFile:           "/var/log/app.log",
		FileNamePattern:      "/var/log/app.%d.log.gz",
		RollingOnExit:        true,
		DrainTimeoutInMillis: 1_000,
	}
}

func TestItPerformsOneFinalRolloverWhenConfiguredTo(t *testing.T) {
	coordinator := &mockCoordinator{}
	queue := newMockUploadQueue()
	close(queue.done)
	closer := &closeRecorder{}

	sut := shutdown.NewSequencer(llog, coordinator, queue, &fixedNamer{}, closer.close, defaultConf())
	sut.Run()

	require.Equal(t, 1, coordinator.callCount(), "exactly one final rollover should happen")
	call := coordinator.calls[0]
	assert.Equal(t, "/var/log/app.log", call.rawFilePath, "the active file should be rolled over")
	assert.Equal(t, "/var/log/app.2024-05-31.log.gz", call.compressedFileName,
		"the compressed name should come from the namer")
	assert.Equal(t, "app.2024-05-31.log", call.innerEntryName,
		"the inner entry name should come from the namer")

	assert.Empty(t, queue.enqueuedPaths(), "the active file should not be uploaded raw")
	assert.True(t, closer.wasCalled(), "the work queue should have been closed")
	assert.False(t, queue.wasForceStopped(), "a clean drain needs no force stop")
	assert.Equal(t, shutdown.StateDone, sut.State(), "the sequence should have finished")
	assert.Equal(t, shutdown.StateDrained, sut.DrainOutcome(), "the drain should have finished in time")
}

func TestItUploadsTheActiveFileAsIsWhenRollingOnExitIsOff(t *testing.T) {
	coordinator := &mockCoordinator{}
	queue := newMockUploadQueue()
	close(queue.done)
	closer := &closeRecorder{}

	conf := defaultConf()
	conf.RollingOnExit = false

	sut := shutdown.NewSequencer(llog, coordinator, queue, &fixedNamer{}, closer.close, conf)
	sut.Run()

	assert.Equal(t, 0, coordinator.callCount(), "no rollover should happen")
	assert.Equal(t, []string{"/var/log/app.log"}, queue.enqueuedPaths(),
		"the active file should be enqueued untouched")
	assert.True(t, closer.wasCalled(), "the work queue should have been closed")
	assert.Equal(t, shutdown.StateDrained, sut.DrainOutcome(), "the drain should have finished in time")
}

func TestItForceStopsTheQueueWhenTheDrainDeadlineElapses(t *testing.T) {
	coordinator := &mockCoordinator{}
	queue := newMockUploadQueue() // done never closes
	closer := &closeRecorder{}

	conf := defaultConf()
	conf.DrainTimeoutInMillis = 50

	sut := shutdown.NewSequencer(llog, coordinator, queue, &fixedNamer{}, closer.close, conf)

	start := time.Now()
	sut.Run()
	elapsed := time.Since(start)

	assert.True(t, queue.wasForceStopped(), "the queue should have been force stopped")
	assert.Equal(t, shutdown.StateDeadlineExceeded, sut.DrainOutcome(),
		"the deadline overrun should be recorded")
	assert.Equal(t, shutdown.StateDone, sut.State(), "the sequence should still finish")
	assert.Less(t, elapsed, 1*time.Second, "the sequence should return soon after the deadline")
}

func TestItRunsAtMostOnce(t *testing.T) {
	coordinator := &mockCoordinator{}
	queue := newMockUploadQueue()
	close(queue.done)
	closer := &closeRecorder{}

	sut := shutdown.NewSequencer(llog, coordinator, queue, &fixedNamer{}, closer.close, defaultConf())
	sut.Run()
	sut.Run()
	sut.Run()

	assert.Equal(t, 1, coordinator.callCount(), "the final rollover should happen exactly once")
}

func TestAFailedFinalRolloverDoesNotStopTheSequence(t *testing.T) {
	coordinator := &mockCoordinator{returnError: true}
	queue := newMockUploadQueue()
	close(queue.done)
	closer := &closeRecorder{}

	sut := shutdown.NewSequencer(llog, coordinator, queue, &fixedNamer{}, closer.close, defaultConf())
	sut.Run()

	assert.Equal(t, 1, coordinator.callCount(), "the rollover should have been attempted")
	assert.True(t, closer.wasCalled(), "the work queue should still be closed")
	assert.Equal(t, shutdown.StateDone, sut.State(), "the sequence should finish regardless")
	assert.Equal(t, shutdown.StateDrained, sut.DrainOutcome(), "the drain should still happen")
}

package compressor

import (
	"errors"
	"time"
)

// ErrWaitTimeout is returned by Handle.Wait when the task did not finish
// in time. The task itself keeps running; only the wait is abandoned.
var ErrWaitTimeout = errors.New("timed out waiting for compression to finish")

// Handle is the completion future of a submitted compression task.
type Handle struct {
	done chan struct{}
	err  error
}

func newHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

func (h *Handle) complete(err error) {
	h.err = err
	close(h.done)
}

// Wait blocks until the task is finished or the timeout elapses.
func (h *Handle) Wait(timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-h.done:
		return h.err
	case <-timer.C:
		return ErrWaitTimeout
	}
}

// Done is closed once the task reaches a terminal state.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err is only meaningful after Done is closed.
func (h *Handle) Err() error {
	return h.err
}

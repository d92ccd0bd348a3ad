package session

import (
	"context"
	"sync"
)

// Task is a scheduled reconciliation that can be cancelled until it commits.
type Task struct {
	cancel func()
	done   chan struct{}

	mu      sync.Mutex
	result  State
	applied bool
}

func newTask(cancel func()) *Task {
	return &Task{cancel: cancel, done: make(chan struct{})}
}

// Cancel stops the task. Once Cancel returns the task will not touch any
// session state, unless it had already committed.
func (t *Task) Cancel() {
	t.cancel()
}

func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes or ctx ends. applied is false when the
// task was cancelled or superseded without publishing anything.
func (t *Task) Wait(ctx context.Context) (st State, applied bool, err error) {
	select {
	case <-t.done:
		t.mu.Lock()
		defer t.mu.Unlock()
		return t.result, t.applied, nil
	case <-ctx.Done():
		return State{}, false, ctx.Err()
	}
}

func (t *Task) finish(st State, applied bool) {
	t.mu.Lock()
	t.result, t.applied = st, applied
	t.mu.Unlock()
	close(t.done)
}

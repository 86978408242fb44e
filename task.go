package rtlocal

import (
	"runtime"
	"sync"
)

// ID_NULL and ID_MAIN are the two sentinel task ids of spec §3. idMain is
// 0, seated directly by slab.adoptAt; idNull is the maximal uint64. Real
// slab ids are allocated starting from 1 and never reach idNull in
// practice.
const (
	idMain uint64 = 0
	idNull uint64 = ^uint64(0)
)

// taskState is the lifecycle of one spawned task (spec §3's Task record).
type taskState int

const (
	taskRunning taskState = iota
	taskCancelled
	taskCompleted
	taskFinished
)

// taskRecord is the mutex-guarded shared state between a runnable driving
// a task to completion and the [TaskHandle] a caller may be polling for
// its result. Exactly one of each exists per spawned task.
type taskRecord struct {
	mu     sync.Mutex
	state  taskState
	result any
	waiter *Waker // the handle's own waker, registered while it is being awaited
}

func newTaskRecord() *taskRecord {
	return &taskRecord{state: taskRunning}
}

// complete transitions Running -> Completed and wakes whoever is
// awaiting the handle. Called by the runnable exactly once, the moment
// the task's future reports ready.
func (r *taskRecord) complete(value any) {
	r.mu.Lock()
	var waiter *Waker
	if r.state == taskRunning {
		r.state = taskCompleted
		r.result = value
		waiter = r.waiter
		r.waiter = nil
	}
	r.mu.Unlock()
	waiter.Wake()
}

// cancel transitions Running -> Cancelled. Called by the scheduler when a
// runnable is dropped (its handle was garbage collected without Detach)
// before the task's future ever reported ready. [Runtime.Leave] does not
// call it: tasks still in the slab when a runtime is left are not
// cancelled.
func (r *taskRecord) cancel() {
	r.mu.Lock()
	var waiter *Waker
	if r.state == taskRunning {
		r.state = taskCancelled
		waiter = r.waiter
		r.waiter = nil
	}
	r.mu.Unlock()
	waiter.Wake()
}

// TaskHandle is returned by [SpawnLocal]. It is itself a [Future]: polling
// it resolves once the spawned task completes, yielding the task's
// result. A handle that is never polled to completion and never detached
// is cancelled when it is garbage collected — the closest Go analogue of
// Rust's cancel-on-drop, wired through [runtime.AddCleanup] the same way
// the teacher's registry.go leans on Go's weak-pointer/cleanup machinery
// rather than hand-rolled reference counting.
type TaskHandle struct {
	id       uint64
	record   *taskRecord
	detached bool
	cleanup  runtime.Cleanup
	done     bool // poll-after-finished guard, this handle only
}

func newTaskHandle(id uint64, record *taskRecord, onDrop func()) *TaskHandle {
	h := &TaskHandle{id: id, record: record}
	h.cleanup = runtime.AddCleanup(h, func(onDrop func()) {
		onDrop()
	}, onDrop)
	return h
}

// Detach releases the task to run to completion independently of this
// handle: garbage collecting the handle no longer cancels the task. The
// handle can still be polled for the task's result. Matches spec §4.3's
// detached-task semantics.
func (h *TaskHandle) Detach() {
	h.detached = true
	h.cleanup.Stop()
}

// Poll implements [Future]. It panics with [ErrPollAfterFinished] if
// called again after a previous call already returned ready.
func (h *TaskHandle) Poll(w *Waker) (any, bool) {
	if h.done {
		fatalf(ErrPollAfterFinished)
	}
	h.record.mu.Lock()
	defer h.record.mu.Unlock()
	switch h.record.state {
	case taskCompleted:
		h.record.state = taskFinished
		h.done = true
		return h.record.result, true
	case taskFinished:
		fatalf(ErrPollAfterFinished)
		return nil, false // not reached: fatalf panics
	case taskCancelled:
		// Per spec §9's open question: a handle awaiting a task that is
		// cancelled out from under it is left Pending forever rather than
		// resolving or panicking. This is deliberate, not a bug: the
		// handle that performed the cancellation (by dropping) is never
		// the one left awaiting it, so in practice this state is
		// unreachable except via Detach races, which are out of scope.
		h.record.waiter = w
		return nil, false
	default: // taskRunning
		h.record.waiter = w
		return nil, false
	}
}

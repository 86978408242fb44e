package rtlocal

import "sync/atomic"

// taskWake is the per-task waker object of spec §4.2 and §3: one is
// constructed when a task is adopted by the scheduler (see slab.go) and
// is the sole bridge between "a goroutine, anywhere, calling Wake" and
// "this task's id is enqueued for the next drain." isWake is the
// coalescing flag: true means a wake is pending, or the task has not
// been polled since its last wake.
//
// This mirrors the teacher's loop-wide wakeUpSignalPending dedup idiom
// (loop.go) generalized from one flag per loop to one flag per task.
type taskWake struct {
	id      uint64
	isWake  atomic.Bool
	channel *requestChannel
}

// newTaskWake constructs a wake object already armed: per spec §3, a
// fresh task must be polled at least once, so isWake starts true.
func newTaskWake(id uint64, channel *requestChannel) *taskWake {
	w := &taskWake{id: id, channel: channel}
	w.isWake.Store(true)
	return w
}

// Wake is safe to call from any goroutine, at any time. Only the
// goroutine that flips isWake from false to true enqueues the wake —
// redundant concurrent calls are coalesced to a single channel push.
func (w *taskWake) Wake() {
	if !w.isWake.Swap(true) {
		w.channel.pushWake(w.id)
	}
}

// snapshot is called by the scheduler goroutine immediately before
// polling the owning task: it clears isWake and returns a [Waker] bound
// to this object. A Wake() that lands after this call (e.g. during the
// poll it guards) re-arms isWake and re-enqueues for the next drain
// iteration — which is exactly how a self-waking task is pushed to the
// next iteration instead of looping forever in this one (spec §4.5
// fairness note).
func (w *taskWake) snapshot() *Waker {
	w.isWake.Store(false)
	return &Waker{wake: w}
}

// release pushes this task's id onto the channel's drop list. Per spec
// §4.2, dropping the wake object is what enqueues the drop; here that
// drop is triggered by a [TaskHandle] being garbage-collected while its
// task is still Running (see newTaskHandle's cleanup in task.go) rather
// than by an actual Go-level drop of the taskWake value itself, since
// this runtime has no destructors to hook. Normal completion and
// explicit cancellation remove the slab entry directly (scheduler.go)
// without going through release.
func (w *taskWake) release() {
	w.channel.pushDrop(w.id)
}

package rtlocal

// runnable binds one spawned [Future] to its id, its wake object and the
// [taskRecord] a [TaskHandle] observes. It is the Go analogue of
// original_source's RawRunnable<F>: where that type stores the future
// inline in a Pin<Box<...>>, here the future is simply held by interface
// value — nothing needs pinning because Go never moves a live object a
// pointer refers to.
type runnable struct {
	id     uint64
	future Future
	record *taskRecord
	wake   *taskWake
}

// poll drives the runnable's future forward exactly once, using a fresh
// snapshot of its wake object as the waker. It returns true once the
// future is finished, at which point the caller must remove the
// runnable's slab entry. Matches original_source's run_item: a panic
// from the future propagates to the caller unmodified, leaving the
// runnable's bookkeeping untouched — spec's executor does not catch task
// panics.
func (r *runnable) poll() bool {
	value, ready := r.future.Poll(r.wake.snapshot())
	if !ready {
		return false
	}
	r.record.complete(value)
	return true
}

// cancelled marks the runnable's task cancelled without ever polling its
// future again. Called by the scheduler when the runnable is reaped via
// drop-apply before its future ever reported ready.
func (r *runnable) cancelled() {
	r.record.cancel()
}

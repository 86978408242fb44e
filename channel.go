package rtlocal

import "sync"

// idleWaiter is a stashed continuation awaiting quiescence (spec §4.6).
// No task id is allocated for it — it is resumed by waking w directly.
type idleWaiter struct {
	w *Waker
}

// requests is the mutex-guarded triple a [requestChannel] batches: the
// ids to poll next, the ids to drop from the slab, and the continuations
// parked on [WaitForIdle]. Mirrors spec §3's RawRequests shape exactly.
type requests struct {
	wakes []uint64
	drops []uint64
	idles []idleWaiter
}

func (r *requests) empty() bool {
	return len(r.wakes) == 0 && len(r.drops) == 0 && len(r.idles) == 0
}

// requestChannel is the thread-safe inbox described in spec §4.1: any
// goroutine may push a wake, a drop, or an idle-waiter; the scheduler
// goroutine alone calls swap to drain all three under one critical
// section. Pushing into a previously-empty inbox fires hostWaker exactly
// once — never while the mutex is held, per the spec's explicit ordering
// requirement.
//
// The teacher's eventloop package backs an equivalent structure with a
// chunked linked-list (ChunkedIngress) and a lock-free ring buffer
// (MicrotaskRing) for throughput under heavy concurrent submission. Those
// exist to amortize per-task allocation at high task-submission rates;
// this inbox only ever carries small integers and parked wakers, batched
// once per host tick, so a plain mutex-guarded slice — reused across
// swaps exactly the way the teacher's goja-style auxJobs/auxJobsSpare
// pair is reused — is the right tool, not a simplification of it.
type requestChannel struct {
	hostWaker HostWaker

	mu     sync.Mutex
	reqs   requests
	closed bool
}

func newRequestChannel(hostWaker HostWaker) *requestChannel {
	return &requestChannel{hostWaker: hostWaker}
}

// swap moves all three queues out under the lock in one pass. wakes,
// drops and idles must be empty slices (typically reused buffers) on
// entry; their backing arrays are swapped with the channel's internal
// ones so no per-call allocation is needed on the steady-state path.
func (c *requestChannel) swap(wakes, drops []uint64, idles []idleWaiter) ([]uint64, []uint64, []idleWaiter) {
	c.mu.Lock()
	wakes, c.reqs.wakes = c.reqs.wakes, wakes[:0]
	drops, c.reqs.drops = c.reqs.drops, drops[:0]
	idles, c.reqs.idles = c.reqs.idles, idles[:0]
	c.mu.Unlock()
	return wakes, drops, idles
}

// pushWake, pushDrop and pushIdle each append under the lock after noting
// whether the inbox was empty beforehand. The host wake (if any) happens
// strictly after the lock is released — all three follow the same shape:
// acquire, sample wasEmpty, append, release, wake-if-wasEmpty.
func (c *requestChannel) pushWake(id uint64) {
	c.mu.Lock()
	wasEmpty := c.reqs.empty()
	c.reqs.wakes = append(c.reqs.wakes, id)
	c.mu.Unlock()
	if wasEmpty {
		c.wakeHost()
	}
}

func (c *requestChannel) pushDrop(id uint64) {
	c.mu.Lock()
	wasEmpty := c.reqs.empty()
	c.reqs.drops = append(c.reqs.drops, id)
	c.mu.Unlock()
	if wasEmpty {
		c.wakeHost()
	}
}

func (c *requestChannel) pushIdle(w *Waker) {
	c.mu.Lock()
	wasEmpty := c.reqs.empty()
	c.reqs.idles = append(c.reqs.idles, idleWaiter{w: w})
	c.mu.Unlock()
	if wasEmpty {
		c.wakeHost()
	}
}

func (c *requestChannel) wakeHost() {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if !closed && c.hostWaker != nil {
		c.hostWaker.Wake()
	}
}

// close marks the channel as having no host loop left to notify. Pushes
// from stray wakers (a [TaskHandle]'s GC-triggered drop, a future still
// holding a stale [Waker] after its [Runtime] was left) remain safe — the
// queue just never wakes anything again, and the stored errLoopClosed
// sentinel gives callers something to log against.
func (c *requestChannel) close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *requestChannel) closedErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errLoopClosed
	}
	return nil
}

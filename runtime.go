package rtlocal

import "sync"

// Runtime is the thread-local executor of spec §3. Exactly one may be
// installed per goroutine at a time (via [Enter] or [Run]); spawning,
// stepping and waiting for idle are all only valid from that goroutine.
//
// original_source keeps this split into a Runtime (thread_local, owns
// pending spawns and the idle accumulator) and a separate Runner (owns
// the slab and applies wakes/drops) connected through a RequestChannel.
// That split exists to let a Runtime be entered/left repeatedly across
// nested host callbacks while a Runner's slab persists across them. This
// package preserves that same shape as two cooperating halves of one
// struct, rather than as two different Go types, since nothing here
// needs the Runner to outlive the Runtime the way a reference-counted
// Rc<Runner> does in the original.
type Runtime struct {
	opts    *runtimeOptions
	channel *requestChannel
	slab    *slab

	// idles accumulates parked WaitForIdle continuations drained from the
	// channel by Step, resumed one at a time by ResumeOneIdle — spec
	// §4.6's explicit one-waiter-per-host-call contract.
	idles []idleWaiter

	goroutineID uint64
}

var (
	installedMu sync.Mutex
	installed   = map[uint64]*Runtime{}
)

// currentRuntime returns the Runtime installed on the calling goroutine,
// or nil.
func currentRuntime() *Runtime {
	installedMu.Lock()
	defer installedMu.Unlock()
	return installed[getGoroutineID()]
}

// Enter installs a new [Runtime] on the calling goroutine, bound to host
// wake notifications through w. It panics with [ErrNestedRuntime] if one
// is already installed here. Pair with [Runtime.Leave], or use [Run] to
// drive the common case of owning the host loop too.
func Enter(w HostWaker, opts ...RuntimeOption) *Runtime {
	gid := getGoroutineID()

	installedMu.Lock()
	if _, exists := installed[gid]; exists {
		installedMu.Unlock()
		fatalf(ErrNestedRuntime)
	}
	rt := &Runtime{
		opts:        resolveRuntimeOptions(opts),
		channel:     newRequestChannel(w),
		slab:        newSlab(),
		goroutineID: gid,
	}
	installed[gid] = rt
	installedMu.Unlock()
	return rt
}

// Leave uninstalls r from the calling goroutine. r must not be used
// afterward. It panics with [ErrNoRuntime] if called from any goroutine
// other than the one that entered r, or if r is no longer installed.
func (r *Runtime) Leave() {
	r.requireOwner()
	installedMu.Lock()
	delete(installed, r.goroutineID)
	installedMu.Unlock()
	r.channel.close()
	r.logEvent(LevelDebug, "shutdown", idMain, "runtime left, request channel closed", r.channel.closedErr())
}

func (r *Runtime) requireOwner() {
	if r == nil || getGoroutineID() != r.goroutineID {
		fatalf(ErrNoRuntime)
	}
	installedMu.Lock()
	_, ok := installed[r.goroutineID]
	installedMu.Unlock()
	if !ok {
		fatalf(ErrNoRuntime)
	}
}

// spawn adopts future into the slab, arms its first poll, and returns the
// handle. Safe to call both from the owning goroutine directly (top-level
// SpawnLocal) and from inside a task's own poll (re-entrant spawn).
func (r *Runtime) spawn(future Future) *TaskHandle {
	rn := r.slab.adopt(future, r.channel)
	return r.handleFor(rn)
}

// spawnMain seats future at the reserved idMain slot — spec §4.5's
// entry-point task, scheduled through the exact same wake/poll/drop path
// as any other runnable, just never competing for an auto-allocated id.
func (r *Runtime) spawnMain(future Future) *TaskHandle {
	rn := r.slab.adoptAt(idMain, future, r.channel)
	return r.handleFor(rn)
}

// handleFor builds the [TaskHandle] for a freshly adopted runnable and
// arms its first poll. The handle's GC-triggered cancel-on-drop cleanup
// calls rn.wake.release(), which pushes the drop (spec §4.2) — the
// actual wake object, not this closure, is what "drops" here.
func (r *Runtime) handleFor(rn *runnable) *TaskHandle {
	h := newTaskHandle(rn.id, rn.record, rn.wake.release)
	r.channel.pushWake(rn.id)
	return h
}

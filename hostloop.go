package rtlocal

// HostWaker is the handle a [requestChannel] uses to interrupt a blocked
// host loop. Implementations must be safe to call from any goroutine, at
// any time, including concurrently with themselves and with the host
// loop's own Run method — the same contract the teacher's eventloop
// package holds its wakeup-pipe writers to (wakeup_linux.go,
// wakeup_darwin.go, wakeup_windows.go).
type HostWaker interface {
	// Wake interrupts a blocked call to [HostLoop.Run] so it invokes step
	// again promptly. Calling Wake when the host loop is not blocked, or
	// calling it redundantly, must be a safe no-op or a harmless coalesce
	// — callers never wait for an acknowledgement.
	Wake()
}

// HostLoop is the external message loop this executor cohabits with. The
// package never creates a goroutine of its own to drive a [Runtime]: a
// host, built against this interface, owns the thread and decides when to
// call step.
//
// step polls the runtime exactly once (via [Runtime.Step]) and reports
// whether the run should stop, plus the value to return from Run in that
// case. A conforming HostLoop must call step at least once after every
// Wake observed on its [HostWaker], and must not call step concurrently
// with itself.
//
// See host/condvar for a minimal, portable reference implementation, and
// host/pipehost / host/winmsg for platform-integrated ones: a
// self-pipe/eventfd wakeup and a Win32 thread-message pump.
type HostLoop interface {
	// Waker returns the HostWaker this loop is woken through. Called once,
	// before the loop starts running steps.
	Waker() HostWaker

	// Run blocks, invoking step whenever there may be work, until step
	// reports done, then returns the value step returned alongside it. A
	// HostLoop that returns from Run without step ever reporting done
	// (e.g. a window-message pump that received a quit message) must
	// instead panic with [ErrHostAborted].
	Run(step func() (done bool, value any)) any
}

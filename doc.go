// Package rtlocal provides a thread-local cooperative task executor meant
// to cohabit with an externally owned message loop: a GUI toolkit, a
// platform window-message pump, or a bespoke blocking loop.
//
// # Architecture
//
// The executor never owns the thread it runs on. A [HostLoop] drives it by
// calling [Runtime.Step] once per host iteration; the executor signals the
// host to wake (via [HostWaker]) whenever it has work. [SpawnLocal] starts
// a non-sendable [Future] on the current goroutine; the returned
// [TaskHandle] is itself a [Future] that resolves with the task's result,
// and cancels the task when dropped (garbage collected) without being
// detached. [WaitForIdle] suspends a task until both the executor and its
// host have no immediate work.
//
// Three pieces carry the weight: the per-task wake object (atomic
// de-duplication of wakes, safe from any goroutine), the request channel
// (a mutex-protected multi-producer inbox batching wakes, drops and
// idle-waiters), and the scheduler (reconciles spawns, wakes, drops and
// idle-waiters against a slab of runnables once per host tick).
//
// # Thread affinity
//
// Go has no goroutine-local storage. "Thread" throughout this package
// means "the goroutine that called [Enter] or [Run]" — affinity is
// enforced the same way the rest of this author's eventloop toolbelt
// checks it: by parsing the calling goroutine's id out of a
// [runtime.Stack] dump and comparing it against the id recorded at
// [Enter]/[Run] time.
//
// # Errors
//
// All errors this package raises ([ErrNestedRuntime], [ErrNoRuntime],
// [ErrPollAfterFinished], [ErrHostAborted]) are programmer errors with no
// recovery path.
package rtlocal

package rtlocal

import "errors"

// All errors this package raises are programmer errors: misuse of the
// runtime from the wrong goroutine, polling past completion, or a host
// loop that returned without ever breaking out of its step callback. None
// of them are meant to be recovered from; callers that hit one have a bug.
var (
	// ErrNestedRuntime is the panic value [Enter] or [Run] raises when a
	// runtime is already installed on the calling goroutine.
	ErrNestedRuntime = errors.New("rtlocal: a runtime is already installed on this goroutine")

	// ErrNoRuntime is the panic value raised by [SpawnLocal],
	// [WaitForIdle], or [Runtime.Step]-adjacent calls made without an
	// installed runtime.
	ErrNoRuntime = errors.New("rtlocal: no runtime is installed on this goroutine")

	// ErrPollAfterFinished is the panic value [TaskHandle.Poll] raises
	// when a task handle is polled a second time after it has already
	// yielded Ready once.
	ErrPollAfterFinished = errors.New("rtlocal: task handle polled after completion")

	// ErrHostAborted is the panic value raised when a [HostLoop] returns
	// from Run without its step callback ever reporting done — e.g. a
	// window message pump that received a quit message.
	ErrHostAborted = errors.New("rtlocal: host loop aborted without the step callback completing")

	// errLoopClosed marks a request channel whose host loop has gone
	// away. Pushing into it is still safe (per the wake/drop contract,
	// wakers may outlive the executor) but no further host wake fires.
	errLoopClosed = errors.New("rtlocal: request channel has no host loop")
)

// fatalf panics with err — the package-wide convention for the four
// programmer errors above. A panic (rather than a returned error) matches
// how the rest of this call chain is written: these conditions are bugs
// at the call site, not data the caller is expected to branch on.
func fatalf(err error) {
	panic(err)
}

package rtlocal

// SpawnLocal starts future running on the [Runtime] installed on the
// calling goroutine (spec §4.7). It panics with [ErrNoRuntime] if none
// is installed. The returned [TaskHandle] resolves with future's result,
// and cancels the task when garbage collected unless [TaskHandle.Detach]
// is called first.
func SpawnLocal(future Future) *TaskHandle {
	rt := currentRuntime()
	if rt == nil {
		fatalf(ErrNoRuntime)
	}
	return rt.spawn(future)
}

// Run installs a [Runtime] on the calling goroutine, spawns main on it,
// and hands control to host until main's task completes, then tears the
// runtime down and returns main's result. This is the common case of
// [Enter] immediately followed by driving a host loop to completion;
// reach for Enter/Leave directly when the host loop is already running
// and a runtime just needs to be attached to it (e.g. a GUI toolkit's
// existing event loop).
func Run(host HostLoop, main Future) any {
	rt := Enter(host.Waker())
	defer rt.Leave()

	handle := rt.spawnMain(main)
	var result any
	finished := false

	value := host.Run(func() (bool, any) {
		rt.Step()
		if r, ready := handle.Poll(nil); ready {
			result, finished = r, true
			return true, result
		}
		// Step already drained to a fixed point above, so anything still
		// parked on WaitForIdle truly has nothing left to wait on. Per
		// spec §4.6, resume exactly one at a time, re-draining between
		// each in case resuming it produces fresh wakes.
		for rt.ResumeOneIdle() {
			rt.Step()
			if r, ready := handle.Poll(nil); ready {
				result, finished = r, true
				return true, result
			}
		}
		return false, nil
	})
	if !finished {
		fatalf(ErrHostAborted)
	}
	if value == nil {
		return result
	}
	return value
}

package rtlocal

// waitForIdle is a single-shot [Future]: the first poll always suspends,
// parking its waker on the request channel as an idle-waiter; the second
// poll (which only happens once something resumes it) always succeeds.
// Matches original_source's WaitForIdle, whose is_ready flag plays the
// identical role.
type waitForIdle struct {
	parked bool
}

func (f *waitForIdle) Poll(w *Waker) (any, bool) {
	if f.parked {
		return nil, true
	}
	f.parked = true
	w.wake.channel.pushIdle(w)
	return nil, false
}

// WaitForIdle returns a [Future] that resolves once both the executor and
// its host have no other immediate work — spec §4.6. It must be spawned
// or awaited only from the goroutine that owns the current [Runtime]; it
// panics with [ErrNoRuntime] if none is installed.
func WaitForIdle() Future {
	if currentRuntime() == nil {
		fatalf(ErrNoRuntime)
	}
	return &waitForIdle{}
}

// ResumeOneIdle resumes exactly one waiter parked on [WaitForIdle], if
// any, and reports whether one was resumed. Spec §4.6 calls for host
// loops to resume idle-waiters one at a time, each only after confirming
// the executor and host are still quiescent — unlike original_source's
// wake_idles, which wakes every accumulated waiter in a single call.
func (r *Runtime) ResumeOneIdle() bool {
	r.requireOwner()
	if len(r.idles) == 0 {
		return false
	}
	w := r.idles[0]
	r.idles = r.idles[1:]
	r.logEvent(LevelDebug, "idle-resume", idNull, "resuming idle waiter", nil)
	w.w.Wake()
	return true
}

// HasIdleWaiters reports whether any task is parked on [WaitForIdle].
// Only waiters that [Runtime.Step] has already collected from the request
// channel are counted. It is meant for hosts that want to decide whether to call ResumeOneIdle before
// blocking again.
func (r *Runtime) HasIdleWaiters() bool {
	r.requireOwner()
	return len(r.idles) > 0
}

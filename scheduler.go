package rtlocal

// Step drains one batch of pending work: every wake and drop queued on
// the request channel since the previous call, plus every idle-waiter
// parked since then. It is the sole entry point a [HostLoop] calls, once
// per host iteration (spec §4.5).
//
// Step loops internally until a swap comes back with nothing new and no
// runnable produced a fresh wake of its own — the same "drain to a fixed
// point, then yield to the host" shape as the teacher's tick()/shutdown()
// pair (loop.go), collapsed into one method because this scheduler has
// no separate timer/poll phases to interleave.
func (r *Runtime) Step() {
	r.requireOwner()

	var wakesBuf, dropsBuf []uint64
	var idlesBuf []idleWaiter

	budget := r.opts.drainBudget
	processed := 0

	for {
		wakes, drops, idles := r.channel.swap(wakesBuf[:0], dropsBuf[:0], idlesBuf[:0])
		wakesBuf, dropsBuf, idlesBuf = wakes, drops, idles

		if len(idles) > 0 {
			r.idles = append(r.idles, idles...)
		}

		// Drops are applied before wakes, which is the opposite order
		// from original_source's Runner::poll (it polls the wake set
		// first and calls apply_drops after, base_impl.rs:407-414). The
		// inversion is necessary here, not a port of that ordering: this
		// design defers the Running -> Cancelled transition into
		// drop-apply itself (rn.cancelled(), below) rather than making
		// drop a separate synchronous state change at push time. A
		// runnable both woken and dropped in the same batch must have
		// that cancellation observed before it is ever polled again, so
		// drops have to land first.
		for _, id := range drops {
			if rn := r.slab.get(id); rn != nil {
				rn.cancelled()
				r.slab.remove(id)
				r.logEvent(LevelDebug, "drop", id, "task dropped", nil)
			}
		}

		if len(wakes) == 0 && len(drops) == 0 {
			return
		}

		for i, id := range wakes {
			if budget > 0 && processed >= budget {
				// Re-enqueue the remainder for a later Step call rather
				// than starve the host loop — mirrors the teacher's
				// OnOverload budget cutoff in processExternal. Return
				// immediately: re-looping within this same call would
				// just hit the same budget again.
				deferred := 0
				for _, rest := range wakes[i:] {
					r.channel.pushWake(rest)
					deferred++
				}
				if r.opts.overloadHandle != nil {
					r.opts.overloadHandle(deferred)
				}
				return
			}
			rn := r.slab.get(id)
			if rn == nil {
				continue // already tombstoned by a drop in this same batch
			}
			processed++
			r.logEvent(LevelDebug, "poll", id, "polling task", nil)
			if rn.poll() {
				r.slab.remove(id)
				r.logEvent(LevelDebug, "complete", id, "task completed", nil)
			}
		}
	}
}

func (r *Runtime) logEvent(level LogLevel, category string, id uint64, msg string, err error) {
	if r.opts.logger == nil || !r.opts.logger.IsEnabled(level) {
		return
	}
	r.opts.logger.Log(LogEntry{Level: level, Category: category, TaskID: id, Message: msg, Err: err})
}

// LiveTaskCount reports the number of tasks currently adopted into the
// slab (including [Run]'s entry-point task until it completes).
// A host can use this alongside [Runtime.HasIdleWaiters] to decide
// whether it is safe to block for longer between steps.
func (r *Runtime) LiveTaskCount() int {
	r.requireOwner()
	return r.slab.len()
}

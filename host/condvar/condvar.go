// Package condvar is the minimal, fully portable [rtlocal.HostLoop]
// reference implementation called for in spec §6: a blocking host built
// on sync.Mutex/sync.Cond, with no platform-specific wake mechanism.
// This is a case where the standard library genuinely is the right
// tool — a condvar is exactly what "block until woken, cross-goroutine"
// means in Go, and nothing in the example corpus offers a better fit for
// a dependency-free reference host.
package condvar

import (
	"sync"

	"github.com/joeycumines/rtlocal-core"
)

// Loop blocks between steps on a condition variable, woken by any
// goroutine calling Wake on its waker.
type Loop struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending bool
}

// New constructs a ready-to-use Loop.
func New() *Loop {
	l := &Loop{}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// Waker implements [rtlocal.HostLoop].
func (l *Loop) Waker() rtlocal.HostWaker {
	return (*waker)(l)
}

// Run implements [rtlocal.HostLoop]: steps once immediately (so work
// queued before Run was ever called still gets a first pass), then
// blocks until woken, stepping again on every wake, until step reports
// done.
func (l *Loop) Run(step func() (done bool, value any)) any {
	if done, value := step(); done {
		return value
	}
	for {
		l.mu.Lock()
		for !l.pending {
			l.cond.Wait()
		}
		l.pending = false
		l.mu.Unlock()

		if done, value := step(); done {
			return value
		}
	}
}

type waker Loop

// Wake sets pending and signals the condition variable. Safe from any
// goroutine, any time; redundant wakes between steps are coalesced into
// one pending flag, the same dedup shape as [rtlocal]'s own wake object.
func (w *waker) Wake() {
	w.mu.Lock()
	w.pending = true
	w.mu.Unlock()
	w.cond.Signal()
}

package rtlocal

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRequestChannel_concurrentPushesCoalesceSafely fans in pushWake and
// pushIdle calls from many goroutines at once and checks
// nothing is lost across a swap — the same guarantee spec §4.1 makes for
// wakers that may fire from any goroutine, any time.
func TestRequestChannel_concurrentPushesCoalesceSafely(t *testing.T) {
	waker := &countingHostWaker{}
	ch := newRequestChannel(waker)

	const n = 200
	var wg sync.WaitGroup
	wg.Add(n * 2)
	for i := 0; i < n; i++ {
		id := uint64(i + 1)
		go func() {
			defer wg.Done()
			ch.pushWake(id)
		}()
		go func() {
			defer wg.Done()
			ch.pushIdle(&Waker{wake: newTaskWake(id, ch).snapshot()})
		}()
	}
	wg.Wait()

	wakes, _, idles := ch.swap(nil, nil, nil)
	require.Len(t, wakes, n)
	require.Len(t, idles, n)
}

// TestTaskWake_concurrentWakeCallsCoalesceToOnePush mirrors wake_test.go's
// single-goroutine coalescing check under real concurrency: many
// goroutines racing Wake() on the same taskWake must only ever enqueue
// its id once per arm/snapshot cycle.
func TestTaskWake_concurrentWakeCallsCoalesceToOnePush(t *testing.T) {
	ch := newRequestChannel(&countingHostWaker{})
	tw := newTaskWake(42, ch).snapshot() // disarm the initial default wake

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			tw.Wake()
		}()
	}
	wg.Wait()

	wakes, _, _ := ch.swap(nil, nil, nil)
	require.Equal(t, []uint64{42}, wakes)
}

func TestRuntime_leaveClosesChannel_pushAfterwardDoesNotPanic(t *testing.T) {
	rt := Enter(&countingHostWaker{})
	ch := rt.channel
	rt.Leave()

	require.NotPanics(t, func() {
		ch.pushWake(1)
	})
	require.ErrorIs(t, ch.closedErr(), errLoopClosed)
}

package rtlocal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// countingHostWaker is a no-op HostWaker; these tests drive Step directly.
type countingHostWaker struct{ n int }

func (w *countingHostWaker) Wake() { w.n++ }

func withRuntime(t *testing.T, opts ...RuntimeOption) *Runtime {
	t.Helper()
	rt := Enter(&countingHostWaker{}, opts...)
	t.Cleanup(rt.Leave)
	return rt
}

func TestStep_pollsNewlySpawnedTaskOnFirstCall(t *testing.T) {
	rt := withRuntime(t)
	polled := false
	h := SpawnLocal(FutureFunc(func(w *Waker) (any, bool) {
		polled = true
		return "ok", true
	}))

	rt.Step()
	require.True(t, polled)
	v, ready := h.Poll(nil)
	require.True(t, ready)
	require.Equal(t, "ok", v)
}

func TestStep_selfWakeLandsNextDrainIterationNotSameOne(t *testing.T) {
	rt := withRuntime(t)
	polls := 0
	var handle *TaskHandle
	handle = SpawnLocal(FutureFunc(func(w *Waker) (any, bool) {
		polls++
		if polls < 3 {
			w.Wake() // self-wake: must not cause unbounded re-poll within this Step call
			return nil, false
		}
		return polls, true
	}))
	_ = handle

	rt.Step() // a single Step call must still drain to a fixed point across iterations
	require.Equal(t, 3, polls)
}

// TestStep_dropCancelsBeforePolling exercises the drops-before-wakes
// ordering directly, by pushing the drop request itself rather than by
// dropping the [TaskHandle] and waiting on [runtime.AddCleanup] — that
// GC-triggered path runs at a time of the garbage collector's choosing
// and has no deterministic trigger a unit test can wait on, so it is not
// exercised here; this test only confirms Step's ordering guarantee
// given a drop request that has already arrived on the channel.
func TestStep_dropCancelsBeforePolling(t *testing.T) {
	rt := withRuntime(t)
	polled := false
	h := SpawnLocal(FutureFunc(func(w *Waker) (any, bool) {
		polled = true
		return nil, false
	}))
	rt.channel.pushDrop(h.id)

	rt.Step()
	require.False(t, polled, "a task dropped in the same batch as its wake must not be polled")
}

func TestStep_ordersWakesByEnqueueOrder(t *testing.T) {
	rt := withRuntime(t)
	var order []int
	mk := func(n int) Future {
		return FutureFunc(func(w *Waker) (any, bool) {
			order = append(order, n)
			return nil, true
		})
	}
	// Suppress each task's own initial auto-wake ordering by spawning in
	// the desired sequence: SpawnLocal pushes a wake immediately per task.
	SpawnLocal(mk(1))
	SpawnLocal(mk(2))
	SpawnLocal(mk(3))

	rt.Step()
	require.Equal(t, []int{1, 2, 3}, order)
}

// TestStep_detachedTaskRunsToCompletionIndependentOfHandle is spec §8
// scenario 4: a detached task's handle being dropped must not cancel it —
// unlike an un-detached handle (scenario 3, covered by
// TestStep_dropCancelsBeforePolling), detaching disables the
// cancel-on-drop cleanup entirely, so the task runs to completion on its
// own.
func TestStep_detachedTaskRunsToCompletionIndependentOfHandle(t *testing.T) {
	rt := withRuntime(t)
	var recorded []string
	h := SpawnLocal(FutureFunc(func(w *Waker) (any, bool) {
		recorded = append(recorded, "X")
		return nil, true
	}))
	h.Detach()

	rt.Step()
	require.Equal(t, []string{"X"}, recorded)
}

func TestRuntime_drainBudget_deferExcessToNextStep(t *testing.T) {
	rt := withRuntime(t, WithDrainBudget(1))
	var order []int
	mk := func(n int) Future {
		return FutureFunc(func(w *Waker) (any, bool) {
			order = append(order, n)
			return nil, true
		})
	}
	SpawnLocal(mk(1))
	SpawnLocal(mk(2))

	rt.Step()
	require.Equal(t, []int{1}, order, "budget of 1 must only process the first task this call")

	rt.Step()
	require.Equal(t, []int{1, 2}, order, "the deferred task must be processed on the next Step call")
}

package rtlocal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWaitForIdle_pendingThenReadyOnSecondPoll(t *testing.T) {
	rt := withRuntime(t)
	idle := WaitForIdle()

	_, ready := idle.Poll(&Waker{wake: newTaskWake(5, rt.channel)})
	require.False(t, ready)
	rt.Step() // collects the parked waiter from the request channel
	require.True(t, rt.HasIdleWaiters())

	resumed := rt.ResumeOneIdle()
	require.True(t, resumed)

	_, ready = idle.Poll(&Waker{})
	require.True(t, ready)
}

func TestResumeOneIdle_returnsFalseWhenNoneParked(t *testing.T) {
	rt := withRuntime(t)
	require.False(t, rt.ResumeOneIdle())
}

// TestResumeOneIdle_popsInFIFOOrder mirrors spec §8's scenario: two tasks
// (here, standing in as A and B) each park on idle; resumption must wake
// A's continuation strictly before B's.
func TestResumeOneIdle_popsInFIFOOrder(t *testing.T) {
	rt := withRuntime(t)

	rt.idles = []idleWaiter{
		{w: newTaskWake(100, rt.channel).snapshot()}, // A
		{w: newTaskWake(101, rt.channel).snapshot()}, // B
	}

	require.True(t, rt.ResumeOneIdle())
	wakes, _, _ := rt.channel.swap(nil, nil, nil)
	require.Equal(t, []uint64{100}, wakes, "A must resume before B")

	require.True(t, rt.ResumeOneIdle())
	wakes, _, _ = rt.channel.swap(nil, nil, nil)
	require.Equal(t, []uint64{101}, wakes)

	require.False(t, rt.ResumeOneIdle())
}

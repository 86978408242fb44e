package rtlocal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnter_nestedOnSameGoroutine_panics(t *testing.T) {
	rt := Enter(&countingHostWaker{})
	defer rt.Leave()

	require.PanicsWithValue(t, ErrNestedRuntime, func() {
		Enter(&countingHostWaker{})
	})
}

func TestSpawnLocal_withoutRuntime_panics(t *testing.T) {
	require.PanicsWithValue(t, ErrNoRuntime, func() {
		SpawnLocal(FutureFunc(func(w *Waker) (any, bool) { return nil, true }))
	})
}

func TestLeave_thenReenter_succeeds(t *testing.T) {
	rt := Enter(&countingHostWaker{})
	rt.Leave()

	rt2 := Enter(&countingHostWaker{})
	defer rt2.Leave()
	require.NotSame(t, rt, rt2)
}

func TestLeave_twice_panicsWithNoRuntime(t *testing.T) {
	rt := Enter(&countingHostWaker{})
	rt.Leave()

	require.PanicsWithValue(t, ErrNoRuntime, func() {
		rt.Leave()
	})
}

func TestSpawnLocal_wiresUpCurrentRuntime(t *testing.T) {
	rt := withRuntime(t)
	h := SpawnLocal(FutureFunc(func(w *Waker) (any, bool) { return "hi", true }))
	rt.Step()
	v, ready := h.Poll(nil)
	require.True(t, ready)
	require.Equal(t, "hi", v)
}

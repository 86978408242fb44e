package rtlocal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeWaker struct{ calls int }

func (f *fakeWaker) Wake() { f.calls++ }

func TestRequestChannel_pushWake_wakesHostOnlyOnEmptyToNonEmpty(t *testing.T) {
	fw := &fakeWaker{}
	c := newRequestChannel(fw)

	c.pushWake(1)
	require.Equal(t, 1, fw.calls)

	c.pushWake(2)
	require.Equal(t, 1, fw.calls, "a second push into a non-empty inbox must not wake again")
}

func TestRequestChannel_swap_drainsAllThreeQueuesAndResets(t *testing.T) {
	fw := &fakeWaker{}
	c := newRequestChannel(fw)

	c.pushWake(1)
	c.pushDrop(2)
	c.pushIdle(&Waker{})

	wakes, drops, idles := c.swap(nil, nil, nil)
	require.Equal(t, []uint64{1}, wakes)
	require.Equal(t, []uint64{2}, drops)
	require.Len(t, idles, 1)

	wakes, drops, idles = c.swap(wakes[:0], drops[:0], idles[:0])
	require.Empty(t, wakes)
	require.Empty(t, drops)
	require.Empty(t, idles)
}

func TestRequestChannel_pushAfterSwap_wakesHostAgain(t *testing.T) {
	fw := &fakeWaker{}
	c := newRequestChannel(fw)

	c.pushWake(1)
	c.swap(nil, nil, nil)
	require.Equal(t, 1, fw.calls)

	c.pushDrop(1)
	require.Equal(t, 2, fw.calls, "inbox went empty after swap, so the next push must wake again")
}

func TestRequestChannel_nilHostWaker_isSafe(t *testing.T) {
	c := newRequestChannel(nil)
	require.NotPanics(t, func() {
		c.pushWake(1)
	})
}

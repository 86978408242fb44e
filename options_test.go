package rtlocal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveRuntimeOptions_defaultsAndNilSkip(t *testing.T) {
	opts := resolveRuntimeOptions([]RuntimeOption{nil, WithDrainBudget(5), nil})
	require.Equal(t, 5, opts.drainBudget)
	require.NotNil(t, opts.logger)
}

func TestWithOverloadHandler_invokedWhenBudgetExceeded(t *testing.T) {
	var queued int
	rt := Enter(&countingHostWaker{}, WithDrainBudget(1), WithOverloadHandler(func(n int) {
		queued = n
	}))
	defer rt.Leave()

	SpawnLocal(FutureFunc(func(w *Waker) (any, bool) { return nil, true }))
	SpawnLocal(FutureFunc(func(w *Waker) (any, bool) { return nil, true }))
	SpawnLocal(FutureFunc(func(w *Waker) (any, bool) { return nil, true }))

	rt.Step()
	require.Greater(t, queued, 0)
}

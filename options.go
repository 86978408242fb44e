package rtlocal

// runtimeOptions holds configuration resolved at [Enter]/[Run] time.
type runtimeOptions struct {
	logger         Logger
	drainBudget    int
	overloadHandle func(queued int)
}

// RuntimeOption configures a [Runtime] at construction time. The pattern
// is lifted directly from the teacher's LoopOption/loopOptionImpl
// (options.go): a small interface plus a function-holding implementation,
// so option constructors stay simple closures instead of exported types.
type RuntimeOption interface {
	applyRuntime(*runtimeOptions)
}

type runtimeOptionFunc struct {
	fn func(*runtimeOptions)
}

func (o *runtimeOptionFunc) applyRuntime(opts *runtimeOptions) { o.fn(opts) }

// WithLogger installs logger as the destination for this runtime's
// structured events (poll, complete, drop, idle-resume, shutdown). The
// default is the package's global logger.
func WithLogger(logger Logger) RuntimeOption {
	return &runtimeOptionFunc{func(opts *runtimeOptions) {
		opts.logger = logger
	}}
}

// WithDrainBudget caps the number of runnable ids processed per host call
// to step before step returns control to the host loop, the same
// overload-avoidance shape as the teacher's processExternal budget
// (loop.go). A budget <= 0 means unbounded (drain fully each step).
func WithDrainBudget(n int) RuntimeOption {
	return &runtimeOptionFunc{func(opts *runtimeOptions) {
		opts.drainBudget = n
	}}
}

// WithOverloadHandler installs a callback invoked when a drain iteration
// hits the drain budget with runnables still queued, mirroring the
// teacher's Loop.OnOverload hook.
func WithOverloadHandler(fn func(queued int)) RuntimeOption {
	return &runtimeOptionFunc{func(opts *runtimeOptions) {
		opts.overloadHandle = fn
	}}
}

// resolveRuntimeOptions applies opts over a set of defaults, skipping any
// nil entries exactly as the teacher's resolveLoopOptions does.
func resolveRuntimeOptions(opts []RuntimeOption) *runtimeOptions {
	cfg := &runtimeOptions{
		logger:      globalLogger(),
		drainBudget: 0,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyRuntime(cfg)
	}
	return cfg
}

package profile

import "slices"

// Stopper stops a running profiler and flushes its output.
type Stopper interface{ Stop() }

// Profiler selects a profiling mode and where its output is written.
type Profiler struct {
	Mode  string
	Path  string
	Quiet bool
}

// Start begins profiling and returns the [Stopper] that ends it.
//
// An empty or unsupported Mode, or a build without the pprof tag, yields a
// no-op. Both Start and Stop are always safe to call.
func (p Profiler) Start() Stopper {
	if p.Mode == "" || !slices.Contains(Modes(), p.Mode) {
		return ignore{}
	}

	return start(p)
}

// Enabled reports whether profiling support was compiled in.
func Enabled() bool { return len(Modes()) > 0 }

type ignore struct{}

func (ignore) Stop() {}

package profile

// Tag is the build tag that enables profiling. It also names the
// subdirectory of the cache directory that receives profile output.
const Tag = "pprof"

// Profiler selects a profiling mode and output directory.
type Profiler struct {
	Mode  string
	Path  string
	Quiet bool
}

// Stopper ends a running profile and flushes its output.
type Stopper interface{ Stop() }

// Start begins profiling and returns a [Stopper] that must be called to
// write the profile. An empty or unknown Mode, or a binary built without
// the pprof tag, yields a no-op.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}

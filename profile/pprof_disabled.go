//go:build !pprof

package profile

import "iter"

// Enabled reports whether profiling support is compiled in.
const Enabled = false

// Modes yields nothing when built without the pprof tag.
func Modes() iter.Seq[string] {
	return func(func(string) bool) {}
}

func start(Profiler) Stopper { return ignore{} }

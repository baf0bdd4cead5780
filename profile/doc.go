// Package profile provides optional runtime profiling for marmoset.
//
// Profiling is backed by [github.com/pkg/profile] and is only compiled in
// when building with the pprof tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] yields nothing and [Profiler.Start] returns a
// no-op, so callers never need build tags of their own.
//
// Supported modes with the tag: allocs, block, clock, cpu, goroutine, heap,
// mem, mutex, thread, trace.
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/marmoset"}
//	defer p.Start().Stop()
//
// Profiling an expensive script:
//
//	marmoset --pprof-mode=cpu run fib.mar
//	go tool pprof -http=: ~/.cache/marmoset/pprof/cpu.pprof
package profile

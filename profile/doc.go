// Package profile starts optional runtime profiling for varsub.
//
// Profiling is built on [github.com/pkg/profile] and only compiled in with
// the "pprof" build tag. Without the tag [Modes] is empty and
// [Profiler.Start] always returns a no-op [Stopper].
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles"}
//	defer p.Start().Stop()
//
// Profile files are written to Path with names matching the mode, for
// example cpu.pprof or mem.pprof. Analyze them with go tool pprof:
//
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//
// The tagged build also imports [net/http/pprof], registering its handlers
// at /debug/pprof/ on the default mux.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

// Package profile provides optional runtime profiling for the cedar
// command.
//
// It integrates [github.com/pkg/profile] behind the "pprof" build tag. When
// built without the tag (the default), every operation is a no-op with zero
// runtime overhead, and [Modes] reports no available modes.
//
// With the tag, [Config.Start] enables one of the file-based profiling
// modes (cpu, mem, heap, allocs, block, mutex, goroutine, thread, clock,
// trace) and returns a handle whose Stop method flushes the profile to
// disk.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

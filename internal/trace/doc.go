// Package trace provides the event log for a wtsc session.
//
// The trace package records watch cycles, child process lifetimes and
// coordinator decisions so that a misbehaving re-run setup (a command that
// restarts in a loop, a child that never stops) can be diagnosed after the
// fact.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	tsc -w | wtsc --exec "node dist/main.js" --trace=- --trace-level=detail
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - NopTracer: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//   - RingTracer: Circular buffer for crash dumps
//   - MultiTracer: Combines multiple tracers
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelError: Only crash dumps
//   - LevelPhase: Session and cycle boundaries
//   - LevelDetail: Child process lifecycle
//   - LevelDebug: Everything including per-chunk events
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeSession: Top-level CLI operations
//   - ScopeCycle: One compile cycle of the watched compiler
//   - ScopeProcess: Re-launched child processes
//   - ScopeChunk: Individual reads from the compiler stream
//
// # Context Propagation
//
// Tracers are propagated through the session via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeCycle, "cycle", parentID)
//	defer span.End("")
package trace

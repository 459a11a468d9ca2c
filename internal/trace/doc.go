// Package trace records what the checker does and how long it takes.
//
// Tracing is enabled from the command line:
//
//	strata check --trace=- --trace-level=detail main.src
//
// StreamTracer writes every event as it happens; RingTracer keeps the last
// events in memory. Levels select scopes: phase records driver and pass
// spans, detail adds per-file events, debug records everything.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "bind", 0)
//	defer span.End("")
package trace

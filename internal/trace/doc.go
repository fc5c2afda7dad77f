// Package trace records what the tyir driver does while it runs.
//
// Events are spans (begin/end pairs) and instant points, tagged with a
// scope and the id of the run that produced them. A tracer is chosen once
// per command from the --trace flags and passed down through context:
//
//	ctx = trace.WithTracer(ctx, tr)
//	ctx = trace.WithRun(ctx, trace.NewRunID())
//
//	sp := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer sp.End("")
//
// Implementations: Nop, StreamTracer (text or NDJSON, written immediately),
// RingTracer (last N events in memory, dumped on demand) and MultiTracer.
package trace

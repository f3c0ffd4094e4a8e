// Package trace records what the checker is doing while it runs.
//
// It is the checker's logging layer: phases of a run, every document and,
// at the most verbose level, every detector pass emit begin/end events to a
// Tracer.
//
// # Usage
//
//	vesszo check --trace=- --trace-level=detail notes/*.txt
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fans events out to several tracers
//
// # Levels and scopes
//
// LevelPhase emits ScopeDriver and ScopePass events, LevelDetail adds
// ScopeDocument, LevelDebug adds ScopeDetector.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDocument, path, 0)
//	defer span.End("")
package trace

// Package trace records what the elision driver is doing while it runs.
//
// Events are grouped into spans. A span opens at one of four scopes:
//
//   - ScopeDriver: one CLI invocation (run, check, watch)
//   - ScopeCrate: one .hirpack input
//   - ScopePass: the elision pass over a crate, verification, encoding
//   - ScopeItem: a single function or impl block
//
// The level picks how deep the recording goes:
//
//	off < error < phase < detail < debug
//
// phase stops at ScopePass; detail and debug add the per-item spans.
//
// Tracers travel through the pipeline inside a context.Context:
//
//	ctx = trace.WithTracer(ctx, tr)
//	sp := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "elide", parent)
//	defer sp.End("")
//
// A RingTracer keeps the tail of the stream in memory so the driver can dump
// it when the pass reports an internal failure.
package trace

// Package trace records what cstool does while it lexes, parses and checks
// stylesheets and JSON documents.
//
// Tracing is switched on from the command line:
//
//	cstool check --trace=- --trace-level=file ./styles
//	cstool parse --trace=run.ndjson --trace-level=debug main.css
//
// Tracers:
//
//   - Nop: used when tracing is off, costs one interface call
//   - StreamTracer: writes every event as soon as it is emitted
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fans out to several tracers
//
// Scopes go from coarse to fine: ScopeDriver (one command run), ScopePhase
// (lex, parse, fix, cache), ScopeFile (one input file) and ScopeNode (one
// grammar rule, debug only). A Level decides which scopes get through.
//
// The tracer travels in a context.Context:
//
//	ctx = trace.WithTracer(ctx, tr)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "parse", 0)
//	defer span.End("")
package trace

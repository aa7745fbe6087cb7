// Package trace records what the linter is doing: spans for commands,
// passes and files, written as text or NDJSON.
//
// Enable it from the command line:
//
//	cairolint check --trace=- --trace-level=detail src/
//
// Levels gate scopes: phase shows driver and pass spans, detail adds one
// span per file, debug adds rule checkers. The tracer travels in a
// context.Context (WithTracer / FromContext); code without a tracer gets
// Nop and pays only an interface call.
package trace

// Package diag defines the diagnostic model shared by the lexer, parser,
// semantic pass and lint rules.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//     Lint codes (LNTxxxx) are a closed enumeration, one per rule; their Title
//     is the rule's allowed name used by #[allow(..)] and configuration.
//   - Message – human oriented text.
//   - Anchor – the syntax node the finding is attached to. Suppression walks
//     the ancestors of this node; fix generation starts from it.
//   - Primary span – the anchor's tight span (without trivia).
//   - Notes – optional secondary spans/messages.
//   - Fixes – optional suggested edits, attached for display only. Applying
//     edits to files is the job of internal/fix.
//
// # Emitting diagnostics
//
// Lexer and parser use a diag.Reporter so emission stays decoupled from
// storage. Lint checkers append anchored diagnostics to a Bag through
// lint.Context.
//
// Package diag does not perform formatting or IO. Rendering lives in
// internal/diagfmt.
package diag

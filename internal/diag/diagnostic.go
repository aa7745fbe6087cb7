package diag

import (
	"cairolint/internal/ast"
	"cairolint/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type FixEdit struct {
	Span    source.Span
	NewText string
}

type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is immutable once emitted. Anchor is the syntax node the finding
// is attached to; ast.NoNodeID for lexer/parser errors.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Anchor   ast.NodeID
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

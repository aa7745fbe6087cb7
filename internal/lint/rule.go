package lint

import (
	"strings"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
)

// Checker inspects one top-level item and reports findings through ctx.
type Checker func(ctx *Context, item ast.NodeID)

// FixFn rewrites the node a diagnostic is anchored to. It returns the node
// whose tight span is replaced and the replacement text; ok=false means the
// node shape is not one the fixer handles.
type FixFn func(tree *ast.Tree, node ast.NodeID) (target ast.NodeID, replacement string, ok bool)

// Rule describes one diagnostic a checker can emit.
type Rule struct {
	Code diag.Code
	// Name is the stable key used in `#[allow(name)]` and in the config.
	Name string
	// Message is the diagnostic text. A `{}` placeholder is filled by the
	// checker at report time.
	Message          string
	Severity         diag.Severity
	EnabledByDefault bool
	Fixer            FixFn
	Doc              string
}

// HasFixer reports whether the rule can produce an edit.
func (r Rule) HasFixer() bool { return r.Fixer != nil }

// Render substitutes args into the `{}` placeholders of the message.
func (r Rule) Render(args ...string) string {
	if len(args) == 0 {
		return r.Message
	}
	var sb strings.Builder
	msg := r.Message
	for _, a := range args {
		i := strings.Index(msg, "{}")
		if i < 0 {
			break
		}
		sb.WriteString(msg[:i])
		sb.WriteString(a)
		msg = msg[i+2:]
	}
	sb.WriteString(msg)
	return sb.String()
}

// matches reports whether msg could have been rendered from the template.
func (r Rule) matches(msg string) bool {
	prefix, suffix, templated := strings.Cut(r.Message, "{}")
	if !templated {
		return msg == r.Message
	}
	return len(msg) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(msg, prefix) && strings.HasSuffix(msg, suffix)
}

// Group is a set of rules sharing one checker.
type Group struct {
	Rules []Rule
	Check Checker
}

package lint

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
)

// Settings is the project-wide rule switch table.
type Settings interface {
	// Enabled returns the configured state of name, or def when unset.
	Enabled(name string, def bool) bool
}

// IsSuppressed reports whether d must be dropped: an `#[allow(<rule>)]` on
// the anchor or any ancestor, or the rule disabled in cfg (nil cfg keeps
// the rule defaults). Diagnostics without a rule are never suppressed.
func IsSuppressed(d diag.Diagnostic, tree *ast.Tree, reg *Registry, cfg Settings) bool {
	rule, ok := reg.Resolve(d.Code)
	if !ok {
		return false
	}
	if tree != nil {
		for node := range tree.Ancestors(d.Anchor) {
			if tree.HasAttrArg(node, "allow", rule.Name) {
				return true
			}
		}
	}
	if cfg == nil {
		return !rule.EnabledByDefault
	}
	return !cfg.Enabled(rule.Name, rule.EnabledByDefault)
}

// Filter returns the diagnostics that are not suppressed, in input order.
func Filter(diags []diag.Diagnostic, tree *ast.Tree, reg *Registry, cfg Settings) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if IsSuppressed(d, tree, reg, cfg) {
			continue
		}
		out = append(out, d)
	}
	return out
}

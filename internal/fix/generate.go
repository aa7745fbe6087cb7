package fix

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/lint"
)

// IsImportDiagnostic reports whether d belongs to the import pruner rather
// than to a rule fixer.
func IsImportDiagnostic(d diag.Diagnostic) bool {
	return d.Code == diag.SemaUnusedImport
}

// Generate runs the fixer of d's rule and returns the edit over the tight
// span of the node the fixer rewrote. Rules without a fixer, import
// diagnostics and fixers that decline produce nothing.
func Generate(tree *ast.Tree, reg *lint.Registry, d diag.Diagnostic) (Edit, bool) {
	if tree == nil || IsImportDiagnostic(d) || !d.Anchor.IsValid() {
		return Edit{}, false
	}
	rule, ok := reg.Resolve(d.Code)
	if !ok || !rule.HasFixer() {
		return Edit{}, false
	}
	target, replacement, ok := rule.Fixer(tree, d.Anchor)
	if !ok {
		return Edit{}, false
	}
	return spanEdit(tree.Span(target), replacement), true
}

// Plan collects every edit for one file: rule fixes plus pruned imports.
func Plan(tree *ast.Tree, reg *lint.Registry, diags []diag.Diagnostic) []Edit {
	var fixable, imports []diag.Diagnostic
	for _, d := range diags {
		if IsImportDiagnostic(d) {
			imports = append(imports, d)
		} else {
			fixable = append(fixable, d)
		}
	}
	var out []Edit
	for _, d := range fixable {
		if e, ok := Generate(tree, reg, d); ok {
			out = append(out, e)
		}
	}
	return append(out, PruneImports(tree, imports)...)
}

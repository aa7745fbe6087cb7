package fix

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/lint"
	"cairolint/internal/source"
)

// Suggest attaches each diagnostic's own edit as a diag.Fix so that
// renderers can show it without applying anything. Edits are computed per
// diagnostic, so two suggestions may overlap; FixFile resolves the set.
func Suggest(tree *ast.Tree, reg *lint.Registry, diags []diag.Diagnostic) []diag.Diagnostic {
	if tree == nil || tree.File == nil {
		return diags
	}
	out := make([]diag.Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = d
		edits := Plan(tree, reg, []diag.Diagnostic{d})
		if len(edits) == 0 {
			continue
		}
		fixEdits := make([]diag.FixEdit, len(edits))
		for j, e := range edits {
			fixEdits[j] = diag.FixEdit{
				Span:    source.Span{File: tree.File.ID, Start: e.Start, End: e.End},
				NewText: e.Replacement,
			}
		}
		out[i] = d.WithFix(suggestTitle(d), fixEdits...)
	}
	return out
}

func suggestTitle(d diag.Diagnostic) string {
	if IsImportDiagnostic(d) {
		return "remove unused import"
	}
	return "apply `" + d.Code.Title() + "` fix"
}

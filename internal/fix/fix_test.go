package fix

import (
	"testing"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/lint"
	"cairolint/internal/parser"
	"cairolint/internal/rules"
	"cairolint/internal/sema"
	"cairolint/internal/source"
)

// analyze разбирает src и прогоняет все правила со стандартными настройками.
func analyze(t *testing.T, path, src string) (*ast.Tree, []diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.Add(path, []byte(src), 0))
	bag := diag.NewBag(100)
	res := parser.Parse(file, diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %v", bag.Items())
	}
	facts := sema.Check(res.Tree, sema.Options{})
	return res.Tree, lint.Run(res.Tree, &facts, rules.Registry(), nil)
}

// applyAll планирует и применяет правки, требуя, чтобы они были совместимы.
func applyAll(t *testing.T, tree *ast.Tree, diags []diag.Diagnostic) string {
	t.Helper()
	edits, ok := Resolve(Plan(tree, rules.Registry(), diags))
	if !ok {
		t.Fatalf("edits conflict: %+v", Plan(tree, rules.Registry(), diags))
	}
	return ApplyEdits(string(tree.File.Content), edits)
}

func codes(diags []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

package rules

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/lint"
)

// checkUnusedImports reports the import leaves sema found unused, one
// diagnostic per leaf so that the pruner can see the whole declaration.
func checkUnusedImports(ctx *lint.Context, item ast.NodeID) {
	if ctx.Facts == nil {
		return
	}
	tree := ctx.Tree
	for _, leaf := range ctx.Facts.Unused {
		if !tree.IsAncestor(item, leaf) {
			continue
		}
		imp, ok := ctx.Facts.ImportOf(leaf)
		if !ok {
			continue
		}
		ctx.Report(diag.SemaUnusedImport, leaf, imp.Path)
	}
}

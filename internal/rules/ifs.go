package rules

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/lint"
)

// checkIfsSameCond: условие `if` повторяется дальше в цепочке else-if.
// Условия с вызовами пропускаем, повторный вызов может дать другой результат.
func checkIfsSameCond(ctx *lint.Context, item ast.NodeID) {
	tree := ctx.Tree
	for _, id := range tree.DescendantsOfKind(item, ast.ExprIf) {
		cond, _, els := ifParts(tree, id)
		if hasSideEffects(tree, cond) {
			continue
		}
		text := tree.TextWithoutTrivia(cond)
		for tree.Kind(els) == ast.ExprIf {
			next, _, rest := ifParts(tree, els)
			if !hasSideEffects(tree, next) && tree.TextWithoutTrivia(next) == text {
				ctx.Report(diag.LintIfsSameCond, id)
				break
			}
			els = rest
		}
	}
}

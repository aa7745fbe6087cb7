package rules

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/lint"
	"cairolint/internal/token"
)

// checkRedundantOp: `x + 0`, `0 + x`, `x - 0`, `x * 1`, `1 * x`, `x / 1`.
func checkRedundantOp(ctx *lint.Context, item ast.NodeID) {
	tree := ctx.Tree
	for _, id := range tree.DescendantsOfKind(item, ast.ExprBinary) {
		op, lhs, rhs, _ := binary(tree, id)
		var hit bool
		switch op {
		case token.Plus:
			hit = isIntLiteral(tree, lhs, 0) || isIntLiteral(tree, rhs, 0)
		case token.Minus:
			hit = isIntLiteral(tree, rhs, 0)
		case token.Star:
			hit = isIntLiteral(tree, lhs, 1) || isIntLiteral(tree, rhs, 1)
		case token.Slash:
			hit = isIntLiteral(tree, rhs, 1)
		}
		if hit {
			ctx.Report(diag.LintRedundantOp, id)
		}
	}
}

// checkErasingOp: `x * 0`, `0 * x`, `x & 0`, `0 & x`, `0 / x`.
func checkErasingOp(ctx *lint.Context, item ast.NodeID) {
	tree := ctx.Tree
	for _, id := range tree.DescendantsOfKind(item, ast.ExprBinary) {
		op, lhs, rhs, _ := binary(tree, id)
		var hit bool
		switch op {
		case token.Star, token.Amp:
			hit = isIntLiteral(tree, lhs, 0) || isIntLiteral(tree, rhs, 0)
		case token.Slash:
			hit = isIntLiteral(tree, lhs, 0)
		}
		if hit {
			ctx.Report(diag.LintErasingOp, id)
		}
	}
}

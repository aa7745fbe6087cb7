package rules

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/lint"
	"cairolint/internal/token"
)

// checkIntOpOne: `x >= y + 1`, `x - 1 >= y`, `x + 1 <= y`, `x <= y - 1`.
func checkIntOpOne(ctx *lint.Context, item ast.NodeID) {
	tree := ctx.Tree
	for _, id := range tree.DescendantsOfKind(item, ast.ExprBinary) {
		op, lhs, rhs, _ := binary(tree, id)
		switch op {
		case token.GtEq:
			if addsOrSubsOne(tree, rhs, token.Plus) {
				ctx.Report(diag.LintIntGePlusOne, id)
			} else if addsOrSubsOne(tree, lhs, token.Minus) {
				ctx.Report(diag.LintIntGeMinOne, id)
			}
		case token.LtEq:
			if addsOrSubsOne(tree, lhs, token.Plus) {
				ctx.Report(diag.LintIntLePlusOne, id)
			} else if addsOrSubsOne(tree, rhs, token.Minus) {
				ctx.Report(diag.LintIntLeMinOne, id)
			}
		}
	}
}

// addsOrSubsOne: id is `<place> op 1`.
func addsOrSubsOne(tree *ast.Tree, id ast.NodeID, want token.Kind) bool {
	op, lhs, rhs, ok := binary(tree, id)
	return ok && op == want && isPlace(tree, lhs) && isIntLiteral(tree, rhs, 1)
}

// `x >= y + 1` -> `x > y`
func fixIntGePlusOne(tree *ast.Tree, node ast.NodeID) (ast.NodeID, string, bool) {
	_, lhs, rhs, ok := binary(tree, node)
	if !ok {
		return ast.NoNodeID, "", false
	}
	_, y, _, ok := binary(tree, rhs)
	if !ok {
		return ast.NoNodeID, "", false
	}
	return node, tree.TextWithoutTrivia(lhs) + " > " + tree.TextWithoutTrivia(y), true
}

// `x - 1 >= y` -> `x > y`
func fixIntGeMinOne(tree *ast.Tree, node ast.NodeID) (ast.NodeID, string, bool) {
	_, lhs, rhs, ok := binary(tree, node)
	if !ok {
		return ast.NoNodeID, "", false
	}
	_, x, _, ok := binary(tree, lhs)
	if !ok {
		return ast.NoNodeID, "", false
	}
	return node, tree.TextWithoutTrivia(x) + " > " + tree.TextWithoutTrivia(rhs), true
}

// `x + 1 <= y` -> `x < y`
func fixIntLePlusOne(tree *ast.Tree, node ast.NodeID) (ast.NodeID, string, bool) {
	_, lhs, rhs, ok := binary(tree, node)
	if !ok {
		return ast.NoNodeID, "", false
	}
	_, x, _, ok := binary(tree, lhs)
	if !ok {
		return ast.NoNodeID, "", false
	}
	return node, tree.TextWithoutTrivia(x) + " < " + tree.TextWithoutTrivia(rhs), true
}

// `x <= y - 1` -> `x < y`
func fixIntLeMinOne(tree *ast.Tree, node ast.NodeID) (ast.NodeID, string, bool) {
	_, lhs, rhs, ok := binary(tree, node)
	if !ok {
		return ast.NoNodeID, "", false
	}
	_, y, _, ok := binary(tree, rhs)
	if !ok {
		return ast.NoNodeID, "", false
	}
	return node, tree.TextWithoutTrivia(lhs) + " < " + tree.TextWithoutTrivia(y), true
}

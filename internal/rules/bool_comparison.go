package rules

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/lint"
	"cairolint/internal/token"
)

// checkBoolComparison: `x == true`, `false != y` ...
func checkBoolComparison(ctx *lint.Context, item ast.NodeID) {
	tree := ctx.Tree
	for _, id := range tree.DescendantsOfKind(item, ast.ExprBinary) {
		op, lhs, rhs, _ := binary(tree, id)
		if op != token.EqEq && op != token.BangEq {
			continue
		}
		if tree.Kind(lhs) == ast.ExprBool || tree.Kind(rhs) == ast.ExprBool {
			ctx.Report(diag.LintBoolComparison, id)
		}
	}
}

func fixBoolComparison(tree *ast.Tree, node ast.NodeID) (ast.NodeID, string, bool) {
	op, lhs, rhs, ok := binary(tree, node)
	if !ok {
		return ast.NoNodeID, "", false
	}
	lit, other := lhs, rhs
	if tree.Kind(lit) != ast.ExprBool {
		lit, other = rhs, lhs
	}
	if tree.Kind(lit) != ast.ExprBool {
		return ast.NoNodeID, "", false
	}
	// x == true -> x; x == false -> !x; != инвертирует
	positive := tree.Node(lit).Name == "true"
	if op == token.BangEq {
		positive = !positive
	}
	text := tree.TextWithoutTrivia(other)
	if positive {
		return node, text, true
	}
	return node, negate(tree, other), true
}

// negate строит отрицание выражения id с минимумом скобок.
func negate(tree *ast.Tree, id ast.NodeID) string {
	n := tree.Node(id)
	switch n.Kind {
	case ast.ExprUnary:
		if n.Op == token.Bang {
			return tree.TextWithoutTrivia(tree.Children(id)[0])
		}
	case ast.ExprBinary:
		op, lhs, rhs, _ := binary(tree, id)
		if inv := negateComparison(op); inv != token.Invalid {
			return tree.TextWithoutTrivia(lhs) + " " + inv.String() + " " + tree.TextWithoutTrivia(rhs)
		}
		return "!(" + tree.TextWithoutTrivia(id) + ")"
	case ast.ExprBool:
		if n.Name == "true" {
			return "false"
		}
		return "true"
	}
	return "!" + tree.TextWithoutTrivia(id)
}

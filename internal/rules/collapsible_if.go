package rules

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/lint"
)

// checkCollapsibleIf: `if a { if b { .. } }` без else на обоих уровнях.
func checkCollapsibleIf(ctx *lint.Context, item ast.NodeID) {
	tree := ctx.Tree
	for _, id := range tree.DescendantsOfKind(item, ast.ExprIf) {
		if _, ok := collapsibleInner(tree, id); ok {
			ctx.Report(diag.LintCollapsibleIf, id)
		}
	}
}

// collapsibleInner returns the inner `if` of an outer `if` whose block holds
// nothing else.
func collapsibleInner(tree *ast.Tree, outer ast.NodeID) (ast.NodeID, bool) {
	_, block, els := ifParts(tree, outer)
	if els.IsValid() || tree.Kind(tree.Parent(outer)) == ast.ExprIf {
		// else-if ветка — часть цепочки, её не сворачиваем
		return ast.NoNodeID, false
	}
	stmts := tree.Children(block)
	if len(stmts) != 1 || len(tree.Attributes(stmts[0])) > 0 {
		return ast.NoNodeID, false
	}
	inner := stmtExpr(tree, stmts[0])
	if tree.Kind(inner) != ast.ExprIf {
		return ast.NoNodeID, false
	}
	if _, _, innerElse := ifParts(tree, inner); innerElse.IsValid() {
		return ast.NoNodeID, false
	}
	return inner, true
}

// `if a { if b { body } }` -> `if (a) && (b) { body }`
func fixCollapsibleIf(tree *ast.Tree, node ast.NodeID) (ast.NodeID, string, bool) {
	inner, ok := collapsibleInner(tree, node)
	if !ok {
		return ast.NoNodeID, "", false
	}
	outerCond, _, _ := ifParts(tree, node)
	innerCond, innerBlock, _ := ifParts(tree, inner)
	body := dedent(tree.TextWithoutTrivia(innerBlock), 4)
	return node, "if (" + tree.TextWithoutTrivia(outerCond) + ") && (" + tree.TextWithoutTrivia(innerCond) + ") " + body, true
}

// checkCollapsibleIfElse: `else { if b { .. } }`, где вложенный if
// единственный оператор ветки.
func checkCollapsibleIfElse(ctx *lint.Context, item ast.NodeID) {
	tree := ctx.Tree
	for _, id := range tree.DescendantsOfKind(item, ast.ExprIf) {
		if _, _, ok := elseOnlyIf(tree, id); ok {
			ctx.Report(diag.LintCollapsibleIfElse, id)
		}
	}
}

func elseOnlyIf(tree *ast.Tree, outer ast.NodeID) (els, inner ast.NodeID, ok bool) {
	_, _, els = ifParts(tree, outer)
	if tree.Kind(els) != ast.Block {
		return ast.NoNodeID, ast.NoNodeID, false
	}
	stmts := tree.Children(els)
	if len(stmts) != 1 || len(tree.Attributes(stmts[0])) > 0 {
		return ast.NoNodeID, ast.NoNodeID, false
	}
	inner = stmtExpr(tree, stmts[0])
	if tree.Kind(inner) != ast.ExprIf {
		return ast.NoNodeID, ast.NoNodeID, false
	}
	return els, inner, true
}

// `else { if b { .. } else { .. } }` -> `else if b { .. } else { .. }`;
// заменяется только блок после else.
func fixCollapsibleIfElse(tree *ast.Tree, node ast.NodeID) (ast.NodeID, string, bool) {
	els, inner, ok := elseOnlyIf(tree, node)
	if !ok {
		return ast.NoNodeID, "", false
	}
	return els, dedent(tree.TextWithoutTrivia(inner), 4), true
}

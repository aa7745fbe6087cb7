package rules

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/lint"
)

// checkDoubleParens: `((x))` и `((a, b))`. Сообщаем только о самой внешней
// паре, чтобы правки вложенных скобок не пересекались.
func checkDoubleParens(ctx *lint.Context, item ast.NodeID) {
	tree := ctx.Tree
	for _, id := range tree.DescendantsOfKind(item, ast.ExprParen) {
		if tree.Kind(tree.Parent(id)) == ast.ExprParen {
			continue
		}
		switch tree.Kind(tree.Children(id)[0]) {
		case ast.ExprParen, ast.ExprTuple:
			ctx.Report(diag.LintDoubleParens, id)
		}
	}
}

func fixDoubleParens(tree *ast.Tree, node ast.NodeID) (ast.NodeID, string, bool) {
	if tree.Kind(node) != ast.ExprParen {
		return ast.NoNodeID, "", false
	}
	return node, tree.TextWithoutTrivia(unparen(tree, node)), true
}

// checkBreakUnit: `break ();`
func checkBreakUnit(ctx *lint.Context, item ast.NodeID) {
	tree := ctx.Tree
	for _, id := range tree.DescendantsOfKind(item, ast.StmtBreak) {
		value := tree.Child(id, 0)
		if tree.Kind(value) == ast.ExprTuple && len(tree.Children(value)) == 0 {
			ctx.Report(diag.LintBreakUnit, id)
		}
	}
}

func fixBreakUnit(tree *ast.Tree, node ast.NodeID) (ast.NodeID, string, bool) {
	if tree.Kind(node) != ast.StmtBreak {
		return ast.NoNodeID, "", false
	}
	value := tree.Child(node, 0)
	if !value.IsValid() {
		return ast.NoNodeID, "", false
	}
	// атрибуты оператора остаются на месте вместе с отступом после них
	start := tree.Span(node).Start
	if attrs := tree.Attributes(node); len(attrs) > 0 {
		start = tree.Span(attrs[len(attrs)-1]).End
		content := tree.File.Content
		for int(start) < len(content) && isSpace(content[start]) {
			start++
		}
	}
	prefix := tree.File.Slice(tree.Span(node).Start, start)
	return node, prefix + "break;", true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

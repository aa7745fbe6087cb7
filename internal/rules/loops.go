package rules

import (
	"strings"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/lint"
)

// checkLoopForWhile: `loop` с `if cond { break; }` внутри. Один отчёт на цикл.
func checkLoopForWhile(ctx *lint.Context, item ast.NodeID) {
	tree := ctx.Tree
	for _, loop := range tree.DescendantsOfKind(item, ast.ExprLoop) {
		for _, stmt := range tree.Children(tree.Child(loop, 0)) {
			if breaksFirst(tree, stmtExpr(tree, stmt)) {
				ctx.Report(diag.LintLoopForWhile, loop)
				break
			}
		}
	}
}

// breaksFirst reports whether id is an `if` whose block starts with `break`.
func breaksFirst(tree *ast.Tree, id ast.NodeID) bool {
	if tree.Kind(id) != ast.ExprIf {
		return false
	}
	_, block, _ := ifParts(tree, id)
	stmts := tree.Children(block)
	return len(stmts) > 0 && tree.Kind(stmts[0]) == ast.StmtBreak
}

// fixLoopForWhile rewrites
//
//	loop {
//	    if x > 5 {
//	        break;
//	    }
//	    x += 1;
//	}
//
// as `while x <= 5 { x += 1; }`. Only a leading `if cond { break; }`
// without else is rewritten.
func fixLoopForWhile(tree *ast.Tree, node ast.NodeID) (ast.NodeID, string, bool) {
	if tree.Kind(node) != ast.ExprLoop {
		return ast.NoNodeID, "", false
	}
	stmts := tree.Children(tree.Child(node, 0))
	if len(stmts) == 0 || len(tree.Attributes(stmts[0])) > 0 {
		return ast.NoNodeID, "", false
	}
	guard := stmtExpr(tree, stmts[0])
	if !breaksFirst(tree, guard) {
		return ast.NoNodeID, "", false
	}
	cond, block, els := ifParts(tree, guard)
	body := tree.Children(block)
	if els.IsValid() || len(body) != 1 || tree.Child(body[0], 0).IsValid() || len(tree.Attributes(body[0])) > 0 {
		return ast.NoNodeID, "", false
	}

	indent := lineIndent(tree, node)
	var b strings.Builder
	b.WriteString("while ")
	b.WriteString(negate(tree, cond))
	b.WriteString(" {\n")
	for _, stmt := range stmts[1:] {
		b.WriteString(indent)
		b.WriteString("    ")
		b.WriteString(tree.TextWithoutTrivia(stmt))
		b.WriteString("\n")
	}
	b.WriteString(indent)
	b.WriteString("}")
	return node, b.String(), true
}

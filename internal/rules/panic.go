package rules

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/lint"
)

var panicPaths = map[string]bool{
	"panic":               true,
	"panics::panic":       true,
	"core::panics::panic": true,
}

// checkPanic: `panic!(..)` и прямые вызовы panic.
func checkPanic(ctx *lint.Context, item ast.NodeID) {
	tree := ctx.Tree
	for d := range tree.Descendants(item) {
		n := tree.Node(d)
		switch n.Kind {
		case ast.ExprMacro:
			if n.Name == "panic" {
				ctx.Report(diag.LintPanic, d)
			}
		case ast.ExprCall:
			callee := tree.Children(d)[0]
			if tree.Kind(callee) == ast.ExprPath && panicPaths[tree.Node(callee).Name] {
				ctx.Report(diag.LintPanic, d)
			}
		}
	}
}

package rules

import (
	"strings"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/lint"
)

// checkDuplicateUnderscoreArgs: `fn foo(test: u32, _test: u32)`.
func checkDuplicateUnderscoreArgs(ctx *lint.Context, item ast.NodeID) {
	tree := ctx.Tree
	for _, fn := range nodesOfKind(tree, item, ast.ItemFn) {
		seen := make(map[string]struct{})
		for _, param := range tree.ChildrenOfKind(fn, ast.Param) {
			name := strings.TrimPrefix(tree.Node(param).Name, "_")
			if _, dup := seen[name]; dup {
				ctx.Report(diag.LintDuplicateUnderscoreArgs, param)
				continue
			}
			seen[name] = struct{}{}
		}
	}
}

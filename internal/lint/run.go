package lint

import (
	"fmt"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/sema"
)

// Run dispatches every checker over tree, flags unknown `allow` arguments
// and returns the diagnostics that survive suppression.
func Run(tree *ast.Tree, facts *sema.Result, reg *Registry, cfg Settings) []diag.Diagnostic {
	ctx := NewContext(tree, facts)
	reg.Dispatch(ctx)
	kept := Filter(ctx.Diagnostics(), tree, reg, cfg)
	return append(kept, CheckAllowNames(tree, reg)...)
}

// CheckAllowNames warns about `#[allow(x)]` arguments that name no rule.
func CheckAllowNames(tree *ast.Tree, reg *Registry) []diag.Diagnostic {
	if tree == nil {
		return nil
	}
	var out []diag.Diagnostic
	for attr := range tree.Descendants(tree.Root()) {
		n := tree.Node(attr)
		if n.Kind != ast.Attribute || n.Name != "allow" {
			continue
		}
		for _, arg := range tree.Children(attr) {
			name := tree.TextWithoutTrivia(arg)
			if tree.Kind(arg) == ast.ExprPath && reg.IsAllowedName(name) {
				continue
			}
			out = append(out, diag.NewAnchored(diag.SevWarning, diag.SemaUnknownAllowArg, arg, tree.Span(arg),
				fmt.Sprintf("Unknown lint `%s` in allow attribute.", name)))
		}
	}
	return out
}

package lint

import (
	"fmt"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/sema"
)

// Context carries one file through the checkers.
type Context struct {
	Tree  *ast.Tree
	Facts *sema.Result
	bag   *diag.Bag
	reg   *Registry
}

// NewContext prepares a context for tree. facts may be nil when no checker
// needs semantic information.
func NewContext(tree *ast.Tree, facts *sema.Result) *Context {
	return &Context{Tree: tree, Facts: facts, bag: diag.NewBag(0)}
}

// Report emits the diagnostic of rule code anchored at node. args fill the
// `{}` placeholders of the rule message. Reporting a code that has no rule
// is a checker bug and panics.
func (c *Context) Report(code diag.Code, anchor ast.NodeID, args ...string) {
	rule, ok := c.reg.Resolve(code)
	if !ok {
		panic(fmt.Errorf("lint: %s reported without a registered rule", code.ID()))
	}
	c.bag.Add(diag.NewAnchored(rule.Severity, code, anchor, c.Tree.Span(anchor), rule.Render(args...)))
}

// Text returns the source of id without surrounding trivia.
func (c *Context) Text(id ast.NodeID) string {
	return c.Tree.TextWithoutTrivia(id)
}

// Diagnostics returns everything reported so far in report order.
func (c *Context) Diagnostics() []diag.Diagnostic {
	return c.bag.Items()
}

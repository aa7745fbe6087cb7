package parser

import (
	"fmt"
	"strings"
	"testing"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/source"
	"cairolint/internal/testkit"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// parseSource разбирает input и возвращает дерево вместе с диагностиками.
func parseSource(t *testing.T, input string) (*ast.Tree, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.cairo", []byte(input)))
	bag := diag.NewBag(100)
	res := Parse(file, diag.BagReporter{Bag: bag})
	return res.Tree, bag
}

// parseClean требует разбор без ошибок и проверяет инварианты дерева.
func parseClean(t *testing.T, input string) *ast.Tree {
	t.Helper()
	tree, bag := parseSource(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %s", input, diagnosticsSummary(bag))
	}
	if err := testkit.CheckTreeInvariants(tree, tree.File); err != nil {
		t.Fatalf("tree invariants for %q: %v", input, err)
	}
	return tree
}

// firstOfKind находит первый узел вида k в пре-порядке.
func firstOfKind(t *testing.T, tree *ast.Tree, k ast.Kind) ast.NodeID {
	t.Helper()
	for id := range tree.Descendants(tree.Root()) {
		if tree.Kind(id) == k {
			return id
		}
	}
	t.Fatalf("no %s node in tree", k)
	return ast.NoNodeID
}

// fnBody возвращает операторы тела первой функции.
func fnBody(t *testing.T, tree *ast.Tree) []ast.NodeID {
	t.Helper()
	fn := firstOfKind(t, tree, ast.ItemFn)
	block := tree.FirstChildOfKind(fn, ast.Block)
	if !block.IsValid() {
		t.Fatal("function has no body")
	}
	return tree.Children(block)
}

// sexpr печатает выражение со скобками, чтобы проверять приоритеты.
func sexpr(tree *ast.Tree, id ast.NodeID) string {
	n := tree.Node(id)
	switch n.Kind {
	case ast.ExprBinary:
		kids := tree.Children(id)
		return "(" + sexpr(tree, kids[0]) + " " + n.Op.String() + " " + sexpr(tree, kids[1]) + ")"
	case ast.ExprUnary:
		return "(" + n.Op.String() + sexpr(tree, tree.Children(id)[0]) + ")"
	case ast.ExprParen:
		return sexpr(tree, tree.Children(id)[0])
	default:
		return tree.TextWithoutTrivia(id)
	}
}

package parser

import (
	"testing"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
)

func TestFnItem(t *testing.T) {
	tree := parseClean(t, "fn add(ref a: u32, mut b: @Array<felt252>) -> (u32, bool) {\n    a\n}\n")
	fn := tree.Items()[0]
	n := tree.Node(fn)
	if n.Kind != ast.ItemFn || n.Name != "add" {
		t.Fatalf("got %s %q", n.Kind, n.Name)
	}
	params := tree.ChildrenOfKind(fn, ast.Param)
	if len(params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(params))
	}
	if p := tree.Node(params[0]); p.Name != "a" || !p.Has(ast.FlagRef) {
		t.Fatalf("param 0 = %q flags=%v", p.Name, p.Flags)
	}
	if p := tree.Node(params[1]); p.Name != "b" || !p.Has(ast.FlagMut) {
		t.Fatalf("param 1 = %q flags=%v", p.Name, p.Flags)
	}
	snap := tree.Children(params[1])[0]
	if tree.Kind(snap) != ast.TypeSnapshot {
		t.Fatalf("param 1 type = %s", tree.Kind(snap))
	}
	arr := tree.Children(snap)[0]
	if tree.Node(arr).Name != "Array" || len(tree.Children(arr)) != 1 {
		t.Fatalf("generic type = %q with %d args", tree.Node(arr).Name, len(tree.Children(arr)))
	}
	if ret := tree.FirstChildOfKind(fn, ast.TypeTuple); !ret.IsValid() {
		t.Fatal("return tuple type missing")
	}
	// хвостовое выражение без ';'
	body := fnBody(t, tree)
	if len(body) != 1 || tree.Node(body[0]).Has(ast.FlagSemi) {
		t.Fatal("expected one tail statement without semicolon")
	}
}

func TestEnumItem(t *testing.T) {
	tree := parseClean(t, "#[derive(Drop)]\nenum Color {\n    Red,\n    Green: (),\n    Custom: u32,\n}\n")
	enum := tree.Items()[0]
	if !tree.HasAttr(enum, "derive") {
		t.Fatal("derive attribute lost")
	}
	variants := tree.ChildrenOfKind(enum, ast.Variant)
	if len(variants) != 3 {
		t.Fatalf("expected 3 variants, got %d", len(variants))
	}
	if len(tree.Children(variants[0])) != 0 {
		t.Fatal("Red has no type")
	}
	unit := tree.Children(variants[1])[0]
	if tree.Kind(unit) != ast.TypeTuple || len(tree.Children(unit)) != 0 {
		t.Fatal("Green must carry the unit type")
	}
	if got := tree.TextWithoutTrivia(variants[2]); got != "Custom: u32" {
		t.Fatalf("variant text = %q", got)
	}
}

func TestConstAndModItems(t *testing.T) {
	tree := parseClean(t, "const MAX: u32 = 10;\nmod utils;\nmod inner {\n    fn f() {}\n}\n")
	items := tree.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if tree.Kind(items[0]) != ast.ItemConst || tree.Node(items[0]).Name != "MAX" {
		t.Fatal("const item")
	}
	if tree.Node(items[1]).Has(ast.FlagInline) {
		t.Fatal("mod utils; is not inline")
	}
	inner := tree.Node(items[2])
	if !inner.Has(ast.FlagInline) || len(tree.ChildrenOfKind(items[2], ast.ItemFn)) != 1 {
		t.Fatal("inline module must contain fn f")
	}
}

func TestItemSpansAndTrivia(t *testing.T) {
	src := "// header\nfn a() {} // tail\n\nfn b() {}\n"
	tree := parseClean(t, src)
	items := tree.Items()
	a, b := tree.Node(items[0]), tree.Node(items[1])

	if got := src[a.Span.Start:a.Span.End]; got != "fn a() {}" {
		t.Fatalf("tight span of a = %q", got)
	}
	// leading comment принадлежит a, хвостовой комментарий с '\n' — тоже a
	if got := tree.Text(items[0]); got != "// header\nfn a() {} // tail\n" {
		t.Fatalf("full text of a = %q", got)
	}
	// пустая строка уходит в leading trivia b
	if got := tree.Text(items[1]); got != "\nfn b() {}\n" {
		t.Fatalf("full text of b = %q", got)
	}
	if b.FullSpan.Start != a.FullSpan.End {
		t.Fatal("full spans of adjacent items must tile")
	}
}

func TestTopLevelRecovery(t *testing.T) {
	tree, bag := parseSource(t, "let x = 1;\nfn ok() {}\n")
	if len(bag.Items()) == 0 || bag.Items()[0].Code != diag.SynUnexpectedTopLevel {
		t.Fatalf("expected unexpected top-level error, got %s", diagnosticsSummary(bag))
	}
	items := tree.Items()
	if len(items) != 1 || tree.Node(items[0]).Name != "ok" {
		t.Fatalf("fn ok must survive, items=%v", items)
	}
}

func TestEmptyInputAndErrorLimit(t *testing.T) {
	tree, bag := parseSource(t, "")
	if bag.Len() != 0 || len(tree.Items()) != 0 {
		t.Fatalf("empty input must parse cleanly: %s", diagnosticsSummary(bag))
	}
	opts := Options{MaxErrors: 1, CurrentErrors: 1}
	if !opts.Enough() {
		t.Fatal("Enough must report the limit")
	}
}

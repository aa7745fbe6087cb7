package lint

import (
	"testing"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/parser"
	"cairolint/internal/source"
)

func parseTree(t *testing.T, src string) *ast.Tree {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.cairo", []byte(src)))
	bag := diag.NewBag(100)
	res := parser.Parse(file, diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %v", bag.Items())
	}
	return res.Tree
}

type settings map[string]bool

func (s settings) Enabled(name string, def bool) bool {
	if v, ok := s[name]; ok {
		return v
	}
	return def
}

// reportParens сообщает о каждом ExprParen.
func reportParens(ctx *Context, item ast.NodeID) {
	for _, id := range ctx.Tree.DescendantsOfKind(item, ast.ExprParen) {
		ctx.Report(diag.LintDoubleParens, id)
	}
}

func parensRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry(
		Group{Rules: []Rule{rule(diag.LintDoubleParens, "double_parens", "parens")}, Check: reportParens},
		Group{Rules: []Rule{{Code: diag.LintPanic, Name: "panic", Message: "panic", EnabledByDefault: false}}, Check: noopCheck},
	)
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestSuppressionByAncestorAttribute(t *testing.T) {
	src := `#[allow(double_parens)]
fn allowed() {
    let _a = (1);
}

fn plain() {
    #[allow(double_parens)]
    let _b = (2);
    let _c = (3);
}

#[allow(panic)]
fn other() {
    let _d = (4);
}
`
	tree := parseTree(t, src)
	reg := parensRegistry(t)
	got := Run(tree, nil, reg, nil)

	var texts []string
	for _, d := range got {
		texts = append(texts, tree.TextWithoutTrivia(d.Anchor))
	}
	if len(texts) != 2 || texts[0] != "(3)" || texts[1] != "(4)" {
		t.Fatalf("kept = %q, want [(3) (4)]", texts)
	}
}

func TestSuppressionByConfig(t *testing.T) {
	tree := parseTree(t, "fn f() { let _a = (1); }")
	reg := parensRegistry(t)

	if got := Run(tree, nil, reg, settings{"double_parens": false}); len(got) != 0 {
		t.Fatalf("disabled rule must be filtered, got %d", len(got))
	}
	if got := Run(tree, nil, reg, settings{}); len(got) != 1 {
		t.Fatalf("default-enabled rule must be kept, got %d", len(got))
	}

	// правило выключено по умолчанию, но явно включено в конфиге
	d := diag.NewAnchored(diag.SevWarning, diag.LintPanic, tree.Items()[0], tree.Span(tree.Items()[0]), "panic")
	if !IsSuppressed(d, tree, reg, nil) {
		t.Fatal("disabled-by-default rule must be suppressed without config")
	}
	if IsSuppressed(d, tree, reg, settings{"panic": true}) {
		t.Fatal("explicit config must re-enable the rule")
	}
}

func TestDiagnosticsWithoutRuleAreKept(t *testing.T) {
	tree := parseTree(t, "#[allow(double_parens)]\nfn f() {}")
	reg := parensRegistry(t)
	d := diag.NewError(diag.SynExpectSemicolon, tree.Span(tree.Items()[0]), "expected ';'")
	if IsSuppressed(d, tree, reg, settings{"double_parens": false}) {
		t.Fatal("syntax errors are never suppressed")
	}
}

func TestUnknownAllowNames(t *testing.T) {
	tree := parseTree(t, "#[allow(double_parens, no_such_lint)]\nfn f() {}")
	reg := parensRegistry(t)
	got := CheckAllowNames(tree, reg)
	if len(got) != 1 || got[0].Code != diag.SemaUnknownAllowArg {
		t.Fatalf("unknown allow diagnostics = %+v", got)
	}
	if got[0].Message != "Unknown lint `no_such_lint` in allow attribute." {
		t.Fatalf("message = %q", got[0].Message)
	}
}

package parser

import (
	"testing"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
)

// exprOf разбирает `fn f() { <src>; }` и возвращает выражение первого оператора.
func exprOf(t *testing.T, src string) (*ast.Tree, ast.NodeID) {
	t.Helper()
	tree := parseClean(t, "fn f() {\n    "+src+";\n}\n")
	body := fnBody(t, tree)
	if len(body) == 0 {
		t.Fatalf("no statements for %q", src)
	}
	kids := tree.NonAttrChildren(body[0])
	return tree, kids[len(kids)-1]
}

func TestBinaryPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"a + b * c", "(a + (b * c))"},
		{"a * b + c", "((a * b) + c)"},
		{"a - b - c", "((a - b) - c)"},
		{"a == b && c != d", "((a == b) && (c != d))"},
		{"a || b && c", "(a || (b && c))"},
		{"a & b == c", "((a & b) == c)"},
		{"a | b ^ c & d", "(a | (b ^ (c & d)))"},
		{"x = y = z", "(x = (y = z))"},
		{"x += a + 1", "(x += (a + 1))"},
		{"!a && b", "((!a) && b)"},
		{"-a * b", "((-a) * b)"},
		{"(a + b) * c", "((a + b) * c)"},
		{"a <= b + 1", "(a <= (b + 1))"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tree, e := exprOf(t, "let _r = "+tt.src)
			if got := sexpr(tree, e); got != tt.want {
				t.Fatalf("sexpr(%q) = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestPostfixChains(t *testing.T) {
	tree, e := exprOf(t, "a.b.c(1, 2)[0].1")
	kinds := []ast.Kind{}
	for id := e; tree.Kind(id) != ast.ExprPath; id = tree.Children(id)[0] {
		kinds = append(kinds, tree.Kind(id))
	}
	want := []ast.Kind{ast.ExprField, ast.ExprIndex, ast.ExprMethodCall, ast.ExprField}
	if len(kinds) != len(want) {
		t.Fatalf("chain = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("chain = %v, want %v", kinds, want)
		}
	}
	call := tree.Children(tree.Children(e)[0])[0]
	if tree.Node(call).Name != "c" || len(tree.Children(call)) != 3 {
		t.Fatalf("method call %q with %d children", tree.Node(call).Name, len(tree.Children(call)))
	}
}

func TestPrimaryExpressions(t *testing.T) {
	tests := []struct {
		src  string
		kind ast.Kind
		name string
	}{
		{"42_u8", ast.ExprInt, "42_u8"},
		{"true", ast.ExprBool, "true"},
		{"'short'", ast.ExprShortString, "'short'"},
		{"\"long\"", ast.ExprString, "\"long\""},
		{"core::num::MAX", ast.ExprPath, "core::num::MAX"},
		{"panic!(\"x\")", ast.ExprMacro, "panic"},
		{"array![1, 2]", ast.ExprMacro, "array"},
		{"foo(1)", ast.ExprCall, ""},
		{"()", ast.ExprTuple, ""},
		{"(1, 2)", ast.ExprTuple, ""},
		{"(1,)", ast.ExprTuple, ""},
		{"@x", ast.ExprUnary, ""},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tree, e := exprOf(t, tt.src)
			n := tree.Node(e)
			if n.Kind != tt.kind {
				t.Fatalf("kind = %s, want %s", n.Kind, tt.kind)
			}
			if tt.name != "" && n.Name != tt.name {
				t.Fatalf("name = %q, want %q", n.Name, tt.name)
			}
		})
	}
}

func TestIfElseChain(t *testing.T) {
	tree, e := exprOf(t, "let v = if a { 1 } else if b { 2 } else { 3 }")
	if tree.Kind(e) != ast.ExprIf {
		t.Fatalf("kind = %s", tree.Kind(e))
	}
	kids := tree.Children(e)
	if len(kids) != 3 || tree.Kind(kids[2]) != ast.ExprIf {
		t.Fatal("else-if must nest an ExprIf")
	}
	inner := tree.Children(kids[2])
	if len(inner) != 3 || tree.Kind(inner[2]) != ast.Block {
		t.Fatal("final else must be a block")
	}
}

func TestLoopsAndControlFlow(t *testing.T) {
	tree := parseClean(t, `fn f() {
    loop {
        if i > 3 {
            break;
        }
        i += 1;
    }
    while x != 0 {
        x -= 1;
        continue;
    }
    return x;
}
`)
	body := fnBody(t, tree)
	if len(body) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(body))
	}
	loop := tree.Children(body[0])[0]
	if tree.Kind(loop) != ast.ExprLoop || tree.Node(body[0]).Has(ast.FlagSemi) {
		t.Fatal("loop statement without ';'")
	}
	loopBody := tree.Children(tree.Children(loop)[0])
	ifExpr := tree.Children(loopBody[0])[0]
	brk := tree.Children(tree.Children(ifExpr)[1])[0]
	if tree.Kind(brk) != ast.StmtBreak {
		t.Fatalf("expected break, got %s", tree.Kind(brk))
	}
	if tree.Kind(tree.Children(body[1])[0]) != ast.ExprWhile {
		t.Fatal("while statement")
	}
	ret := body[2]
	if tree.Kind(ret) != ast.StmtReturn || len(tree.Children(ret)) != 1 {
		t.Fatal("return with value")
	}
}

func TestLetPatterns(t *testing.T) {
	tree := parseClean(t, "fn f() {\n    let (a, mut b): (u8, u8) = (1, 2);\n    let ref c = a;\n}\n")
	body := fnBody(t, tree)
	pat := tree.Children(body[0])[0]
	if tree.Kind(pat) != ast.PatTuple || len(tree.Children(pat)) != 2 {
		t.Fatal("tuple pattern")
	}
	if !tree.Node(tree.Children(pat)[1]).Has(ast.FlagMut) {
		t.Fatal("mut binding")
	}
	if len(tree.Children(body[0])) != 3 {
		t.Fatal("let with type must have pattern, type and value")
	}
	if !tree.Node(tree.Children(body[1])[0]).Has(ast.FlagRef) {
		t.Fatal("ref binding")
	}
}

func TestStatementAttributes(t *testing.T) {
	tree := parseClean(t, "fn f() {\n    #[allow(double_parens)]\n    let x = ((1));\n}\n")
	stmt := fnBody(t, tree)[0]
	if !tree.HasAttrArg(stmt, "allow", "double_parens") {
		t.Fatal("statement attribute lost")
	}
	if tree.Kind(tree.Child(stmt, 0)) != ast.PatIdent {
		t.Fatal("Child must skip attributes")
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"missing operand", "fn f() { let x = 1 + ; }", diag.SynExpectExpression},
		{"missing semicolon", "fn f() { a\n b }", diag.SynExpectSemicolon},
		{"unclosed call", "fn f() { g(1, 2; }", diag.SynUnclosedDelimiter},
		{"loop without block", "fn f() { loop x; }", diag.SynExpectBlock},
		{"unclosed block", "fn f() { a;", diag.SynUnclosedDelimiter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := parseSource(t, tt.input)
			found := false
			for _, d := range bag.Items() {
				if d.Code == tt.code {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected %s, got %s", tt.code.ID(), diagnosticsSummary(bag))
			}
		})
	}
}

func TestUnclosedDelimiterPointsAtOpener(t *testing.T) {
	tests := []struct {
		name  string
		input string
		open  uint32
	}{
		{"block", "fn f() { a;", 7},
		{"enum", "enum E { A, B", 7},
		{"import group", "use a::{b, c;", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := parseSource(t, tt.input)
			for _, d := range bag.Items() {
				if d.Code != diag.SynUnclosedDelimiter {
					continue
				}
				if len(d.Notes) != 1 || d.Notes[0].Span.Start != tt.open || d.Notes[0].Span.End != tt.open+1 {
					t.Fatalf("notes = %+v, want one at %d", d.Notes, tt.open)
				}
				return
			}
			t.Fatalf("no unclosed delimiter error: %s", diagnosticsSummary(bag))
		})
	}
}

func TestBlockRecoveryContinues(t *testing.T) {
	tree, bag := parseSource(t, "fn f() {\n    let = 1;\n    good();\n}\n")
	if !bag.HasErrors() {
		t.Fatal("expected errors")
	}
	calls := tree.DescendantsOfKind(tree.Root(), ast.ExprCall)
	if len(calls) != 1 {
		t.Fatalf("statement after the error must be parsed, got %d calls", len(calls))
	}
}

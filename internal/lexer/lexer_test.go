package lexer

import (
	"testing"

	"cairolint/internal/diag"
	"cairolint/internal/source"
	"cairolint/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.cairo", []byte(src)))
	bag := diag.NewBag(0)
	lx := New(file, Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx.All(), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func expectKinds(t *testing.T, src string, want ...token.Kind) {
	t.Helper()
	toks, bag := lexAll(t, src)
	want = append(want, token.EOF)
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %v, want %v (all: %v)", src, i, got[i], want[i], got)
		}
	}
	if bag.Len() != 0 {
		t.Fatalf("%q: unexpected diagnostics %+v", src, bag.Items())
	}
}

func TestOperators(t *testing.T) {
	expectKinds(t, "a >= b + 1", token.Ident, token.GtEq, token.Ident, token.Plus, token.IntLit)
	expectKinds(t, "x == y && !z || w != v", token.Ident, token.EqEq, token.Ident, token.AndAnd,
		token.Bang, token.Ident, token.OrOr, token.Ident, token.BangEq, token.Ident)
	expectKinds(t, "core::integer::u32", token.Ident, token.ColonColon, token.Ident, token.ColonColon, token.Ident)
	expectKinds(t, "fn f() -> u8 {}", token.KwFn, token.Ident, token.LParen, token.RParen, token.Arrow,
		token.Ident, token.LBrace, token.RBrace)
	expectKinds(t, "#[allow(panic)]", token.Hash, token.LBracket, token.Ident, token.LParen, token.Ident,
		token.RParen, token.RBracket)
	expectKinds(t, "x += 1; y -= 2", token.Ident, token.PlusAssign, token.IntLit, token.Semicolon,
		token.Ident, token.MinusAssign, token.IntLit)
	expectKinds(t, "a & b | c ^ d % e", token.Ident, token.Amp, token.Ident, token.Pipe, token.Ident,
		token.Caret, token.Ident, token.Percent, token.Ident)
}

func TestNumbers(t *testing.T) {
	tests := []string{"0", "42", "1_000", "0x2a", "0o17", "0b101", "1_u32", "1_000_u32", "0x10_felt252"}
	for _, src := range tests {
		toks, bag := lexAll(t, src)
		if toks[0].Kind != token.IntLit || toks[0].Text != src {
			t.Errorf("%q lexed as %v %q", src, toks[0].Kind, toks[0].Text)
		}
		if bag.Len() != 0 {
			t.Errorf("%q: unexpected diagnostics", src)
		}
	}

	for _, src := range []string{"12abc", "0x", "1_"} {
		toks, bag := lexAll(t, src)
		if toks[0].Kind != token.Invalid {
			t.Errorf("%q should be invalid, got %v", src, toks[0].Kind)
		}
		if bag.Len() != 1 || bag.Items()[0].Code != diag.LexBadNumber {
			t.Errorf("%q: expected LexBadNumber", src)
		}
	}
}

func TestStrings(t *testing.T) {
	expectKinds(t, `'abc' "x\"y"`, token.ShortStringLit, token.StringLit)

	_, bag := lexAll(t, "'abc\n'")
	if bag.Len() == 0 || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatal("expected unterminated string diagnostic")
	}
}

func TestKeywordsAndUnderscore(t *testing.T) {
	expectKinds(t, "let mut _x = loop { break; };", token.KwLet, token.KwMut, token.Ident, token.Assign,
		token.KwLoop, token.LBrace, token.KwBreak, token.Semicolon, token.RBrace, token.Semicolon)
	expectKinds(t, "_", token.Ident)
}

func TestTrailingTriviaStopsAtNewline(t *testing.T) {
	src := "use a; // keep\n\n// doc for fn\nfn f() {}\n"
	toks, _ := lexAll(t, src)

	semi := toks[2]
	if semi.Kind != token.Semicolon {
		t.Fatalf("expected ';', got %v", semi.Kind)
	}
	if len(semi.Trailing) != 3 {
		t.Fatalf("';' trailing = %+v", semi.Trailing)
	}
	if semi.Trailing[1].Kind != token.TriviaLineComment || semi.Trailing[2].Kind != token.TriviaNewline {
		t.Fatalf("unexpected trailing kinds %+v", semi.Trailing)
	}
	if semi.Trailing[2].Text != "\n" {
		t.Fatalf("trailing newline must be a single byte, got %q", semi.Trailing[2].Text)
	}

	fn := toks[3]
	if fn.Kind != token.KwFn {
		t.Fatalf("expected fn, got %v", fn.Kind)
	}
	// пустая строка и комментарий достаются следующему токену
	if len(fn.Leading) != 3 || fn.Leading[1].Text != "// doc for fn" {
		t.Fatalf("fn leading = %+v", fn.Leading)
	}
	if full := fn.FullSpan(); full.Start != semi.FullSpan().End {
		t.Fatalf("trivia must tile the file: fn full start %d, ';' full end %d", full.Start, semi.FullSpan().End)
	}
}

func TestTokensTileTheFile(t *testing.T) {
	src := "  // header\nfn main() {\n    let x = 1_u32; // c\n}\n\n"
	toks, _ := lexAll(t, src)
	var pos uint32
	for _, tk := range toks {
		full := tk.FullSpan()
		if full.Start != pos {
			t.Fatalf("gap before %v at %d (expected %d)", tk.Kind, full.Start, pos)
		}
		pos = full.End
	}
	if int(pos) != len(src) {
		t.Fatalf("tokens cover %d bytes of %d", pos, len(src))
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("p.cairo", []byte("a b")))
	lx := New(file, Options{})
	if lx.Peek().Text != "a" || lx.Peek().Text != "a" {
		t.Fatal("Peek must be idempotent")
	}
	if lx.Next().Text != "a" || lx.Next().Text != "b" {
		t.Fatal("Next after Peek returned wrong tokens")
	}
}

func TestUnknownChar(t *testing.T) {
	toks, bag := lexAll(t, "a $ b")
	if toks[1].Kind != token.Invalid {
		t.Fatalf("expected invalid token, got %v", toks[1].Kind)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnknownChar {
		t.Fatalf("expected LexUnknownChar, got %+v", bag.Items())
	}
}

func TestUnicodeIdentifiers(t *testing.T) {
	// precomposed, combining mark после ASCII, не-ASCII в начале, mark в середине
	cases := []struct {
		src  string
		text string
	}{
		{"caf\u00e9", "caf\u00e9"},
		{"cafe\u0301", "cafe\u0301"},
		{"\u00f1ame_2", "\u00f1ame_2"},
		{"x\u0301y", "x\u0301y"},
	}
	for _, tc := range cases {
		toks, bag := lexAll(t, "let "+tc.src+" = 1;")
		if bag.Len() != 0 {
			t.Fatalf("%q: unexpected diagnostics %+v", tc.src, bag.Items())
		}
		if toks[1].Kind != token.Ident || toks[1].Text != tc.text {
			t.Fatalf("%q: got %v %q, want ident %q", tc.src, toks[1].Kind, toks[1].Text, tc.text)
		}
		if toks[2].Kind != token.Assign {
			t.Fatalf("%q: identifier swallowed the next token: %v", tc.src, toks[2].Kind)
		}
	}
	expectKinds(t, "caf\u00e9+1", token.Ident, token.Plus, token.IntLit)
}

package token_test

import (
	"testing"

	"cairolint/internal/source"
	"cairolint/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{token.IntLit, token.StringLit, token.ShortStringLit, token.KwTrue, token.KwFalse}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwLet, token.Plus, token.LParen}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunctOrOp(t *testing.T) {
	ops := []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Assign, token.EqEq, token.BangEq, token.LtEq, token.GtEq,
		token.AndAnd, token.OrOr, token.Hash, token.ColonColon, token.Arrow,
		token.LParen, token.RBracket,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwIf, token.IntLit, token.EOF}
	for _, k := range non {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestKeywordsRoundTrip(t *testing.T) {
	for _, word := range []string{"fn", "let", "use", "enum", "mod", "loop", "while", "break", "true"} {
		k, ok := token.LookupKeyword(word)
		if !ok {
			t.Fatalf("%q should be a keyword", word)
		}
		if !tok(k).IsKeyword() {
			t.Fatalf("%v must report IsKeyword", k)
		}
		if k.String() != word {
			t.Fatalf("String() = %q, want %q", k.String(), word)
		}
	}
	if _, ok := token.LookupKeyword("Fn"); ok {
		t.Fatal("keywords are case-sensitive")
	}
	if _, ok := token.LookupKeyword("felt252"); ok {
		t.Fatal("type names are identifiers")
	}
}

func TestFullSpanIncludesTrivia(t *testing.T) {
	tk := token.Token{
		Kind: token.Ident,
		Span: source.Span{Start: 4, End: 7},
		Leading: []token.Trivia{
			{Kind: token.TriviaSpace, Span: source.Span{Start: 0, End: 4}},
		},
		Trailing: []token.Trivia{
			{Kind: token.TriviaLineComment, Span: source.Span{Start: 8, End: 12}},
			{Kind: token.TriviaNewline, Span: source.Span{Start: 12, End: 13}},
		},
	}
	if got := tk.FullSpan(); got.Start != 0 || got.End != 13 {
		t.Fatalf("FullSpan = %v, want 0..13", got)
	}
	if !tk.Trailing[0].IsComment() || tk.Trailing[1].IsComment() {
		t.Fatal("IsComment classification is wrong")
	}
}

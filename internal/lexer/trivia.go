package lexer

import (
	"cairolint/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ', '\t', '\r' коалесцируются в один TriviaSpace
// - последовательные '\n' коалесцируются в один TriviaNewline
// - //... до \n -> TriviaLineComment, ///... -> TriviaDocLine
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		tv, ok := lx.scanTrivia(true)
		if !ok {
			break
		}
		lx.hold = append(lx.hold, tv)
	}
	if len(lx.hold) == 0 {
		lx.hold = nil
	}
}

// collectTrailingTrivia забирает trivia после токена до первого '\n' включительно.
// Всё, что дальше, станет Leading следующего токена.
func (lx *Lexer) collectTrailingTrivia() []token.Trivia {
	var out []token.Trivia
	for !lx.cursor.EOF() {
		tv, ok := lx.scanTrivia(false)
		if !ok {
			break
		}
		out = append(out, tv)
		if tv.Kind == token.TriviaNewline {
			break
		}
	}
	return out
}

// scanTrivia читает один элемент trivia. Если multiNewline=false, перевод строки
// берётся ровно один.
func (lx *Lexer) scanTrivia(multiNewline bool) (token.Trivia, bool) {
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()

	switch {
	case b == ' ' || b == '\t' || b == '\r':
		for {
			b2 := lx.cursor.Peek()
			if b2 != ' ' && b2 != '\t' && b2 != '\r' {
				break
			}
			lx.cursor.Bump()
		}
		return lx.trivia(token.TriviaSpace, start), true

	case b == '\n':
		lx.cursor.Bump()
		for multiNewline && lx.cursor.Peek() == '\n' {
			lx.cursor.Bump()
		}
		return lx.trivia(token.TriviaNewline, start), true

	case b == '/':
		b0, b1, ok := lx.cursor.Peek2()
		if !ok || b0 != '/' || b1 != '/' {
			return token.Trivia{}, false
		}
		lx.cursor.Bump()
		lx.cursor.Bump()
		kind := token.TriviaLineComment
		if lx.cursor.Peek() == '/' {
			kind = token.TriviaDocLine
		}
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return lx.trivia(kind, start), true
	}
	return token.Trivia{}, false
}

func (lx *Lexer) trivia(kind token.TriviaKind, start Mark) token.Trivia {
	sp := lx.cursor.SpanFrom(start)
	return token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)}
}

package lexer

import (
	"strings"

	"cairolint/internal/diag"
	"cairolint/internal/token"
)

// Поддержка: 0, 123, 1_000, 0x2a, 0o17, 0b101 и суффикс типа (`1_u32`, `0x10_felt252`).
// Суффикс остаётся в Token.Text.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	digit := isDec
	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		switch lx.cursor.Peek() {
		case 'x', 'X':
			lx.cursor.Bump()
			digit = isHex
		case 'o', 'O':
			lx.cursor.Bump()
			digit = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'b', 'B':
			lx.cursor.Bump()
			digit = func(b byte) bool { return b == '0' || b == '1' }
		}
	}

	for {
		b := lx.cursor.Peek()
		if digit(b) {
			lx.cursor.Bump()
			continue
		}
		// '_' — разделитель, если дальше снова цифра; иначе начало суффикса
		if b == '_' && lx.digitsFollow(digit) {
			lx.cursor.Bump()
			continue
		}
		break
	}

	// суффикс: _ident
	if lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	// мусор вида 12abc
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp = lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "invalid number literal "+lx.text(sp))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	if strings.HasSuffix(text, "_") || text == "0x" || text == "0o" || text == "0b" {
		lx.errLex(diag.LexBadNumber, sp, "invalid number literal "+text)
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.IntLit, Span: sp, Text: text}
}

// digitsFollow сообщает, что после текущего '_' идёт ещё группа цифр,
// а не суффикс типа (важно для hex: `0x10_felt252`).
func (lx *Lexer) digitsFollow(digit func(byte) bool) bool {
	content := lx.file.Content[:lx.cursor.Limit]
	i := int(lx.cursor.Off) + 1
	if i >= len(content) || !digit(content[i]) {
		return false
	}
	for i < len(content) && digit(content[i]) {
		i++
	}
	return i >= len(content) || content[i] == '_' || !isIdentContinueByte(content[i])
}

package parser

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/token"
)

// parseAttributes разбирает подряд идущие `#[name]` / `#[name(arg, ...)]`.
func (p *Parser) parseAttributes() []ast.NodeID {
	var attrs []ast.NodeID
	for p.at(token.Hash) {
		m := p.mark()
		p.advance()
		if _, ok := p.expect(token.LBracket, diag.SynUnexpectedToken, "expected '[' after '#'"); !ok {
			p.resyncUntil(token.RBracket, token.Semicolon, token.LBrace)
			if p.at(token.RBracket) {
				p.advance()
			}
			continue
		}
		name, ok := p.expectIdent("attribute name")
		if !ok {
			p.resyncUntil(token.RBracket)
			p.advance()
			continue
		}

		var args []ast.NodeID
		if p.at(token.LParen) {
			p.advance()
			args = p.parseExprList(token.RParen)
			p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close attribute arguments")
		}
		p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close attribute")
		attrs = append(attrs, p.finish(ast.Node{Kind: ast.Attribute, Name: name.Text}, m, args...))
	}
	return attrs
}

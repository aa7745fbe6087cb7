package parser

import (
	"strings"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/token"
)

// parseType: path[<T, ...>] | (T, ...) | @T
func (p *Parser) parseType() (ast.NodeID, bool) {
	m := p.mark()
	switch {
	case p.at(token.At):
		p.advance()
		inner, ok := p.parseType()
		if !ok {
			return ast.NoNodeID, false
		}
		return p.finish(ast.Node{Kind: ast.TypeSnapshot}, m, inner), true

	case p.at(token.LParen):
		p.advance()
		var elems []ast.NodeID
		for !p.at(token.RParen) && !p.at(token.EOF) {
			elem, ok := p.parseType()
			if !ok {
				return ast.NoNodeID, false
			}
			elems = append(elems, elem)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close tuple type"); !ok {
			return ast.NoNodeID, false
		}
		return p.finish(ast.Node{Kind: ast.TypeTuple}, m, elems...), true

	case p.at(token.Ident):
		segs := []string{p.advance().Text}
		for p.at(token.ColonColon) {
			p.advance()
			if p.at(token.Lt) {
				break // Array::<T>
			}
			seg, ok := p.expectIdent("type path segment")
			if !ok {
				return ast.NoNodeID, false
			}
			segs = append(segs, seg.Text)
		}
		var args []ast.NodeID
		if p.at(token.Lt) {
			p.advance()
			for !p.at(token.Gt) && !p.at(token.EOF) {
				arg, ok := p.parseType()
				if !ok {
					return ast.NoNodeID, false
				}
				args = append(args, arg)
				if !p.at(token.Comma) {
					break
				}
				p.advance()
			}
			if _, ok := p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' to close generic arguments"); !ok {
				return ast.NoNodeID, false
			}
		}
		return p.finish(ast.Node{Kind: ast.TypePath, Name: strings.Join(segs, "::")}, m, args...), true
	}

	p.err(diag.SynExpectType, "expected type, got \""+p.lx.Peek().Text+"\"")
	return ast.NoNodeID, false
}

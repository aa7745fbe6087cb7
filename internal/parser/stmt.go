package parser

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/token"
)

// parseBlock: { stmt* }. Вызывается, когда текущий токен — '{'.
func (p *Parser) parseBlock() ast.NodeID {
	m := p.mark()
	open := p.advance().Span // {
	var stmts []ast.NodeID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			p.advance() // пустой оператор
			continue
		}
		before := p.lx.Peek().Span.Start
		stmt, ok := p.parseStmt()
		if ok {
			stmts = append(stmts, stmt)
			continue
		}
		p.resyncUntil(token.Semicolon, token.RBrace)
		if p.at(token.Semicolon) {
			p.advance()
		} else if p.lx.Peek().Span.Start == before && !p.at(token.RBrace) {
			p.advance()
		}
	}
	p.expectClosing(token.RBrace, open, "expected '}' to close block")
	return p.finish(ast.Node{Kind: ast.Block}, m, stmts...)
}

func (p *Parser) parseStmt() (ast.NodeID, bool) {
	m := p.mark()
	attrs := p.parseAttributes()

	switch p.lx.Peek().Kind {
	case token.KwLet:
		return p.parseLetStmt(m, attrs)

	case token.KwReturn, token.KwBreak:
		kind := ast.StmtReturn
		if p.advance().Kind == token.KwBreak {
			kind = ast.StmtBreak
		}
		kids := attrs
		if !p.at_or(token.Semicolon, token.RBrace) {
			kids = append(kids, p.parseExpr())
		}
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';'"); !ok {
			return ast.NoNodeID, false
		}
		return p.finish(ast.Node{Kind: kind, Flags: ast.FlagSemi}, m, kids...), true

	case token.KwContinue:
		p.advance()
		if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after continue"); !ok {
			return ast.NoNodeID, false
		}
		return p.finish(ast.Node{Kind: ast.StmtContinue, Flags: ast.FlagSemi}, m, attrs...), true
	}

	var expr ast.NodeID
	if p.at_or(token.KwIf, token.KwLoop, token.KwWhile, token.LBrace) {
		// блочное выражение в позиции оператора заканчивается на '}'
		expr = p.parsePrimary()
	} else {
		expr = p.parseExpr()
	}
	if p.tree.Kind(expr) == ast.ExprMissing {
		return ast.NoNodeID, false
	}
	var flags ast.Flags
	switch {
	case p.at(token.Semicolon):
		p.advance()
		flags |= ast.FlagSemi
	case p.at(token.RBrace), endsWithBlock(p.tree.Kind(expr)):
		// хвостовое выражение блока или if/loop/while без ';'
	default:
		p.err(diag.SynExpectSemicolon, "expected ';' after expression")
		return ast.NoNodeID, false
	}
	return p.finish(ast.Node{Kind: ast.StmtExpr, Flags: flags}, m, append(attrs, expr)...), true
}

func endsWithBlock(k ast.Kind) bool {
	switch k {
	case ast.Block, ast.ExprIf, ast.ExprLoop, ast.ExprWhile:
		return true
	}
	return false
}

// let [mut] pat [: T] = expr;
func (p *Parser) parseLetStmt(m mark, attrs []ast.NodeID) (ast.NodeID, bool) {
	p.advance() // let
	pat, ok := p.parsePattern()
	if !ok {
		return ast.NoNodeID, false
	}
	kids := append(attrs, pat)
	if p.at(token.Colon) {
		p.advance()
		ty, ok := p.parseType()
		if !ok {
			return ast.NoNodeID, false
		}
		kids = append(kids, ty)
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in let statement"); !ok {
		return ast.NoNodeID, false
	}
	kids = append(kids, p.parseExpr())
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after let statement"); !ok {
		return ast.NoNodeID, false
	}
	return p.finish(ast.Node{Kind: ast.StmtLet, Flags: ast.FlagSemi}, m, kids...), true
}

// pattern: [ref|mut] ident | (pat, ...)
func (p *Parser) parsePattern() (ast.NodeID, bool) {
	m := p.mark()
	if p.at(token.LParen) {
		p.advance()
		var elems []ast.NodeID
		for !p.at(token.RParen) && !p.at(token.EOF) {
			elem, ok := p.parsePattern()
			if !ok {
				return ast.NoNodeID, false
			}
			elems = append(elems, elem)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close tuple pattern"); !ok {
			return ast.NoNodeID, false
		}
		return p.finish(ast.Node{Kind: ast.PatTuple}, m, elems...), true
	}

	var flags ast.Flags
	for p.at_or(token.KwRef, token.KwMut) {
		if p.advance().Kind == token.KwRef {
			flags |= ast.FlagRef
		} else {
			flags |= ast.FlagMut
		}
	}
	name, ok := p.expectIdent("binding name")
	if !ok {
		return ast.NoNodeID, false
	}
	return p.finish(ast.Node{Kind: ast.PatIdent, Name: name.Text, Flags: flags}, m), true
}

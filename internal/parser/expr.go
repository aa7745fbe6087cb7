package parser

import (
	"strings"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений.
// При ошибке возвращает ExprMissing нулевой ширины.
func (p *Parser) parseExpr() ast.NodeID {
	return p.parseBinaryExpr(0)
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) ast.NodeID {
	left := p.parseUnaryExpr()
	if p.tree.Kind(left) == ast.ExprMissing {
		return left
	}

	for {
		prec, isRightAssoc := getBinaryOperatorPrec(p.lx.Peek().Kind)
		if prec < 0 || prec < minPrec {
			break
		}
		opTok := p.advance()

		nextMinPrec := prec + 1
		if isRightAssoc {
			nextMinPrec = prec
		}

		// отсутствующий операнд уже зарепорчен parsePrimary
		right := p.parseBinaryExpr(nextMinPrec)
		left = p.finish(ast.Node{Kind: ast.ExprBinary, Op: opTok.Kind}, p.markNode(left), left, right)
	}
	return left
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы), затем postfix.
func (p *Parser) parseUnaryExpr() ast.NodeID {
	if isUnaryOperator(p.lx.Peek().Kind) {
		m := p.mark()
		opTok := p.advance()
		operand := p.parseUnaryExpr()
		return p.finish(ast.Node{Kind: ast.ExprUnary, Op: opTok.Kind}, m, operand)
	}
	return p.parsePostfix(p.parsePrimary())
}

// parsePostfix: .field, .method(args), (args), [index]
func (p *Parser) parsePostfix(expr ast.NodeID) ast.NodeID {
	if p.tree.Kind(expr) == ast.ExprMissing {
		return expr
	}
	for {
		m := p.markNode(expr)
		switch {
		case p.at(token.Dot):
			p.advance()
			var name string
			switch {
			case p.at(token.Ident), p.at(token.IntLit):
				name = p.advance().Text
			default:
				p.err(diag.SynExpectIdentifier, "expected field or method name after '.'")
				return expr
			}
			if p.at(token.LParen) {
				p.advance()
				args := p.parseExprList(token.RParen)
				p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close method call")
				expr = p.finish(ast.Node{Kind: ast.ExprMethodCall, Name: name}, m, append([]ast.NodeID{expr}, args...)...)
				continue
			}
			expr = p.finish(ast.Node{Kind: ast.ExprField, Name: name}, m, expr)

		case p.at(token.LParen):
			p.advance()
			args := p.parseExprList(token.RParen)
			p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close call")
			expr = p.finish(ast.Node{Kind: ast.ExprCall}, m, append([]ast.NodeID{expr}, args...)...)

		case p.at(token.LBracket):
			p.advance()
			index := p.parseExpr()
			p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close index")
			expr = p.finish(ast.Node{Kind: ast.ExprIndex}, m, expr, index)

		default:
			return expr
		}
	}
}

// parsePrimary — литералы, пути, макросы, скобки, блоки и управляющие выражения.
func (p *Parser) parsePrimary() ast.NodeID {
	m := p.mark()
	tok := p.lx.Peek()

	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return p.finish(ast.Node{Kind: ast.ExprInt, Name: tok.Text}, m)
	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.finish(ast.Node{Kind: ast.ExprBool, Name: tok.Text}, m)
	case token.ShortStringLit:
		p.advance()
		return p.finish(ast.Node{Kind: ast.ExprShortString, Name: tok.Text}, m)
	case token.StringLit:
		p.advance()
		return p.finish(ast.Node{Kind: ast.ExprString, Name: tok.Text}, m)

	case token.Ident:
		return p.parsePathOrMacro(m)

	case token.LParen:
		p.advance()
		if p.at(token.RParen) {
			p.advance()
			return p.finish(ast.Node{Kind: ast.ExprTuple}, m)
		}
		first := p.parseExpr()
		if p.at(token.RParen) {
			p.advance()
			return p.finish(ast.Node{Kind: ast.ExprParen}, m, first)
		}
		elems := []ast.NodeID{first}
		for p.at(token.Comma) {
			p.advance()
			if p.at(token.RParen) {
				break
			}
			elems = append(elems, p.parseExpr())
		}
		p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close tuple")
		return p.finish(ast.Node{Kind: ast.ExprTuple}, m, elems...)

	case token.LBrace:
		return p.parseBlock()

	case token.KwIf:
		return p.parseIf()

	case token.KwLoop:
		p.advance()
		if !p.at(token.LBrace) {
			p.err(diag.SynExpectBlock, "expected '{' after loop")
			return p.finish(ast.Node{Kind: ast.ExprMissing}, m)
		}
		body := p.parseBlock()
		return p.finish(ast.Node{Kind: ast.ExprLoop}, m, body)

	case token.KwWhile:
		p.advance()
		cond := p.parseExpr()
		if !p.at(token.LBrace) {
			p.err(diag.SynExpectBlock, "expected '{' after while condition")
			return p.finish(ast.Node{Kind: ast.ExprMissing}, m)
		}
		body := p.parseBlock()
		return p.finish(ast.Node{Kind: ast.ExprWhile}, m, cond, body)
	}

	p.err(diag.SynExpectExpression, "expected expression, got \""+tok.Text+"\"")
	return p.finish(ast.Node{Kind: ast.ExprMissing}, m)
}

// if cond { } [else (if ... | { })]
func (p *Parser) parseIf() ast.NodeID {
	m := p.mark()
	p.advance() // if
	cond := p.parseExpr()
	if !p.at(token.LBrace) {
		p.err(diag.SynExpectBlock, "expected '{' after if condition")
		return p.finish(ast.Node{Kind: ast.ExprMissing}, m)
	}
	kids := []ast.NodeID{cond, p.parseBlock()}
	if p.at(token.KwElse) {
		p.advance()
		switch {
		case p.at(token.KwIf):
			kids = append(kids, p.parseIf())
		case p.at(token.LBrace):
			kids = append(kids, p.parseBlock())
		default:
			p.err(diag.SynExpectBlock, "expected '{' or 'if' after else")
		}
	}
	return p.finish(ast.Node{Kind: ast.ExprIf}, m, kids...)
}

// path (:: ident)* [! (args) | ![args]]
func (p *Parser) parsePathOrMacro(m mark) ast.NodeID {
	segs := []string{p.advance().Text}
	for p.at(token.ColonColon) {
		p.advance()
		seg, ok := p.expectIdent("path segment")
		if !ok {
			break
		}
		segs = append(segs, seg.Text)
	}
	name := strings.Join(segs, "::")

	if p.at(token.Bang) {
		p.advance()
		closer := token.RParen
		switch {
		case p.at(token.LParen):
		case p.at(token.LBracket):
			closer = token.RBracket
		default:
			p.err(diag.SynUnexpectedToken, "expected '(' or '[' after macro name")
			return p.finish(ast.Node{Kind: ast.ExprMissing}, m)
		}
		p.advance()
		args := p.parseExprList(closer)
		p.expect(closer, diag.SynUnclosedDelimiter, "expected closing delimiter for macro call")
		return p.finish(ast.Node{Kind: ast.ExprMacro, Name: name}, m, args...)
	}
	return p.finish(ast.Node{Kind: ast.ExprPath, Name: name}, m)
}

// parseExprList читает `e, e, ...` до closer (closer не съедается).
func (p *Parser) parseExprList(closer token.Kind) []ast.NodeID {
	var out []ast.NodeID
	for !p.at(closer) && !p.at(token.EOF) {
		e := p.parseExpr()
		if p.tree.Kind(e) == ast.ExprMissing {
			p.resyncUntil(closer, token.Semicolon, token.RBrace)
			break
		}
		out = append(out, e)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	return out
}

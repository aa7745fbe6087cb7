package parser

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/token"
)

// use a::b::{c, d as e};
func (p *Parser) parseUseItem(m mark, attrs []ast.NodeID, flags ast.Flags) (ast.NodeID, bool) {
	p.advance() // use
	tree, ok := p.parseUseTree()
	if !ok {
		return ast.NoNodeID, false
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after use declaration"); !ok {
		return ast.NoNodeID, false
	}
	return p.finish(ast.Node{Kind: ast.ItemUse, Flags: flags}, m, append(attrs, tree)...), true
}

func (p *Parser) parseUseTree() (ast.NodeID, bool) {
	m := p.mark()
	switch {
	case p.at(token.Star):
		p.advance()
		return p.finish(ast.Node{Kind: ast.UsePathStar}, m), true

	case p.at(token.LBrace):
		open := p.advance().Span
		lm := p.mark()
		var trees []ast.NodeID
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			tree, ok := p.parseUseTree()
			if !ok {
				return ast.NoNodeID, false
			}
			trees = append(trees, tree)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if len(trees) == 0 {
			p.err(diag.SynEmptyImportGroup, "empty import group")
		}
		list := p.finish(ast.Node{Kind: ast.UsePathList}, lm, trees...)
		if !p.expectClosing(token.RBrace, open, "expected '}' to close import group") {
			return ast.NoNodeID, false
		}
		return p.finish(ast.Node{Kind: ast.UsePathMulti}, m, list), true
	}

	name, ok := p.expectIdent("import path segment")
	if !ok {
		return ast.NoNodeID, false
	}
	if p.at(token.ColonColon) {
		p.advance()
		next, ok := p.parseUseTree()
		if !ok {
			return ast.NoNodeID, false
		}
		return p.finish(ast.Node{Kind: ast.UsePathSingle, Name: name.Text}, m, next), true
	}
	leaf := ast.Node{Kind: ast.UsePathLeaf, Name: name.Text}
	if p.at(token.KwAs) {
		p.advance()
		alias, ok := p.expectIdent("alias after 'as'")
		if !ok {
			return ast.NoNodeID, false
		}
		leaf.Alias = alias.Text
	}
	return p.finish(leaf, m), true
}

// fn name(params) -> T { ... }
func (p *Parser) parseFnItem(m mark, attrs []ast.NodeID, flags ast.Flags) (ast.NodeID, bool) {
	p.advance() // fn
	name, ok := p.expectIdent("function name")
	if !ok {
		return ast.NoNodeID, false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return ast.NoNodeID, false
	}
	kids := attrs
	for !p.at(token.RParen) && !p.at(token.EOF) {
		param, ok := p.parseParam()
		if !ok {
			return ast.NoNodeID, false
		}
		kids = append(kids, param)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close parameter list"); !ok {
		return ast.NoNodeID, false
	}
	if p.at(token.Arrow) {
		p.advance()
		ret, ok := p.parseType()
		if !ok {
			return ast.NoNodeID, false
		}
		kids = append(kids, ret)
	}
	if !p.at(token.LBrace) {
		p.err(diag.SynExpectBlock, "expected function body")
		return ast.NoNodeID, false
	}
	kids = append(kids, p.parseBlock())
	return p.finish(ast.Node{Kind: ast.ItemFn, Name: name.Text, Flags: flags}, m, kids...), true
}

// [ref|mut] name: T
func (p *Parser) parseParam() (ast.NodeID, bool) {
	m := p.mark()
	var flags ast.Flags
	for p.at_or(token.KwRef, token.KwMut) {
		if p.advance().Kind == token.KwRef {
			flags |= ast.FlagRef
		} else {
			flags |= ast.FlagMut
		}
	}
	name, ok := p.expectIdent("parameter name")
	if !ok {
		return ast.NoNodeID, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectType, "expected ':' after parameter name"); !ok {
		return ast.NoNodeID, false
	}
	ty, ok := p.parseType()
	if !ok {
		return ast.NoNodeID, false
	}
	return p.finish(ast.Node{Kind: ast.Param, Name: name.Text, Flags: flags}, m, ty), true
}

// enum Name { A, B: T, C: () }
func (p *Parser) parseEnumItem(m mark, attrs []ast.NodeID, flags ast.Flags) (ast.NodeID, bool) {
	p.advance() // enum
	name, ok := p.expectIdent("enum name")
	if !ok {
		return ast.NoNodeID, false
	}
	lbrace, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after enum name")
	if !ok {
		return ast.NoNodeID, false
	}
	kids := attrs
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		vm := p.mark()
		vattrs := p.parseAttributes()
		vname, ok := p.expectIdent("variant name")
		if !ok {
			return ast.NoNodeID, false
		}
		vkids := vattrs
		if p.at(token.Colon) {
			p.advance()
			ty, ok := p.parseType()
			if !ok {
				return ast.NoNodeID, false
			}
			vkids = append(vkids, ty)
		}
		kids = append(kids, p.finish(ast.Node{Kind: ast.Variant, Name: vname.Text}, vm, vkids...))
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if !p.expectClosing(token.RBrace, lbrace.Span, "expected '}' to close enum") {
		return ast.NoNodeID, false
	}
	return p.finish(ast.Node{Kind: ast.ItemEnum, Name: name.Text, Flags: flags}, m, kids...), true
}

// const NAME: T = expr;
func (p *Parser) parseConstItem(m mark, attrs []ast.NodeID, flags ast.Flags) (ast.NodeID, bool) {
	p.advance() // const
	name, ok := p.expectIdent("constant name")
	if !ok {
		return ast.NoNodeID, false
	}
	if _, ok := p.expect(token.Colon, diag.SynExpectType, "expected ':' after constant name"); !ok {
		return ast.NoNodeID, false
	}
	ty, ok := p.parseType()
	if !ok {
		return ast.NoNodeID, false
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in constant declaration"); !ok {
		return ast.NoNodeID, false
	}
	value := p.parseExpr()
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after constant"); !ok {
		return ast.NoNodeID, false
	}
	return p.finish(ast.Node{Kind: ast.ItemConst, Name: name.Text, Flags: flags}, m, append(attrs, ty, value)...), true
}

// mod name; | mod name { items }
func (p *Parser) parseModItem(m mark, attrs []ast.NodeID, flags ast.Flags) (ast.NodeID, bool) {
	p.advance() // mod
	name, ok := p.expectIdent("module name")
	if !ok {
		return ast.NoNodeID, false
	}
	kids := attrs
	if p.at(token.LBrace) {
		p.advance()
		flags |= ast.FlagInline
		kids = append(kids, p.parseItemsUntil(token.RBrace)...)
		if _, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close module"); !ok {
			return ast.NoNodeID, false
		}
	} else if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' or '{' after module name"); !ok {
		return ast.NoNodeID, false
	}
	return p.finish(ast.Node{Kind: ast.ItemModule, Name: name.Text, Flags: flags}, m, kids...), true
}

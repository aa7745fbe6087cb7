package parser

import (
	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/source"
	"cairolint/internal/token"
)

// mark — начало будущего узла: tight и full (с leading trivia) офсеты.
type mark struct {
	tight uint32
	full  uint32
}

// mark запоминает начало следующего токена.
func (p *Parser) mark() mark {
	tok := p.lx.Peek()
	return mark{tight: tok.Span.Start, full: tok.FullSpan().Start}
}

// markNode начинает узел там же, где начинается уже построенный id.
func (p *Parser) markNode(id ast.NodeID) mark {
	n := p.tree.Node(id)
	return mark{tight: n.Span.Start, full: n.FullSpan.Start}
}

// finish создаёт узел от m до последнего съеденного токена.
func (p *Parser) finish(n ast.Node, m mark, kids ...ast.NodeID) ast.NodeID {
	n.Span = source.Span{File: p.file.ID, Start: m.tight, End: m.tight}
	n.FullSpan = n.Span
	// ничего не съели с момента mark: узел нулевой ширины без trivia
	if p.last.Span.End > m.tight {
		n.Span.End = p.last.Span.End
		n.FullSpan = source.Span{File: p.file.ID, Start: m.full, End: p.last.FullSpan().End}
	}
	return p.tree.Add(n, kids...)
}

// advance — съедает следующий токен и обновляет last
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.last = tok
	}
	return tok
}

// getDiagnosticSpan — если впереди EOF, указываем сразу за последним токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.last.Span.End > 0 {
		return source.Span{File: p.file.ID, Start: p.last.Span.End, End: p.last.Span.End}
	}
	return peek.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.err(code, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.lx.Peek().Text}, false
}

// expectIdent ожидает идентификатор.
func (p *Parser) expectIdent(what string) (token.Token, bool) {
	return p.expect(token.Ident, diag.SynExpectIdentifier, "expected "+what+", got \""+p.lx.Peek().Text+"\"")
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	// лексер уже отчитался о битом токене
	if p.at(token.Invalid) {
		p.opts.CurrentErrors++
		return false
	}
	return p.report(diag.ReportSyntax(p.opts.Reporter, code, p.getDiagnosticSpan(), msg))
}

// expectClosing как expect для закрывающего разделителя; в ошибке есть
// заметка на открывающий.
func (p *Parser) expectClosing(k token.Kind, open source.Span, msg string) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	if p.at(token.Invalid) {
		p.opts.CurrentErrors++
		return false
	}
	p.report(diag.ReportSyntax(p.opts.Reporter, diag.SynUnclosedDelimiter, p.getDiagnosticSpan(), msg).OpenedAt(open))
	return false
}

func (p *Parser) report(r *diag.SyntaxReport) bool {
	p.opts.CurrentErrors++
	if p.opts.Reporter == nil || p.opts.Enough() {
		return false // достигли максимального количества ошибок
	}
	r.Emit()
	return true
}

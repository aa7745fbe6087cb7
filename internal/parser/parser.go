package parser

import (
	"slices"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/lexer"
	"cairolint/internal/source"
	"cairolint/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Tree   *ast.Tree
	Errors uint
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx   *lexer.Lexer // поток токенов (Peek/Next)
	tree *ast.Tree    // строящееся дерево
	file *source.File
	opts Options
	last token.Token // последний съеденный токен: конец спана узла
}

// ParseFile — входная точка для разбора одного файла.
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	file := lx.File()
	p := Parser{
		lx:   lx,
		tree: ast.NewTree(file, uint(len(file.Content)/4+16)),
		file: file,
		opts: opts,
	}
	p.parseSourceFile()
	return Result{Tree: p.tree, Errors: p.opts.CurrentErrors}
}

// Parse lexes and parses file, sending every lexer and parser diagnostic to r.
func Parse(file *source.File, r diag.Reporter) Result {
	lx := lexer.New(file, lexer.Options{Reporter: r})
	return ParseFile(lx, Options{Reporter: r})
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) at_or(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseSourceFile — основной цикл верхнего уровня: пока не EOF — parseItem.
func (p *Parser) parseSourceFile() {
	items := p.parseItemsUntil(token.EOF)
	whole := source.Span{File: p.file.ID, Start: 0, End: p.file.Len()}
	root := p.tree.Add(ast.Node{Kind: ast.SourceFile, Span: whole, FullSpan: whole}, items...)
	p.tree.SetRoot(root)
}

func (p *Parser) parseItemsUntil(end token.Kind) []ast.NodeID {
	var items []ast.NodeID
	for !p.at(end) && !p.at(token.EOF) {
		item, ok := p.parseItem()
		if ok {
			items = append(items, item)
			continue
		}
		p.resyncTop()
	}
	return items
}

// parseItem выбирает по первому токену нужный распознаватель top-level конструкции.
func (p *Parser) parseItem() (ast.NodeID, bool) {
	m := p.mark()
	attrs := p.parseAttributes()

	var flags ast.Flags
	if p.at(token.KwPub) {
		p.advance()
		flags |= ast.FlagPub
	}

	switch p.lx.Peek().Kind {
	case token.KwUse:
		return p.parseUseItem(m, attrs, flags)
	case token.KwFn:
		return p.parseFnItem(m, attrs, flags)
	case token.KwEnum:
		return p.parseEnumItem(m, attrs, flags)
	case token.KwConst:
		return p.parseConstItem(m, attrs, flags)
	case token.KwMod:
		return p.parseModItem(m, attrs, flags)
	default:
		p.err(diag.SynUnexpectedTopLevel, "unexpected top-level construct \""+p.lx.Peek().Text+"\"")
		return ast.NoNodeID, false
	}
}

// resyncTop — восстановление после ошибки на верхнем уровне:
// прокручиваем до ';' ИЛИ до стартового токена следующего item ИЛИ EOF.
func (p *Parser) resyncTop() {
	p.resyncUntil(token.Semicolon, token.KwUse, token.KwFn, token.KwEnum, token.KwConst,
		token.KwMod, token.KwPub, token.Hash, token.RBrace)
	if p.at_or(token.Semicolon, token.RBrace) {
		p.advance()
	}
}

// resyncUntil съедает токены, пока не встретит один из stop (или EOF).
func (p *Parser) resyncUntil(stop ...token.Kind) {
	for !p.at(token.EOF) && !p.at_or(stop...) {
		p.advance()
	}
}

package parser

import (
	"tyir/internal/ast"
	"tyir/internal/diag"
	"tyir/internal/lexer"
	"tyir/internal/source"
	"tyir/internal/token"
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
	Bag    *diag.Bag // nil, если Reporter не BagReporter
	Errors uint
}

// Parser - состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	fs       *source.FileSet
	file     *source.File
	opts     Options
	buf      []token.Token // lookahead
	lastSpan source.Span   // span последнего съеденного токена для лучшей диагностики
}

func newParser(fs *source.FileSet, file *source.File, opts Options) *Parser {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	return &Parser{
		lx:       lx,
		fs:       fs,
		file:     file,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
}

// ParseType разбирает ровно одно выражение типа на весь файл.
// Возвращает nil, если тип не удалось начать.
func ParseType(fs *source.FileSet, file *source.File, opts Options) (ast.Type, Result) {
	p := newParser(fs, file, opts)
	ty := p.parseType()
	if !p.at(token.EOF) {
		p.err(diag.SynTrailingInput, "unexpected "+describe(p.peek())+" after type")
	}
	return ty, p.result()
}

// ParseSheet разбирает файл вида `type Name = T;` ...
func ParseSheet(fs *source.FileSet, file *source.File, opts Options) (*ast.Sheet, Result) {
	p := newParser(fs, file, opts)
	sheet := p.parseSheet()
	return sheet, p.result()
}

// ParseTypeText parses a standalone type expression from a string, collecting
// diagnostics into a fresh bag.
func ParseTypeText(text string) (ast.Type, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<expr>", []byte(text)))
	bag := diag.NewBag(0)
	ty, _ := ParseType(fs, file, Options{Reporter: diag.BagReporter{Bag: bag}})
	return ty, bag
}

func (p *Parser) result() Result {
	var bag *diag.Bag
	switch r := p.opts.Reporter.(type) {
	case diag.BagReporter:
		bag = r.Bag
	case *diag.BagReporter:
		bag = r.Bag
	}
	return Result{Bag: bag, Errors: p.opts.CurrentErrors}
}

func (p *Parser) parseSheet() *ast.Sheet {
	start := p.peek().Span
	sheet := &ast.Sheet{File: p.file.ID}
	seen := make(map[string]*ast.TypeAlias)

	for !p.at(token.EOF) {
		if !p.at(token.KwType) {
			p.err(diag.SynUnexpectedTopLevel, "expected 'type' item, found "+describe(p.peek()))
			p.resyncTop()
			continue
		}
		alias := p.parseTypeAlias()
		if name := alias.AliasName(); name != "" {
			if prev, ok := seen[name]; ok {
				p.reportWithNote(diag.SynDuplicateAlias, diag.SevWarning, alias.Name.Span(),
					"type alias '"+name+"' is defined more than once", prev.Name.Span(), "first defined here")
			} else {
				seen[name] = alias
			}
		}
		sheet.Items = append(sheet.Items, alias)
	}

	if len(sheet.Items) == 0 {
		p.report(diag.SynEmptyTypeSheet, diag.SevWarning, start, "type sheet has no items")
	}
	sheet.Range = p.spanFrom(start)
	return sheet
}

// parseTypeAlias: `type Name<'a, T> = Type;`
func (p *Parser) parseTypeAlias() *ast.TypeAlias {
	kw := p.advance()
	alias := &ast.TypeAlias{}

	if p.at(token.Ident) {
		name := p.advance()
		alias.Name = &ast.NameRef{Pos: posOf(name.Span), Text: name.Text}
	} else {
		p.err(diag.SynExpectIdentifier, "expected alias name, found "+describe(p.peek()))
	}
	if p.at(token.Lt) {
		alias.Generics = p.parseGenericParams()
	}

	if _, ok := p.expect(token.Assign, diag.SynExpectEquals, "expected '=' after alias name"); ok || p.atTypeStart() {
		alias.Type = p.parseType()
	}

	if p.at(token.Semicolon) {
		p.advance()
	} else {
		p.err(diag.SynExpectSemicolon, "expected ';' after type alias, found "+describe(p.peek()))
		p.resyncTop()
	}
	alias.Range = p.spanFrom(kw.Span)
	return alias
}

// resyncTop - восстановление на верхнем уровне: до ';' (съедаем) или до следующего `type`.
func (p *Parser) resyncTop() {
	for {
		p.skipUntil(token.Semicolon, token.KwType)
		switch p.peek().Kind {
		case token.Semicolon:
			p.advance()
			return
		case token.KwType, token.EOF:
			return
		default:
			// непарная закрывающая скобка на верхнем уровне
			p.advance()
		}
	}
}

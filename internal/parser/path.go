package parser

import (
	"tyir/internal/ast"
	"tyir/internal/diag"
	"tyir/internal/token"
)

func (p *Parser) parsePathType() *ast.PathType {
	path := p.parsePath()
	return &ast.PathType{Pos: posOf(path.Range), Path: path}
}

// parsePath: `::`? сегмент (`::` сегмент)*.
// Сегмент, которого нет после `::`, остаётся nil в Segments.
func (p *Parser) parsePath() *ast.Path {
	start := p.peek().Span
	path := &ast.Path{}
	if p.at(token.ColonColon) {
		p.advance()
		path.Global = true
	}

	for first := true; ; first = false {
		seg := p.parsePathSegment(first && !path.Global)
		path.Segments = append(path.Segments, seg)
		if seg == nil {
			break
		}
		if seg.Kind == ast.SegmentType && !p.at(token.ColonColon) {
			p.err(diag.SynBadQualifiedPath, "expected '::' after qualified type, found "+describe(p.peek()))
			break
		}
		if !p.at(token.ColonColon) {
			break
		}
		p.advance()
	}
	path.Range = p.spanFrom(start)
	return path
}

func (p *Parser) parsePathSegment(allowQualified bool) *ast.PathSegment {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		return p.parseNameSegment()
	case token.KwSelf, token.KwSuper, token.KwCrate:
		p.advance()
		kind := ast.SegmentSelf
		switch tok.Kind {
		case token.KwSuper:
			kind = ast.SegmentSuper
		case token.KwCrate:
			kind = ast.SegmentCrate
		}
		return &ast.PathSegment{Pos: posOf(tok.Span), Kind: kind}
	case token.Lt:
		if allowQualified {
			return p.parseQualifiedSegment()
		}
	}
	p.err(diag.SynExpectPathSegment, "expected path segment, found "+describe(tok))
	return nil
}

// Name, Name<Args>, Name::<Args>, Name(A, B) -> C
func (p *Parser) parseNameSegment() *ast.PathSegment {
	name := p.advance()
	seg := &ast.PathSegment{
		Kind: ast.SegmentName,
		Name: &ast.NameRef{Pos: posOf(name.Span), Text: name.Text},
	}
	switch {
	case p.at(token.Lt):
		seg.GenericArgs = p.parseGenericArgs(false)
	case p.at(token.ColonColon) && p.peekAt(1).Kind == token.Lt:
		p.advance() // '::'
		seg.GenericArgs = p.parseGenericArgs(true)
	case p.at(token.LParen):
		seg.ParamList = p.parseParamList(false)
		if p.at(token.Arrow) {
			seg.RetType = p.parseRetType()
		}
	}
	seg.Range = p.spanFrom(name.Span)
	return seg
}

// `<T>` | `<T as Trait>`
func (p *Parser) parseQualifiedSegment() *ast.PathSegment {
	open := p.advance()
	seg := &ast.PathSegment{Kind: ast.SegmentType}
	seg.QualType = p.parseType()
	if p.at(token.KwAs) {
		p.advance()
		if p.peek().IsPathStart() && !p.at(token.Lt) {
			seg.QualTrait = p.parsePathType()
		} else {
			p.err(diag.SynBadQualifiedPath, "expected trait path after 'as', found "+describe(p.peek()))
		}
	}
	p.closeDelim(token.Gt, open, diag.SynUnclosedAngleBracket, "'>'")
	seg.Range = p.spanFrom(open.Span)
	return seg
}

// `<T, 'a, Item = U, 3>`; порядок аргументов не проверяем, кроме lifetime после типов.
func (p *Parser) parseGenericArgs(turbofish bool) *ast.GenericArgList {
	open := p.advance()
	list := &ast.GenericArgList{Turbofish: turbofish}
	sawType := false

	for !p.at(token.Gt) && !p.at(token.EOF) {
		arg := p.parseGenericArg()
		switch a := arg.(type) {
		case nil:
			p.skipUntil(token.Comma, token.Gt)
		case *ast.LifetimeArg:
			if sawType {
				p.report(diag.SynLifetimeAfterTypeArgs, diag.SevError, a.Span(), "lifetime arguments must come before type arguments")
			}
		default:
			sawType = true
		}
		if arg != nil {
			list.Args = append(list.Args, arg)
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.closeDelim(token.Gt, open, diag.SynUnclosedAngleBracket, "'>'")
	list.Range = p.spanFrom(open.Span)
	return list
}

func (p *Parser) parseGenericArg() ast.GenericArg {
	tok := p.peek()
	switch {
	case tok.Kind == token.Lifetime:
		p.advance()
		return &ast.LifetimeArg{
			Pos:      posOf(tok.Span),
			Lifetime: &ast.Lifetime{Pos: posOf(tok.Span), Name: tok.Text},
		}
	case tok.Kind == token.IntLit, tok.Kind == token.Minus, tok.Kind == token.LBrace:
		expr := p.parseConstExpr()
		if expr == nil {
			return nil
		}
		return &ast.ConstArg{Pos: expr.Pos, Expr: expr}
	case tok.Kind == token.Ident && p.peekAt(1).Kind == token.Assign:
		p.advance()
		p.advance() // '='
		arg := &ast.AssocTypeArg{Name: &ast.NameRef{Pos: posOf(tok.Span), Text: tok.Text}}
		arg.Type = p.parseType()
		arg.Range = p.spanFrom(tok.Span)
		return arg
	}
	ty := p.parseType()
	if ty == nil {
		return nil
	}
	return &ast.TypeArg{Pos: posOf(ty.Span()), Type: ty}
}

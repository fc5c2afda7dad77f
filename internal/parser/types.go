package parser

import (
	"strings"

	"tyir/internal/ast"
	"tyir/internal/diag"
	"tyir/internal/source"
	"tyir/internal/token"
)

// atTypeStart - может ли текущий токен начать тип.
func (p *Parser) atTypeStart() bool {
	if p.peek().IsPathStart() {
		return true
	}
	return p.atOr(
		token.LParen, token.Bang, token.Underscore, token.Star, token.Amp, token.LBracket,
		token.KwFn, token.KwUnsafe, token.KwExtern, token.KwFor, token.KwImpl, token.KwDyn,
	)
}

// parseType разбирает тип. Если тип не начинается с текущего токена,
// репортит SynExpectType и возвращает nil, ничего не съедая.
// Invalid-токен съедается молча (его уже отрапортовал лексер), результат тоже nil.
func (p *Parser) parseType() ast.Type {
	tok := p.peek()
	switch tok.Kind {
	case token.LParen:
		return p.parseParenOrTuple()
	case token.Bang:
		p.advance()
		return &ast.NeverType{Pos: posOf(tok.Span)}
	case token.Underscore:
		p.advance()
		return &ast.PlaceholderType{Pos: posOf(tok.Span)}
	case token.Star:
		return p.parsePointer()
	case token.Amp:
		return p.parseReference()
	case token.LBracket:
		return p.parseArrayOrSlice()
	case token.KwFn, token.KwUnsafe, token.KwExtern:
		return p.parseFnPointer()
	case token.KwFor:
		return p.parseForType()
	case token.KwImpl:
		p.advance()
		bounds := p.parseTypeBoundList()
		return &ast.ImplTraitType{Pos: posOf(p.spanFrom(tok.Span)), Bounds: bounds}
	case token.KwDyn:
		p.advance()
		bounds := p.parseTypeBoundList()
		return &ast.DynTraitType{Pos: posOf(p.spanFrom(tok.Span)), Bounds: bounds}
	case token.Invalid:
		// съедаем: на его месте остаётся пропущенный тип
		p.advance()
		return nil
	}
	if tok.IsPathStart() {
		return p.parsePathType()
	}
	p.err(diag.SynExpectType, "expected type, found "+describe(tok))
	return nil
}

// `()` | `(T)` | `(T,)` | `(A, B, ...)`
func (p *Parser) parseParenOrTuple() ast.Type {
	open := p.advance()
	var fields []ast.Type
	trailingComma := false

	for !p.at(token.RParen) && !p.at(token.EOF) {
		trailingComma = false
		// неразобранный элемент остаётся nil: позиция и арность сохраняются
		elem := p.parseType()
		if elem == nil {
			p.skipUntil(token.Comma, token.RParen)
		}
		fields = append(fields, elem)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
		trailingComma = true
	}
	p.closeDelim(token.RParen, open, diag.SynUnclosedParen, "')'")

	sp := p.spanFrom(open.Span)
	if len(fields) == 1 && !trailingComma {
		return &ast.ParenType{Pos: posOf(sp), Inner: fields[0]}
	}
	return &ast.TupleType{Pos: posOf(sp), Fields: fields}
}

// `*const T` | `*mut T`; голый `*T` репортим и считаем shared.
func (p *Parser) parsePointer() ast.Type {
	star := p.advance()
	ptr := &ast.PointerType{}
	switch {
	case p.at(token.KwConst):
		p.advance()
		ptr.Const = true
	case p.at(token.KwMut):
		p.advance()
		ptr.Mut = true
	default:
		p.err(diag.SynPointerMissingMut, "expected 'const' or 'mut' after '*'")
	}
	ptr.Pointee = p.parseType()
	ptr.Range = p.spanFrom(star.Span)
	return ptr
}

// `&'a mut T`
func (p *Parser) parseReference() ast.Type {
	amp := p.advance()
	ref := &ast.ReferenceType{}
	if p.at(token.Lifetime) {
		lt := p.advance()
		ref.Lifetime = &ast.Lifetime{Pos: posOf(lt.Span), Name: lt.Text}
	}
	if p.at(token.KwMut) {
		p.advance()
		ref.Mut = true
	}
	ref.Referent = p.parseType()
	ref.Range = p.spanFrom(amp.Span)
	return ref
}

// `[T]` | `[T; N]`
func (p *Parser) parseArrayOrSlice() ast.Type {
	open := p.advance()
	elem := p.parseType()

	if p.at(token.Semicolon) {
		p.advance()
		arr := &ast.ArrayType{Elem: elem}
		if arr.Len = p.parseConstExpr(); arr.Len == nil {
			p.err(diag.SynExpectArrayLen, "expected array length, found "+describe(p.peek()))
		}
		p.closeDelim(token.RBracket, open, diag.SynUnclosedBracket, "']'")
		arr.Range = p.spanFrom(open.Span)
		return arr
	}

	p.closeDelim(token.RBracket, open, diag.SynUnclosedBracket, "']'")
	return &ast.SliceType{Pos: posOf(p.spanFrom(open.Span)), Elem: elem}
}

// parseConstExpr берёт длину массива или const-аргумент как сырой текст:
// литерал, `-литерал`, `_`, путь `A::B` или блок `{ ... }`.
func (p *Parser) parseConstExpr() *ast.ConstExpr {
	start := p.peek().Span
	switch p.peek().Kind {
	case token.IntLit, token.Underscore:
		p.advance()
	case token.Minus:
		p.advance()
		if _, ok := p.expect(token.IntLit, diag.SynExpectArrayLen, "expected integer after '-'"); !ok {
			return nil
		}
	case token.Ident:
		p.advance()
		for p.at(token.ColonColon) && p.peekAt(1).Kind == token.Ident {
			p.advance()
			p.advance()
		}
	case token.LBrace:
		open := p.advance()
		p.skipUntil(token.RBrace)
		p.closeDelim(token.RBrace, open, diag.SynUnclosedBracket, "'}'")
	default:
		return nil
	}
	sp := p.spanFrom(start)
	return &ast.ConstExpr{Pos: posOf(sp), Text: string(p.file.Content[sp.Start:sp.End])}
}

// `unsafe? (extern "abi"?)? fn(params) (-> T)?`
func (p *Parser) parseFnPointer() ast.Type {
	start := p.peek().Span
	fn := &ast.FnPointerType{}
	if p.at(token.KwUnsafe) {
		p.advance()
		fn.Unsafe = true
	}
	if p.at(token.KwExtern) {
		p.advance()
		fn.Extern = true
		if p.at(token.StringLit) {
			abi := p.advance()
			fn.ABI = strings.Trim(abi.Text, `"`)
		}
	}
	if _, ok := p.expect(token.KwFn, diag.SynExpectFn, "expected 'fn'"); !ok && !p.at(token.LParen) {
		fn.Range = p.spanFrom(start)
		return fn
	}
	if p.at(token.LParen) {
		fn.Params = p.parseParamList(true)
	} else {
		p.err(diag.SynUnexpectedToken, "expected '(' after 'fn', found "+describe(p.peek()))
	}
	if p.at(token.Arrow) {
		fn.Ret = p.parseRetType()
	}
	fn.Range = p.spanFrom(start)
	return fn
}

// parseParamList: `(a: A, B, ...)`. Имена параметров допустимы только у fn-указателей.
func (p *Parser) parseParamList(allowNames bool) *ast.ParamList {
	open := p.advance()
	list := &ast.ParamList{}
	var variadic *ast.Param

	for !p.at(token.RParen) && !p.at(token.EOF) {
		start := p.peek().Span
		param := &ast.Param{}

		switch {
		case p.at(token.DotDotDot):
			p.advance()
			param.Variadic = true
		case allowNames && p.atOr(token.Ident, token.Underscore) && p.peekAt(1).Kind == token.Colon:
			name := p.advance()
			p.advance() // ':'
			param.Name = &ast.NameRef{Pos: posOf(name.Span), Text: name.Text}
			param.Type = p.parseType()
		default:
			param.Type = p.parseType()
		}

		if param.Name != nil || param.Type != nil || param.Variadic {
			if variadic != nil {
				p.report(diag.SynVariadicNotLast, diag.SevError, variadic.Span(), "'...' must be the last parameter")
				variadic = nil
			}
			if param.Variadic {
				variadic = param
			}
			param.Range = p.spanFrom(start)
		} else {
			// пустой параметр держит позицию, тип у него nil
			param.Range = source.Span{File: start.File, Start: start.Start, End: start.Start}
			if p.lastSpan.End > start.Start {
				param.Range = p.spanFrom(start)
			}
			p.skipUntil(token.Comma, token.RParen)
		}
		list.Params = append(list.Params, param)

		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.closeDelim(token.RParen, open, diag.SynUnclosedParen, "')'")
	list.Range = p.spanFrom(open.Span)
	return list
}

// `-> T`
func (p *Parser) parseRetType() *ast.RetType {
	arrow := p.advance()
	ret := &ast.RetType{Type: p.parseType()}
	ret.Range = p.spanFrom(arrow.Span)
	return ret
}

// `for<'a, 'b> T`
func (p *Parser) parseForType() ast.Type {
	kw := p.advance()
	ft := &ast.ForType{}
	if p.at(token.Lt) {
		ft.Generics = p.parseGenericParams()
	} else {
		p.err(diag.SynUnexpectedToken, "expected '<' after 'for', found "+describe(p.peek()))
	}
	ft.Inner = p.parseType()
	ft.Range = p.spanFrom(kw.Span)
	return ft
}

// `<'a, T, ...>` у for-типов и алиасов.
func (p *Parser) parseGenericParams() *ast.GenericParamList {
	open := p.advance()
	list := &ast.GenericParamList{}
	for !p.at(token.Gt) && !p.at(token.EOF) {
		tok := p.peek()
		switch tok.Kind {
		case token.Lifetime:
			p.advance()
			list.Params = append(list.Params, &ast.GenericParam{
				Pos:      posOf(tok.Span),
				Lifetime: &ast.Lifetime{Pos: posOf(tok.Span), Name: tok.Text},
			})
		case token.Ident:
			p.advance()
			list.Params = append(list.Params, &ast.GenericParam{
				Pos:  posOf(tok.Span),
				Name: &ast.NameRef{Pos: posOf(tok.Span), Text: tok.Text},
			})
		default:
			p.err(diag.SynExpectIdentifier, "expected generic parameter, found "+describe(tok))
			p.skipUntil(token.Comma, token.Gt)
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

package parser

import (
	"tyir/internal/ast"
	"tyir/internal/diag"
	"tyir/internal/token"
)

func (p *Parser) atBoundStart() bool {
	if p.atOr(token.Lifetime, token.LParen, token.Question, token.KwFor) {
		return true
	}
	return p.peek().IsPathStart()
}

// parseTypeBoundList: `B1 + B2 + ...`, висячий '+' допустим.
func (p *Parser) parseTypeBoundList() *ast.TypeBoundList {
	start := p.peek().Span
	list := &ast.TypeBoundList{}
	for {
		b := p.parseTypeBound()
		if b == nil {
			break
		}
		list.Bounds = append(list.Bounds, b)
		if !p.at(token.Plus) {
			break
		}
		p.advance()
	}
	if len(list.Bounds) == 0 {
		p.err(diag.SynExpectBound, "expected at least one bound, found "+describe(p.peek()))
		list.Range = start
		list.Range.End = start.Start
		return list
	}
	list.Range = p.spanFrom(start)
	return list
}

// parseTypeBound: `'a` | `?Trait` | `for<'a> Trait` | `(Bound)` | `Trait`.
// Возвращает nil, ничего не съедая, если здесь не начинается bound.
func (p *Parser) parseTypeBound() *ast.TypeBound {
	if !p.atBoundStart() {
		return nil
	}
	tok := p.peek()
	b := &ast.TypeBound{}

	switch tok.Kind {
	case token.Lifetime:
		p.advance()
		b.Lifetime = &ast.Lifetime{Pos: posOf(tok.Span), Name: tok.Text}
	case token.LParen:
		p.advance()
		if inner := p.parseTypeBound(); inner != nil {
			b = inner
		} else {
			p.err(diag.SynExpectBound, "expected bound inside parentheses, found "+describe(p.peek()))
		}
		p.closeDelim(token.RParen, tok, diag.SynUnclosedParen, "')'")
		b.Paren = true
	case token.Question:
		p.advance()
		b.Maybe = true
		if p.peek().IsPathStart() {
			b.Type = p.parsePathType()
		} else {
			p.err(diag.SynExpectBound, "expected trait after '?', found "+describe(p.peek()))
		}
	case token.KwFor:
		b.Type = p.parseForType()
	default:
		b.Type = p.parsePathType()
	}
	b.Range = p.spanFrom(tok.Span)
	return b
}

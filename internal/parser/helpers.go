package parser

import (
	"fmt"
	"slices"

	"tyir/internal/ast"
	"tyir/internal/diag"
	"tyir/internal/source"
	"tyir/internal/token"
)

func posOf(sp source.Span) ast.Pos {
	return ast.Pos{Range: sp}
}

func (p *Parser) peekAt(n int) token.Token {
	for len(p.buf) <= n {
		p.buf = append(p.buf, p.lx.Next())
	}
	return p.buf[n]
}

func (p *Parser) peek() token.Token {
	return p.peekAt(0)
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance - съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return tok
	}
	p.buf = p.buf[1:]
	p.lastSpan = tok.Span
	return tok
}

// spanFrom покрывает всё от start до последнего съеденного токена.
func (p *Parser) spanFrom(start source.Span) source.Span {
	return start.Cover(p.lastSpan)
}

// diagSpan: на EOF указываем сразу за последним токеном, а не в конец файла.
func (p *Parser) diagSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return p.lastSpan.AtEnd()
	}
	return tok.Span
}

// expect - ожидаем конкретный токен. Если нет - репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagSpan()
	p.report(code, diag.SevError, sp, fmt.Sprintf("%s, found %s", msg, describe(p.peek())))
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

// closeDelim съедает закрывающий токен; иначе репортит с заметкой на открывающий
// и проматывает до него.
func (p *Parser) closeDelim(k token.Kind, open token.Token, code diag.Code, want string) {
	if p.at(k) {
		p.advance()
		return
	}
	p.reportWithNote(code, diag.SevError, p.diagSpan(),
		fmt.Sprintf("expected %s, found %s", want, describe(p.peek())),
		open.Span, "unclosed delimiter opened here")
	p.skipUntil(k)
	if p.at(k) {
		p.advance()
	}
}

// skipUntil проматывает токены до одного из stop на нулевой глубине вложенности.
// Всегда останавливается на ';', `type`, EOF и на непарной закрывающей скобке.
func (p *Parser) skipUntil(stop ...token.Kind) {
	depth := 0
	for {
		tok := p.peek()
		if tok.Kind == token.EOF {
			return
		}
		if depth == 0 && (slices.Contains(stop, tok.Kind) || tok.Kind == token.Semicolon || tok.Kind == token.KwType) {
			return
		}
		switch tok.Kind {
		case token.LParen, token.LBracket, token.LBrace, token.Lt:
			depth++
		case token.RParen, token.RBracket, token.RBrace, token.Gt:
			if depth == 0 {
				return
			}
			depth--
		}
		p.advance()
	}
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.diagSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	return p.reportWithNote(code, sev, sp, msg, source.Span{}, "")
}

func (p *Parser) reportWithNote(code diag.Code, sev diag.Severity, sp source.Span, msg string, noteSpan source.Span, note string) bool {
	if p.opts.Reporter == nil {
		return false
	}
	// Invalid-токен лексер уже отрапортовал, второй диагностики не нужно.
	if tok := p.peek(); tok.Kind == token.Invalid && sp == tok.Span {
		return false
	}
	if sev == diag.SevError {
		full := p.opts.Enough()
		p.opts.CurrentErrors++
		if full {
			return false // достигли максимального количества ошибок
		}
	}
	b := diag.NewReportBuilder(p.opts.Reporter, sev, code, sp, msg)
	if note != "" {
		b.WithNote(noteSpan, note)
	}
	b.Emit()
	return true
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of input"
	case token.Ident:
		return fmt.Sprintf("identifier '%s'", tok.Text)
	default:
		return fmt.Sprintf("'%s'", tok.Text)
	}
}

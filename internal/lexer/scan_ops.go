package lexer

import (
	"tyir/internal/diag"
	"tyir/internal/token"
)

// Жадность: "...", затем "::" и "->", затем односимвольные.
// '<', '>' и '&' никогда не склеиваются: `Vec<Vec<T>>` и `&&T` парсер
// получает уже раздельными токенами.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{
			Kind: k,
			Span: sp,
			Text: string(lx.file.Content[sp.Start:sp.End]),
		}
	}

	switch {
	case lx.cursor.EatSeq("..."):
		return emit(token.DotDotDot)
	case lx.cursor.EatSeq("::"):
		return emit(token.ColonColon)
	case lx.cursor.EatSeq("->"):
		return emit(token.Arrow)
	}

	ch := lx.cursor.Peek()
	if ch >= utf8RuneSelf {
		// не-буквенная руна целиком, чтобы не плодить ошибку на каждый байт
		lx.bumpRune()
	} else {
		lx.cursor.Bump()
	}
	switch ch {
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case ',':
		return emit(token.Comma)
	case ';':
		return emit(token.Semicolon)
	case ':':
		return emit(token.Colon)
	case '=':
		return emit(token.Assign)
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '?':
		return emit(token.Question)
	case '!':
		return emit(token.Bang)
	case '&':
		return emit(token.Amp)
	case '*':
		return emit(token.Star)
	case '_':
		return emit(token.Underscore)
	case '#':
		return emit(token.Hash)
	case '.':
		return emit(token.Dot)
	default:
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
}

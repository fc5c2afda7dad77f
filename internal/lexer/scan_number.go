package lexer

import (
	"tyir/internal/diag"
	"tyir/internal/token"
)

// Целые литералы для длин массивов и const-аргументов:
// 0, 123, 1_000, 0b1010, 0o17, 0xFF, с необязательным суффиксом (16usize).
// Дробные формы типам не нужны: "1.5" даст IntLit, Dot, IntLit.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	digits := 0

	isDigit := isDec
	prefixed := false
	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'b', 'B':
			isDigit = func(b byte) bool { return b == '0' || b == '1' }
			prefixed = true
		case 'o', 'O':
			isDigit = func(b byte) bool { return b >= '0' && b <= '7' }
			prefixed = true
		case 'x', 'X':
			isDigit = isHex
			prefixed = true
		}
	}
	if prefixed {
		lx.cursor.Advance(2)
	}

	for {
		b := lx.cursor.Peek()
		if b == '_' {
			lx.cursor.Bump()
			continue
		}
		if !isDigit(b) {
			break
		}
		lx.cursor.Bump()
		digits++
	}

	// суффикс: u8, usize, i64 ...
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if digits == 0 {
		msg := "expected digits"
		if prefixed {
			msg = "expected digits after base prefix"
		}
		lx.errLex(diag.LexBadNumber, sp, msg)
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.IntLit, Span: sp, Text: text}
}

package lexer

import (
	"tyir/internal/diag"
	"tyir/internal/source"
)

// DefaultMaxTokenLength caps a single token; longer input is reported and skipped.
const DefaultMaxTokenLength = 4096

type Options struct {
	Reporter       diag.Reporter // может быть nil - тогда ошибки игнорируем (но продолжаем лексить)
	MaxTokenLength int           // 0 - DefaultMaxTokenLength
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}

func (lx *Lexer) maxTokenLength() uint32 {
	if lx.opts.MaxTokenLength > 0 {
		return uint32(lx.opts.MaxTokenLength)
	}
	return DefaultMaxTokenLength
}

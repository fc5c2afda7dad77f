package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"tyir/internal/source"
)

// Cursor - байтовая позиция в одном файле. Чтение за концом даёт 0,
// сдвиг за конец упирается в конец.
type Cursor struct {
	src  []byte
	file source.FileID
	off  uint32
	end  uint32
}

// NewCursor creates a cursor at the start of f.
func NewCursor(f *source.File) Cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{src: f.Content, file: f.ID, end: end}
}

// Offset - текущий байтовый offset.
func (c *Cursor) Offset() uint32 { return c.off }

func (c *Cursor) EOF() bool { return c.off >= c.end }

// Peek - текущий байт или 0 на EOF.
func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// PeekAt смотрит на n байт вперёд; 0, если там уже конец файла.
// Одного-двух байт хватает всем многобайтным токенам (`::`, `->`, `...`, `/*`).
func (c *Cursor) PeekAt(n uint32) byte {
	if c.off+n >= c.end {
		return 0
	}
	return c.src[c.off+n]
}

// Bump съедает байт и возвращает его; на EOF - 0.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	return b
}

// Advance сдвигает курсор на n байт, не дальше конца.
func (c *Cursor) Advance(n uint32) {
	c.off = min(c.off+n, c.end)
}

// Eat consumes the next byte if it is b.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.src[c.off] != b {
		return false
	}
	c.off++
	return true
}

// EatSeq consumes seq only if the input continues with all of it.
func (c *Cursor) EatSeq(seq string) bool {
	for i := range len(seq) {
		if c.PeekAt(uint32(i)) != seq[i] {
			return false
		}
	}
	c.off += uint32(len(seq))
	return true
}

// Rest - ещё не прочитанная часть файла (для декодирования рун).
func (c *Cursor) Rest() []byte { return c.src[c.off:c.end] }

// SkipToEnd ставит курсор на EOF.
func (c *Cursor) SkipToEnd() { c.off = c.end }

// Mark - начало токена; SpanFrom превращает его в Span.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.off) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.off}
}

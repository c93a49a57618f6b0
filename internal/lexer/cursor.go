package lexer

import (
	"unicode/utf8"

	"github.com/biomejs/biome-sub019/internal/source"
)

// Cursor is a byte position inside the source text.
type Cursor struct {
	Src string
	Off source.TextSize
}

// NewCursor creates a cursor at the start of src.
func NewCursor(src string) Cursor {
	// проверяем, что смещения помещаются в uint32
	source.SizeOf(len(src))
	return Cursor{Src: src}
}

// EOF проверяет, достигнут ли конец текста
func (c *Cursor) EOF() bool {
	return int(c.Off) >= len(c.Src)
}

// Peek returns the current byte, or 0 at the end.
func (c *Cursor) Peek() byte {
	return c.PeekAt(0)
}

// PeekAt returns the byte n positions ahead, or 0 past the end.
func (c *Cursor) PeekAt(n int) byte {
	i := int(c.Off) + n
	if i >= len(c.Src) {
		return 0
	}
	return c.Src[i]
}

// PeekRune decodes the rune at the current position.
func (c *Cursor) PeekRune() (rune, int) {
	return c.PeekRuneAt(0)
}

// PeekRuneAt decodes the rune starting n bytes ahead.
func (c *Cursor) PeekRuneAt(n int) (rune, int) {
	i := int(c.Off) + n
	if i >= len(c.Src) {
		return utf8.RuneError, 0
	}
	if b := c.Src[i]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRuneInString(c.Src[i:])
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Src[c.Off]
	c.Off++
	return b
}

// BumpRune advances past the current rune. Invalid UTF-8 advances one byte.
func (c *Cursor) BumpRune() {
	_, size := c.PeekRune()
	if size == 0 {
		return
	}
	c.Off += source.TextSize(size)
}

// Advance moves n bytes forward, clamped to the end.
func (c *Cursor) Advance(n int) {
	end := min(int(c.Off)+n, len(c.Src))
	c.Off = source.TextSize(end)
}

// Eat consumes the next byte if it matches b.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Src[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// EatString consumes s if the input continues with it.
func (c *Cursor) EatString(s string) bool {
	if len(c.Src)-int(c.Off) < len(s) || c.Src[c.Off:int(c.Off)+len(s)] != s {
		return false
	}
	c.Off += source.TextSize(len(s))
	return true
}

// Mark это метка, что бы быстро получать диапазон читаемого фрагмента
type Mark source.TextSize

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// RangeFrom returns the range read since m.
func (c *Cursor) RangeFrom(m Mark) source.TextRange {
	return source.NewRange(source.TextSize(m), c.Off)
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = source.TextSize(m)
}

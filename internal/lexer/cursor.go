package lexer

import (
	"fmt"
	"unicode/utf8"

	"jsfront/internal/source"

	"fortio.org/safecast"
)

// Cursor представляет собой позицию в файле
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off; defaults to len(File.Content).
	Limit uint32
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Limit: limit}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	return c.PeekAt(0)
}

// PeekAt returns the byte n positions ahead, or 0 past the limit.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// PeekRune decodes the rune at the cursor. Invalid UTF-8 yields
// utf8.RuneError with size 1.
func (c *Cursor) PeekRune() (r rune, size uint32) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	b := c.File.Content[c.Off]
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	r, n := utf8.DecodeRune(c.File.Content[c.Off:c.Limit])
	return r, uint32(n) //nolint:gosec // n is at most utf8.UTFMax
}

// Rest returns the unread bytes.
func (c *Cursor) Rest() []byte {
	if c.EOF() {
		return nil
	}
	return c.File.Content[c.Off:c.Limit]
}

// HasPrefix reports whether the unread input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	rest := c.Rest()
	return len(rest) >= len(s) && string(rest[:len(s)]) == s
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Skip advances the cursor by n bytes, stopping at the limit.
func (c *Cursor) Skip(n uint32) {
	c.Off = min(c.Off+n, c.Limit)
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// skipLineTerminator consumes one line terminator (CRLF counts as one).
func (c *Cursor) skipLineTerminator() bool {
	switch c.Peek() {
	case '\n':
		c.Off++
		return true
	case '\r':
		c.Off++
		c.Eat('\n')
		return true
	case 0xE2:
		if c.PeekAt(1) == 0x80 && (c.PeekAt(2) == 0xA8 || c.PeekAt(2) == 0xA9) {
			c.Off += 3
			return true
		}
	}
	return false
}

// atLineTerminator reports whether a line terminator starts at the cursor.
func (c *Cursor) atLineTerminator() bool {
	switch c.Peek() {
	case '\n', '\r':
		return true
	case 0xE2:
		return c.PeekAt(1) == 0x80 && (c.PeekAt(2) == 0xA8 || c.PeekAt(2) == 0xA9)
	}
	return false
}

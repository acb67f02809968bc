package lexer

import "jsfront/internal/token"

// regexpChannel scans /body/flags, but only where a regular expression may
// start: at the beginning of input or after a token that cannot end an
// expression (see slashIsDivision). Elsewhere '/' is division and the channel does not match.
// A body that hits a line terminator or the end of input does not match
// either, so the slash falls through to the punctuator channel.
type regexpChannel struct{}

func (regexpChannel) consume(lx *Lexer) bool {
	c := &lx.cursor
	if c.Peek() != '/' || lx.slashIsDivision() {
		return false
	}
	start := c.Mark()
	c.Bump()
	inClass := false
	for {
		if c.EOF() || c.atLineTerminator() {
			c.Reset(start)
			return false
		}
		b := c.Bump()
		switch {
		case b == '\\':
			if c.EOF() || c.atLineTerminator() {
				c.Reset(start)
				return false
			}
			_, size := c.PeekRune()
			c.Skip(size)
		case b == '[':
			inClass = true
		case b == ']':
			inClass = false
		case b == '/' && !inClass:
			for !c.EOF() {
				r, size := c.PeekRune()
				if !token.IsIdentPart(r) {
					break
				}
				c.Skip(size)
			}
			lx.emit(token.RegexpLit, start)
			return true
		}
	}
}

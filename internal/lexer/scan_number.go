package lexer

import "jsfront/internal/token"

// numberChannel takes the longest valid numeric form: decimal with optional
// fraction and exponent, a leading-dot fraction, 0x/0b/0o integers, numeric
// separators between digits and a BigInt 'n' suffix on integers. An
// incomplete prefix such as "0x" or "1e" falls back to its valid head.
type numberChannel struct{}

func (numberChannel) consume(lx *Lexer) bool {
	c := &lx.cursor
	b := c.Peek()
	if !token.IsDecimal(b) && (b != '.' || !token.IsDecimal(c.PeekAt(1))) {
		return false
	}
	start := c.Mark()

	if b == '0' {
		var ok func(byte) bool
		switch c.PeekAt(1) | 0x20 {
		case 'x':
			ok = token.IsHex
		case 'b':
			ok = isBinary
		case 'o':
			ok = isOctal
		}
		if ok != nil {
			c.Skip(2)
			if digits(c, ok) {
				c.Eat('n')
				lx.emit(token.NumericLit, start)
				return true
			}
			c.Reset(start)
		}
	}

	integer := true
	digits(c, token.IsDecimal)
	if c.Peek() == '.' {
		c.Bump()
		digits(c, token.IsDecimal)
		integer = false
	}
	if c.Peek()|0x20 == 'e' {
		m := c.Mark()
		c.Bump()
		if p := c.Peek(); p == '+' || p == '-' {
			c.Bump()
		}
		if digits(c, token.IsDecimal) {
			integer = false
		} else {
			c.Reset(m)
		}
	}
	if integer {
		c.Eat('n')
	}
	lx.emit(token.NumericLit, start)
	return true
}

// digits consumes a digit run where '_' may only sit between two digits.
func digits(c *Cursor, ok func(byte) bool) bool {
	n := 0
	for {
		b := c.Peek()
		switch {
		case ok(b):
			c.Bump()
			n++
		case b == '_' && n > 0 && ok(c.PeekAt(1)):
			c.Bump()
		default:
			return n > 0
		}
	}
}

func isBinary(b byte) bool { return b == '0' || b == '1' }
func isOctal(b byte) bool  { return b >= '0' && b <= '7' }

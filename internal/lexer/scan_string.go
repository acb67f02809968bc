package lexer

import (
	"jsfront/internal/diag"
	"jsfront/internal/token"
)

// stringChannel scans '...' and "..." literals. A raw LF or CR inside the
// quotes, or the end of input, leaves the literal unterminated.
type stringChannel struct{}

func (stringChannel) consume(lx *Lexer) bool {
	c := &lx.cursor
	quote := c.Peek()
	if quote != '"' && quote != '\'' {
		return false
	}
	start := c.Mark()
	c.Bump()
	for !c.EOF() {
		b := c.Peek()
		switch {
		case b == quote:
			c.Bump()
			lx.emit(token.StringLit, start)
			return true
		case b == '\\':
			c.Bump()
			if !c.skipLineTerminator() {
				if c.EOF() {
					break
				}
				_, size := c.PeekRune()
				c.Skip(size)
			}
		case b == '\n' || b == '\r':
			lx.fail(diag.LexUnterminatedString, uint32(start), c.Off, "unterminated string literal")
			return true
		default:
			c.Bump()
		}
	}
	lx.fail(diag.LexUnterminatedString, uint32(start), c.Off, "unterminated string literal")
	return true
}

// templateChannel scans a whole template literal, substitutions included,
// as one token.
type templateChannel struct{}

func (templateChannel) consume(lx *Lexer) bool {
	c := &lx.cursor
	if c.Peek() != '`' {
		return false
	}
	start := c.Mark()
	if !skipTemplate(c) {
		lx.fail(diag.LexUnterminatedTemplate, uint32(start), c.Off, "unterminated template literal")
		return true
	}
	lx.emit(token.TemplateLit, start)
	return true
}

// skipTemplate consumes `...` starting at the opening backtick.
func skipTemplate(c *Cursor) bool {
	c.Bump()
	for !c.EOF() {
		switch b := c.Bump(); b {
		case '`':
			return true
		case '\\':
			c.Bump()
		case '$':
			if c.Eat('{') && !skipSubstitution(c) {
				return false
			}
		}
	}
	return false
}

// skipSubstitution consumes the body of ${...} up to its closing brace,
// stepping over nested strings, templates and comments.
func skipSubstitution(c *Cursor) bool {
	depth := 1
	for !c.EOF() {
		switch {
		case c.HasPrefix("//"):
			skipToLineEnd(c)
			continue
		case c.HasPrefix("/*"):
			c.Skip(2)
			for !c.EOF() && !c.HasPrefix("*/") {
				c.Bump()
			}
			if c.EOF() {
				return false
			}
			c.Skip(2)
			continue
		}
		switch b := c.Peek(); b {
		case '`':
			if !skipTemplate(c) {
				return false
			}
		case '"', '\'':
			c.Bump()
			for !c.EOF() && c.Peek() != b {
				if c.Peek() == '\n' || c.Peek() == '\r' {
					return false
				}
				if c.Bump() == '\\' {
					c.Bump()
				}
			}
			if !c.Eat(b) {
				return false
			}
		case '{':
			depth++
			c.Bump()
		case '}':
			depth--
			c.Bump()
			if depth == 0 {
				return true
			}
		default:
			c.Bump()
		}
	}
	return false
}

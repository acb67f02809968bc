package lexer

import (
	"jsfront/internal/diag"
	"jsfront/internal/token"
)

// whitespaceChannel groups runs of blanks and runs of line terminators into
// separate trivia pieces.
type whitespaceChannel struct{}

func (whitespaceChannel) consume(lx *Lexer) bool {
	c := &lx.cursor
	start := c.Mark()
	if c.atLineTerminator() {
		for c.skipLineTerminator() {
		}
		lx.addTrivia(token.TriviaNewline, start)
		return true
	}
	for !c.EOF() {
		r, size := c.PeekRune()
		if !token.IsWhitespace(r) {
			break
		}
		c.Skip(size)
	}
	if c.Off == uint32(start) {
		return false
	}
	lx.addTrivia(token.TriviaWhitespace, start)
	return true
}

// commentChannel handles //, /* */ and the legacy HTML-like <!-- line form.
type commentChannel struct{}

func (commentChannel) consume(lx *Lexer) bool {
	c := &lx.cursor
	start := c.Mark()
	switch {
	case c.HasPrefix("//"):
		skipToLineEnd(c)
		lx.addTrivia(token.TriviaLineComment, start)
		return true
	case c.HasPrefix("<!--"):
		skipToLineEnd(c)
		lx.addTrivia(token.TriviaHTMLComment, start)
		return true
	case c.HasPrefix("/*"):
		c.Skip(2)
		for !c.EOF() {
			if c.HasPrefix("*/") {
				c.Skip(2)
				lx.addTrivia(token.TriviaBlockComment, start)
				return true
			}
			c.Bump()
		}
		lx.fail(diag.LexUnterminatedBlockComment, uint32(start), c.Off, "unterminated block comment")
		return true
	}
	return false
}

func skipToLineEnd(c *Cursor) {
	for !c.EOF() && !c.atLineTerminator() {
		c.Bump()
	}
}

package lexer

import (
	"jsfront/internal/diag"
)

// channel recognises one lexical category at the cursor. A channel that
// matches advances the cursor and records trivia or emits a token (or sets
// the lexer error); one that does not match leaves the cursor untouched.
type channel interface {
	consume(lx *Lexer) bool
}

// channels are tried in priority order; the first match wins.
var channels = [...]channel{
	whitespaceChannel{},
	commentChannel{},
	stringChannel{},
	templateChannel{},
	regexpChannel{},
	numberChannel{},
	identChannel{},
	punctChannel{},
	unknownChannel{},
}

// unknownChannel is the catch-all: whatever reaches it is a lexical error.
type unknownChannel struct{}

func (unknownChannel) consume(lx *Lexer) bool {
	off := lx.cursor.Off
	r, size := lx.cursor.PeekRune()
	lx.fail(diag.LexUnknownChar, off, off+size, "unknown character "+describeRune(r))
	return true
}

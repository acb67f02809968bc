package lexer

import "jsfront/internal/token"

// punctChannel picks the longest punctuator spelled at the cursor.
type punctChannel struct{}

func (punctChannel) consume(lx *Lexer) bool {
	c := &lx.cursor
	b := c.Peek()
	if b >= 0x80 {
		return false
	}
	for _, p := range token.PunctuatorsFor(b) {
		if !c.HasPrefix(p.Text) {
			continue
		}
		// a?.5:b is a conditional, not optional chaining
		if p.Kind == token.QuestionDot && token.IsDecimal(c.PeekAt(2)) {
			continue
		}
		start := c.Mark()
		c.Skip(uint32(len(p.Text))) //nolint:gosec // punctuators are at most four bytes
		lx.emit(p.Kind, start)
		return true
	}
	return false
}

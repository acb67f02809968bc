package lexer

import (
	"fmt"

	"jsfront/internal/diag"
	"jsfront/internal/source"
)

// LexicalError aborts tokenisation at the first character no channel could
// consume, or inside a construct that was opened but never closed.
type LexicalError struct {
	Code   diag.Code
	Span   source.Span
	Offset uint32
	Pos    source.LineCol
	Char   rune
	Msg    string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error at %d:%d (offset %d): %s", e.Pos.Line, e.Pos.Col, e.Offset, e.Msg)
}

// Diagnostic converts the failure into a diagnostic record.
func (e *LexicalError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, e.Span, e.Msg)
}

func describeRune(r rune) string {
	if r < 0x20 || r == 0x7f || r == 0xFFFD {
		return fmt.Sprintf("U+%04X", r)
	}
	return fmt.Sprintf("%q (U+%04X)", r, r)
}

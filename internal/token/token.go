package token

import (
	"jsfront/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Pos     source.LineCol // start of Span
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, string, template or regexp literal.
func (t Token) IsLiteral() bool { return t.Kind.IsLiteral() }

// IsPunctuator reports whether the token is a punctuation or operator.
func (t Token) IsPunctuator() bool { return t.Kind.IsPunctuator() }

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// NewlineBefore reports whether a line terminator separates this token from
// the previous one.
func (t Token) NewlineBefore() bool {
	for _, tv := range t.Leading {
		if tv.HasNewline() {
			return true
		}
	}
	return false
}

// FullSpan covers the leading trivia and the token itself.
func (t Token) FullSpan() source.Span {
	if len(t.Leading) == 0 {
		return t.Span
	}
	return t.Leading[0].Span.Cover(t.Span)
}

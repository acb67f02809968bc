package token

import "jsfront/internal/source"

// TriviaKind classifies text that carries no syntax.
type TriviaKind uint8

const (
	TriviaWhitespace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	// TriviaHTMLComment is a "<!--" single-line comment.
	TriviaHTMLComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaWhitespace:
		return "Whitespace"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaHTMLComment:
		return "HTMLComment"
	}
	return "Trivia(?)"
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports whether the trivia is any kind of comment.
func (t Trivia) IsComment() bool {
	return t.Kind == TriviaLineComment || t.Kind == TriviaBlockComment || t.Kind == TriviaHTMLComment
}

// HasNewline reports whether the trivia contains a line terminator. Block
// comments spanning lines count as a line terminator for semicolon insertion.
func (t Trivia) HasNewline() bool {
	switch t.Kind {
	case TriviaNewline:
		return true
	case TriviaBlockComment:
		for i := 0; i < len(t.Text); i++ {
			switch t.Text[i] {
			case '\n', '\r':
				return true
			case 0xE2:
				if i+2 < len(t.Text) && t.Text[i+1] == 0x80 && (t.Text[i+2] == 0xA8 || t.Text[i+2] == 0xA9) {
					return true
				}
			}
		}
	}
	return false
}

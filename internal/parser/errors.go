package parser

import (
	"fmt"
	"strings"

	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/source"
	"jsfront/internal/token"
)

// SyntaxError reports the token at which no grammar alternative applied.
type SyntaxError struct {
	Code  diag.Code
	Token token.Token
	Pos   source.LineCol
	// Nodes lists the node kinds (or kind groups) that could start here;
	// Expected spells the same alternatives, plus punctuation, for messages.
	Nodes    []ast.Selector
	Expected []string
	// Opener is the innermost bracket still open at Token, if any.
	Opener *token.Token

	index int
}

func (e *SyntaxError) Message() string {
	var sb strings.Builder
	switch {
	case e.Code == diag.SynInvalidAssignment:
		sb.WriteString("invalid assignment target")
	case e.Token.Kind == token.EOF:
		sb.WriteString("unexpected end of input")
	default:
		fmt.Fprintf(&sb, "unexpected token %q", e.Token.Text)
	}
	if len(e.Expected) > 0 {
		sb.WriteString(", expected ")
		sb.WriteString(strings.Join(e.Expected, " or "))
	}
	return sb.String()
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Pos.Line, e.Pos.Col, e.Message())
}

// Diagnostic converts the failure into a diagnostic record.
func (e *SyntaxError) Diagnostic() diag.Diagnostic {
	d := diag.NewError(e.Code, e.Token.Span, e.Message())
	if e.Opener != nil {
		d = d.WithNote(e.Opener.Span, fmt.Sprintf("unclosed %q opened here", e.Opener.Text))
	}
	return d
}

// innermostOpener walks back from index to the nearest bracket that is not
// closed before it.
func innermostOpener(toks []token.Token, index int) *token.Token {
	depth := 0
	for i := min(index, len(toks)) - 1; i >= 0; i-- {
		switch toks[i].Kind {
		case token.RParen, token.RBrace, token.RBracket:
			depth++
		case token.LParen, token.LBrace, token.LBracket:
			if depth == 0 {
				return &toks[i]
			}
			depth--
		}
	}
	return nil
}

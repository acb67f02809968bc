package token_test

import (
	"testing"

	"jsfront/internal/source"
	"jsfront/internal/token"
)

func TestKindClasses(t *testing.T) {
	keywords := []token.Kind{token.KwBreak, token.KwFunction, token.KwYield, token.KwPublic, token.KwTypeof}
	for _, k := range keywords {
		if !k.IsKeyword() || k.IsPunctuator() || k.IsLiteral() {
			t.Fatalf("%v should be keyword only", k)
		}
	}
	puncts := []token.Kind{token.LBrace, token.Arrow, token.UShrAssign, token.QuestionDot, token.Ellipsis}
	for _, k := range puncts {
		if !k.IsPunctuator() || k.IsKeyword() {
			t.Fatalf("%v should be punctuator only", k)
		}
	}
	lits := []token.Kind{token.NumericLit, token.StringLit, token.TemplateLit, token.RegexpLit}
	for _, k := range lits {
		if !k.IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	if token.Ident.IsKeyword() || token.EOF.IsPunctuator() {
		t.Fatalf("ident/eof misclassified")
	}
}

func TestKindString(t *testing.T) {
	tests := map[token.Kind]string{
		token.KwInstanceof: "instanceof",
		token.UShrAssign:   ">>>=",
		token.Ident:        "Ident",
		token.EOF:          "EOF",
		token.RegexpLit:    "RegexpLit",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestLookupKeyword(t *testing.T) {
	if k, ok := token.LookupKeyword("function"); !ok || k != token.KwFunction {
		t.Fatalf("function not recognised")
	}
	if _, ok := token.LookupKeyword("Function"); ok {
		t.Fatalf("keywords are case sensitive")
	}
	if _, ok := token.LookupKeyword("of"); ok {
		t.Fatalf("'of' is contextual and lexed as identifier")
	}
}

func TestPunctuatorsLongestFirst(t *testing.T) {
	ps := token.PunctuatorsFor('>')
	if len(ps) == 0 || ps[0].Text != ">>>=" {
		t.Fatalf("expected >>>= first, got %+v", ps)
	}
	for i := 1; i < len(ps); i++ {
		if len(ps[i].Text) > len(ps[i-1].Text) {
			t.Fatalf("table not ordered longest first: %+v", ps)
		}
	}
}

func TestEndsExpression(t *testing.T) {
	for _, k := range []token.Kind{token.Ident, token.RParen, token.RBracket, token.NumericLit, token.KwThis,
		token.KwLet, token.KwYield, token.KwAwait, token.KwStatic, token.KwPublic} {
		if !k.EndsExpression() {
			t.Errorf("%v should end an expression", k)
		}
	}
	for _, k := range []token.Kind{token.LParen, token.Assign, token.KwReturn, token.Comma, token.Invalid,
		token.KwDefault, token.KwTypeof, token.Dot} {
		if k.EndsExpression() {
			t.Errorf("%v must not end an expression", k)
		}
	}
}

func TestNewlineBeforeAndFullSpan(t *testing.T) {
	tok := token.Token{
		Kind: token.Ident,
		Span: source.Span{Start: 10, End: 11},
		Text: "a",
		Leading: []token.Trivia{
			{Kind: token.TriviaBlockComment, Span: source.Span{Start: 2, End: 9}, Text: "/* \n */"},
			{Kind: token.TriviaWhitespace, Span: source.Span{Start: 9, End: 10}, Text: " "},
		},
	}
	if !tok.NewlineBefore() {
		t.Fatalf("multi-line block comment must count as newline")
	}
	if got := tok.FullSpan(); got.Start != 2 || got.End != 11 {
		t.Fatalf("FullSpan = %v", got)
	}
}

package lexer_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"jsfront/internal/diag"
	"jsfront/internal/lexer"
	"jsfront/internal/limits"
	"jsfront/internal/source"
	"jsfront/internal/token"
)

// makeTestFile регистрирует виртуальный файл с указанным содержимым
func makeTestFile(input string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.js", []byte(input))
	return fs.Get(id)
}

func tokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	toks, err := lexer.Tokenize(makeTestFile(input), lexer.Options{})
	if err != nil {
		t.Fatalf("Tokenize(%q): unexpected error: %v", input, err)
	}
	return toks
}

// expectKinds сравнивает виды токенов (без EOF)
func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	toks := tokenize(t, input)
	got := make([]token.Kind, 0, len(toks))
	for _, tok := range toks[:len(toks)-1] {
		got = append(got, tok.Kind)
	}
	if !slices.Equal(got, want) {
		t.Fatalf("input %q:\n got  %v\n want %v", input, got, want)
	}
	return toks
}

func reconstruct(toks []token.Token) string {
	var sb strings.Builder
	for _, tok := range toks {
		for _, tr := range tok.Leading {
			sb.WriteString(tr.Text)
		}
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

func TestLosslessRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"   \n\t",
		"var a = 1; // trailing",
		"function f(a, b) {\r\n  return a /* mid */ + b;\r\n}\r\n",
		"x = `a${ {b: '}'}.b }c`;\n<!-- legacy\ny",
		"if (a) /re[/]x/gi.test(s)\u2028z",
		"caf\u00e9 = \"\u4e16\u754c\"",
		"a\u00a0\ufeffb",
	}
	for _, in := range inputs {
		toks := tokenize(t, in)
		if got := reconstruct(toks); got != in {
			t.Errorf("round trip mismatch:\n got  %q\n want %q", got, in)
		}
		if last := toks[len(toks)-1]; last.Kind != token.EOF {
			t.Errorf("input %q: last token is %v, want EOF", in, last.Kind)
		}
	}
}

func TestRegexpVersusDivision(t *testing.T) {
	expectKinds(t, "a / b / c",
		token.Ident, token.Slash, token.Ident, token.Slash, token.Ident)
	toks := expectKinds(t, "(/ab/).test(x)",
		token.LParen, token.RegexpLit, token.RParen, token.Dot, token.Ident,
		token.LParen, token.Ident, token.RParen)
	if toks[1].Text != "/ab/" {
		t.Errorf("regexp text = %q", toks[1].Text)
	}
	toks = expectKinds(t, "/[/]/g", token.RegexpLit)
	if toks[0].Text != "/[/]/g" {
		t.Errorf("regexp text = %q", toks[0].Text)
	}
	expectKinds(t, "return /x/.source",
		token.KwReturn, token.RegexpLit, token.Dot, token.Ident)
	expectKinds(t, "a /= 2", token.Ident, token.SlashAssign, token.NumericLit)
	expectKinds(t, "x = a++ / 2", token.Ident, token.Assign, token.Ident, token.PlusPlus, token.Slash, token.NumericLit)
	expectKinds(t, "} / 2", token.RBrace, token.Slash, token.NumericLit)
}

func TestKeywordNamesBeforeSlash(t *testing.T) {
	expectKinds(t, "a.default / 2 / 3",
		token.Ident, token.Dot, token.KwDefault, token.Slash, token.NumericLit, token.Slash, token.NumericLit)
	expectKinds(t, "this.public / b",
		token.KwThis, token.Dot, token.KwPublic, token.Slash, token.Ident)
	expectKinds(t, "o?.class / 2",
		token.Ident, token.QuestionDot, token.KwClass, token.Slash, token.NumericLit)
	expectKinds(t, "yield / 2 / 1",
		token.KwYield, token.Slash, token.NumericLit, token.Slash, token.NumericLit)
	expectKinds(t, "let / x", token.KwLet, token.Slash, token.Ident)

	// a keyword that is not a property name still starts a regexp
	expectKinds(t, "typeof /x/", token.KwTypeof, token.RegexpLit)
	expectKinds(t, "a.b; typeof /x/",
		token.Ident, token.Dot, token.Ident, token.Semicolon, token.KwTypeof, token.RegexpLit)
}

func TestNumbers(t *testing.T) {
	toks := expectKinds(t, "0x1F 1_000 .5 1e10 2.5e-3 10n 0b101 0o17 3.",
		token.NumericLit, token.NumericLit, token.NumericLit, token.NumericLit,
		token.NumericLit, token.NumericLit, token.NumericLit, token.NumericLit, token.NumericLit)
	want := []string{"0x1F", "1_000", ".5", "1e10", "2.5e-3", "10n", "0b101", "0o17", "3."}
	for i, w := range want {
		if toks[i].Text != w {
			t.Errorf("token %d = %q, want %q", i, toks[i].Text, w)
		}
	}
	toks = expectKinds(t, "1e", token.NumericLit, token.Ident)
	if toks[0].Text != "1" {
		t.Errorf("1e: numeric text = %q", toks[0].Text)
	}
	toks = expectKinds(t, "0x", token.NumericLit, token.Ident)
	if toks[0].Text != "0" || toks[1].Text != "x" {
		t.Errorf("0x: got %q %q", toks[0].Text, toks[1].Text)
	}
	toks = expectKinds(t, "1__0", token.NumericLit, token.Ident)
	if toks[0].Text != "1" {
		t.Errorf("1__0: numeric text = %q", toks[0].Text)
	}
}

func TestIdentifiersAndKeywords(t *testing.T) {
	toks := expectKinds(t, `let café = \u0061bc; if $_ \u{62}`,
		token.KwLet, token.Ident, token.Assign, token.Ident, token.Semicolon,
		token.KwIf, token.Ident, token.Ident)
	if toks[1].Text != "café" {
		t.Errorf("unicode identifier text = %q", toks[1].Text)
	}
	// escaped keyword stays an identifier
	expectKinds(t, `\u0069f`, token.Ident)
	expectKinds(t, "instanceof in of", token.KwInstanceof, token.KwIn, token.Ident)
}

func TestPunctuatorsLongestMatch(t *testing.T) {
	expectKinds(t, "a?.b ?? c >>>= 1",
		token.Ident, token.QuestionDot, token.Ident, token.QuestionQuestion,
		token.Ident, token.UShrAssign, token.NumericLit)
	expectKinds(t, "a?.5:1",
		token.Ident, token.Question, token.NumericLit, token.Colon, token.NumericLit)
	expectKinds(t, "x => ...y === z !== w **= 2",
		token.Ident, token.Arrow, token.Ellipsis, token.Ident, token.EqEqEq,
		token.Ident, token.NotEqEq, token.Ident, token.StarStarAssign, token.NumericLit)
}

func TestStringsAndTemplates(t *testing.T) {
	toks := expectKinds(t, `'it\'s' + "a\"b"`, token.StringLit, token.Plus, token.StringLit)
	if toks[0].Text != `'it\'s'` || toks[2].Text != `"a\"b"` {
		t.Errorf("string texts = %q, %q", toks[0].Text, toks[2].Text)
	}
	expectKinds(t, "'a\\\nb'", token.StringLit)
	toks = expectKinds(t, "`a${ {b:1}.b + `in${x}` }c` + x",
		token.TemplateLit, token.Plus, token.Ident)
	if toks[0].Text != "`a${ {b:1}.b + `in${x}` }c`" {
		t.Errorf("template text = %q", toks[0].Text)
	}
}

func TestCommentsAreTrivia(t *testing.T) {
	toks := expectKinds(t, "// x\n/* y */ <!-- z\nfoo", token.Ident)
	var kinds []token.TriviaKind
	for _, tr := range toks[0].Leading {
		kinds = append(kinds, tr.Kind)
	}
	want := []token.TriviaKind{
		token.TriviaLineComment, token.TriviaNewline, token.TriviaBlockComment,
		token.TriviaWhitespace, token.TriviaHTMLComment, token.TriviaNewline,
	}
	if !slices.Equal(kinds, want) {
		t.Fatalf("trivia kinds = %v, want %v", kinds, want)
	}
	if !toks[0].NewlineBefore() {
		t.Errorf("foo should follow a newline")
	}
}

func TestEOFCarriesTrailingTrivia(t *testing.T) {
	toks := tokenize(t, "x // end")
	eof := toks[len(toks)-1]
	if eof.Kind != token.EOF {
		t.Fatalf("last token = %v", eof.Kind)
	}
	if len(eof.Leading) != 2 || eof.Leading[1].Kind != token.TriviaLineComment {
		t.Fatalf("EOF leading = %+v", eof.Leading)
	}
	if eof.Span.Start != 8 || eof.Pos != (source.LineCol{Line: 1, Col: 9}) {
		t.Errorf("EOF position = %v %v", eof.Span, eof.Pos)
	}
}

func TestTokenPositions(t *testing.T) {
	toks := tokenize(t, "a\r\n  bb\u2028c")
	want := []source.LineCol{{Line: 1, Col: 1}, {Line: 2, Col: 3}, {Line: 3, Col: 1}}
	for i, w := range want {
		if toks[i].Pos != w {
			t.Errorf("token %d (%q) at %v, want %v", i, toks[i].Text, toks[i].Pos, w)
		}
	}
}

func TestUnknownCharacter(t *testing.T) {
	_, err := lexer.Tokenize(makeTestFile("a # b"), lexer.Options{})
	var lexErr *lexer.LexicalError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected LexicalError, got %v", err)
	}
	if lexErr.Offset != 2 || lexErr.Char != '#' || lexErr.Code != diag.LexUnknownChar {
		t.Errorf("error = %+v", lexErr)
	}
	if lexErr.Pos != (source.LineCol{Line: 1, Col: 3}) {
		t.Errorf("pos = %v", lexErr.Pos)
	}
}

func TestUnterminatedConstructs(t *testing.T) {
	cases := []struct {
		input  string
		code   diag.Code
		offset uint32
	}{
		{"x = /* open", diag.LexUnterminatedBlockComment, 4},
		{"y = 'abc\n'", diag.LexUnterminatedString, 4},
		{"z = \"abc", diag.LexUnterminatedString, 4},
		{"w = `a${b", diag.LexUnterminatedTemplate, 4},
	}
	for _, tc := range cases {
		_, err := lexer.Tokenize(makeTestFile(tc.input), lexer.Options{})
		var lexErr *lexer.LexicalError
		if !errors.As(err, &lexErr) {
			t.Errorf("%q: expected LexicalError, got %v", tc.input, err)
			continue
		}
		if lexErr.Code != tc.code || lexErr.Offset != tc.offset {
			t.Errorf("%q: got %v at %d, want %v at %d", tc.input, lexErr.Code, lexErr.Offset, tc.code, tc.offset)
		}
	}
}

func TestErrorIsSticky(t *testing.T) {
	bag := diag.NewBag(0)
	lx := lexer.New(makeTestFile("a @"), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	if tok, err := lx.Next(); err != nil || tok.Kind != token.Ident {
		t.Fatalf("first token: %v %v", tok.Kind, err)
	}
	_, err1 := lx.Next()
	_, err2 := lx.Next()
	if err1 == nil || err1 != err2 {
		t.Fatalf("errors = %v, %v", err1, err2)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexUnknownChar {
		t.Errorf("reported diagnostics = %+v", bag.Items())
	}
}

func TestMaxTokens(t *testing.T) {
	_, err := lexer.Tokenize(makeTestFile("a b c"), lexer.Options{MaxTokens: 2})
	var limErr *limits.ResourceLimitError
	if !errors.As(err, &limErr) {
		t.Fatalf("expected ResourceLimitError, got %v", err)
	}
	if limErr.Resource != limits.TokenCount || limErr.Limit != 2 || limErr.Span.Start != 4 {
		t.Errorf("error = %+v", limErr)
	}
	if _, err := lexer.Tokenize(makeTestFile("a b"), lexer.Options{MaxTokens: 2}); err != nil {
		t.Errorf("two tokens within limit: %v", err)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx := lexer.New(makeTestFile("a b"), lexer.Options{})
	p, _ := lx.Peek()
	n, _ := lx.Next()
	if p.Text != "a" || n.Text != "a" {
		t.Fatalf("peek %q next %q", p.Text, n.Text)
	}
	for range 3 {
		if tok, _ := lx.Next(); tok.Kind == token.EOF && len(tok.Leading) != 0 {
			t.Fatalf("repeated EOF must not repeat trivia")
		}
	}
}

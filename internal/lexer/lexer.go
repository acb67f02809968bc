package lexer

import (
	"jsfront/internal/diag"
	"jsfront/internal/limits"
	"jsfront/internal/source"
	"jsfront/internal/token"
)

// Lexer splits a file into significant tokens. Whitespace and comments are
// collected as trivia and attached to the following token; trivia after the
// last token ends up on EOF, so concatenating every trivia and token text
// reproduces the input byte for byte.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	hold   []token.Trivia // накопленные leading trivia
	look   *token.Token   // 1 элементный буфер для токена
	tok    token.Token    // result of the last successful channel
	ready  bool
	prev   token.Kind // kind of the last significant token, for regexp lookback
	member bool       // prev directly follows '.' or '?.'
	count  int
	err    error
	eof    *token.Token
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		prev:   token.Invalid,
	}
}

// Tokenize scans the whole file. The returned slice always ends with EOF on
// success; on failure it holds the tokens produced before the error.
func Tokenize(file *source.File, opts Options) ([]token.Token, error) {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok, err := lx.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF всегда возвращает EOF; после ошибки всегда возвращает ту же ошибку.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok, nil
	}
	if lx.err != nil {
		return token.Token{Kind: token.Invalid}, lx.err
	}
	if lx.eof != nil {
		return *lx.eof, nil
	}

	for !lx.ready {
		if lx.cursor.EOF() {
			lx.emitEOF()
			break
		}
		for _, ch := range channels {
			if ch.consume(lx) {
				break
			}
		}
		if lx.err != nil {
			lx.reportFailure()
			return token.Token{Kind: token.Invalid}, lx.err
		}
	}
	lx.ready = false
	return lx.tok, nil
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() (token.Token, error) {
	t, err := lx.Next()
	if err != nil {
		return t, err
	}
	lx.look = &t
	return t, nil
}

func (lx *Lexer) emit(kind token.Kind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.count++
	if limit := lx.opts.MaxTokens; limit > 0 && lx.count > limit {
		lx.err = &limits.ResourceLimitError{
			Resource: limits.TokenCount,
			Limit:    limit,
			Span:     sp,
			Pos:      lx.file.Position(sp.Start),
		}
		return
	}
	lx.tok = token.Token{
		Kind:    kind,
		Span:    sp,
		Text:    string(lx.file.Content[sp.Start:sp.End]),
		Pos:     lx.file.Position(sp.Start),
		Leading: lx.hold,
	}
	lx.hold = nil
	lx.member = lx.prev == token.Dot || lx.prev == token.QuestionDot
	lx.prev = kind
	lx.ready = true
}

// slashIsDivision decides the '/' ambiguity from the previous tokens. Any
// reserved word after '.' or '?.' is a property name.
func (lx *Lexer) slashIsDivision() bool {
	return lx.prev.EndsExpression() || (lx.member && lx.prev.IsKeyword())
}

func (lx *Lexer) emitEOF() {
	off := lx.cursor.Off
	lx.tok = token.Token{
		Kind:    token.EOF,
		Span:    source.Span{File: lx.file.ID, Start: off, End: off},
		Pos:     lx.file.Position(off),
		Leading: lx.hold,
	}
	lx.hold = nil
	eof := lx.tok
	eof.Leading = nil
	lx.eof = &eof
	lx.ready = true
}

func (lx *Lexer) addTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}

// fail records a lexical error anchored at off and covering [off, end).
func (lx *Lexer) fail(code diag.Code, off, end uint32, msg string) {
	r := rune(0)
	if off < lx.cursor.Limit {
		c := Cursor{File: lx.file, Off: off, Limit: lx.cursor.Limit}
		r, _ = c.PeekRune()
	}
	lx.err = &LexicalError{
		Code:   code,
		Span:   source.Span{File: lx.file.ID, Start: off, End: max(end, off)},
		Offset: off,
		Pos:    lx.file.Position(off),
		Char:   r,
		Msg:    msg,
	}
}

type diagnoser interface {
	Diagnostic() diag.Diagnostic
}

func (lx *Lexer) reportFailure() {
	if lx.opts.Reporter == nil {
		return
	}
	if d, ok := lx.err.(diagnoser); ok {
		dg := d.Diagnostic()
		lx.opts.Reporter.Report(dg.Code, dg.Severity, dg.Primary, dg.Message, dg.Notes)
	}
}

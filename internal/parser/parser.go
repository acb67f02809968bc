package parser

import (
	"fmt"

	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/limits"
	"jsfront/internal/source"
	"jsfront/internal/token"
)

type Options struct {
	// MaxDepth bounds syntactic nesting; zero selects limits.DefaultMaxDepth.
	MaxDepth int
	// Reporter receives the diagnostic of a failed parse; may be nil.
	Reporter diag.Reporter
}

// Parser — состояние парсера на один файл
type Parser struct {
	file  *source.File
	toks  []token.Token
	pos   int
	b     *ast.Builder
	opts  Options
	depth int
	err   error

	noIn        bool // 'in' is not a binary operator (for-statement init)
	inFunction  bool
	inGenerator bool
	inAsync     bool

	// openers of '(' already known not to start arrow parameters
	notArrow map[int]struct{}
}

// Parse builds the concrete syntax tree of a whole file from its tokens,
// which must end with EOF. On failure no tree is returned.
func Parse(file *source.File, tokens []token.Token, opts Options) (*ast.Tree, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		return nil, fmt.Errorf("parser: token stream of %s does not end with EOF", file.Path)
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = limits.DefaultMaxDepth
	}
	p := &Parser{
		file:     file,
		toks:     tokens,
		b:        ast.NewBuilder(file, tokens),
		opts:     opts,
		notArrow: make(map[int]struct{}),
	}
	if !p.parseProgram() {
		if p.err == nil {
			p.fail(diag.SynUnexpectedToken)
		}
		if se, ok := p.err.(*SyntaxError); ok && se.Code != diag.SynInvalidAssignment {
			se.Opener = innermostOpener(p.toks, se.index)
		}
		p.reportFailure()
		return nil, p.err
	}
	return p.b.Finish(), nil
}

// parseProgram — основной цикл верхнего уровня, до EOF.
func (p *Parser) parseProgram() bool {
	for !p.at(token.EOF) {
		if p.at(token.RBrace) {
			return p.fail(diag.SynTrailingInput)
		}
		var ok bool
		switch next := p.peekAt(1).Kind; {
		case p.at(token.KwImport) && next != token.LParen && next != token.Dot:
			ok = p.parseImport()
		case p.at(token.KwExport):
			ok = p.parseExport()
		default:
			ok = p.parseStatement()
		}
		if !ok {
			return false
		}
	}
	p.advance()
	return true
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekAt looks n tokens ahead, saturating at EOF.
func (p *Parser) peekAt(n int) token.Token {
	return p.toks[min(p.pos+n, len(p.toks)-1)]
}

func (p *Parser) at(k token.Kind) bool {
	return p.toks[p.pos].Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	k := p.toks[p.pos].Kind
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// atWord matches an identifier with the given text (contextual words such as
// "of", "get", "async").
func (p *Parser) atWord(text string) bool {
	t := p.toks[p.pos]
	return t.Kind == token.Ident && t.Text == text
}

// advance — съедает текущий токен и добавляет его в строящийся узел
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	p.b.PushToken(ast.TokenIndex(p.pos)) //nolint:gosec // token count fits uint32
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

// expect — ожидаем конкретный токен, иначе фиксируем ошибку.
func (p *Parser) expect(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return p.fail(diag.SynUnexpectedToken, quoteKind(k))
}

// semicolon applies automatic semicolon insertion: an explicit ';' is
// consumed, otherwise one is assumed before '}', at EOF or after a line
// terminator.
func (p *Parser) semicolon() bool {
	if p.at(token.Semicolon) {
		p.advance()
		return true
	}
	if p.atAny(token.RBrace, token.EOF) || p.peek().NewlineBefore() {
		return true
	}
	return p.fail(diag.SynExpectSemicolon, "';'")
}

// fail records the first syntax error at the current token.
func (p *Parser) fail(code diag.Code, expected ...string) bool {
	return p.failNodes(code, nil, expected...)
}

// failNodes is fail for a position where one of nodes had to start.
func (p *Parser) failNodes(code diag.Code, nodes []ast.Selector, expected ...string) bool {
	if p.err == nil {
		tok := p.peek()
		p.err = &SyntaxError{Code: code, Token: tok, Pos: tok.Pos, Nodes: nodes, Expected: expected, index: p.pos}
	}
	return false
}

// enter guards one level of syntactic nesting; callers defer leave.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth > p.opts.MaxDepth {
		p.depth--
		if p.err == nil {
			tok := p.peek()
			p.err = &limits.ResourceLimitError{
				Resource: limits.NestingDepth,
				Limit:    p.opts.MaxDepth,
				Span:     tok.Span,
				Pos:      tok.Pos,
			}
		}
		return false
	}
	return true
}

func (p *Parser) leave() {
	p.depth--
}

type state struct {
	pos  int
	snap ast.Snapshot
	err  error
}

func (p *Parser) save() state {
	return state{pos: p.pos, snap: p.b.Mark(), err: p.err}
}

func (p *Parser) restore(s state) {
	p.pos = s.pos
	p.b.Reset(s.snap)
	p.err = s.err
}

// speculate runs fn and rewinds every effect of it when it fails.
func (p *Parser) speculate(fn func() bool) bool {
	s := p.save()
	if fn() {
		return true
	}
	p.restore(s)
	return false
}

// allowIn runs fn with 'in' restored as a binary operator.
func (p *Parser) allowIn(fn func() bool) bool {
	saved := p.noIn
	p.noIn = false
	ok := fn()
	p.noIn = saved
	return ok
}

func (p *Parser) reportFailure() {
	if p.opts.Reporter == nil || p.err == nil {
		return
	}
	if d, ok := p.err.(interface{ Diagnostic() diag.Diagnostic }); ok {
		dg := d.Diagnostic()
		p.opts.Reporter.Report(dg.Code, dg.Severity, dg.Primary, dg.Message, dg.Notes)
	}
}

func quoteKind(k token.Kind) string {
	return "'" + k.String() + "'"
}

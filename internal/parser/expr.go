package parser

import (
	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/token"
)

// parseExpression - главная точка входа для парсинга выражений (с запятой)
func (p *Parser) parseExpression() bool {
	m := p.b.Open()
	if !p.parseAssignment() {
		return false
	}
	if !p.at(token.Comma) {
		return true
	}
	for p.at(token.Comma) {
		p.advance()
		if !p.parseAssignment() {
			return false
		}
	}
	p.b.Close(ast.SequenceExpression, m)
	return true
}

// parseAssignment handles arrow functions, yield, conditional and (compound)
// assignment, right-associative.
func (p *Parser) parseAssignment() bool {
	if !p.enter() {
		return false
	}
	defer p.leave()

	if p.at(token.KwYield) && p.inGenerator {
		return p.parseYield()
	}
	if ok, matched := p.tryArrow(); matched {
		return ok
	}
	m := p.b.Open()
	if !p.parseConditional() {
		return false
	}
	op := p.peek().Kind
	if !isAssignOp(op) {
		return true
	}
	if !isAssignTarget(p.b.Kind(p.b.Last()), op) {
		return p.fail(diag.SynInvalidAssignment)
	}
	p.advance()
	if !p.parseAssignment() {
		return false
	}
	p.b.Close(ast.AssignmentExpression, m)
	return true
}

// tryArrow recognises the arrow function forms. matched is false when the
// input does not start an arrow function; nothing is consumed then.
func (p *Parser) tryArrow() (ok, matched bool) {
	t0, t1 := p.peek(), p.peekAt(1)

	// x => ...
	if p.isIdentifierToken(t0) && t1.Kind == token.Arrow && !t1.NewlineBefore() {
		m := p.b.Open()
		p.parseBindingIdentifier()
		return p.finishArrow(m, false), true
	}
	isAsync := t0.Kind == token.Ident && t0.Text == "async" && !t1.NewlineBefore()
	// async x => ...
	if isAsync && p.isIdentifierToken(t1) && p.peekAt(2).Kind == token.Arrow {
		m := p.b.Open()
		p.advance()
		p.parseBindingIdentifier()
		return p.finishArrow(m, true), true
	}
	// (params) => ... / async (params) => ...
	isAsync = isAsync && t1.Kind == token.LParen
	if t0.Kind != token.LParen && !isAsync {
		return false, false
	}
	open := p.pos
	if isAsync {
		open++
	}
	if _, known := p.notArrow[open]; known {
		return false, false
	}
	m := p.b.Open()
	params := p.speculate(func() bool {
		if isAsync {
			p.advance()
		}
		saved := p.pushFunction(isAsync, false)
		ok := p.parseFormalParameters()
		p.popFunction(saved)
		return ok && p.at(token.Arrow) && !p.peek().NewlineBefore()
	})
	if !params {
		p.notArrow[open] = struct{}{}
		return false, false
	}
	return p.finishArrow(m, isAsync), true
}

// finishArrow consumes '=>' and the body; the parameters are already pushed.
func (p *Parser) finishArrow(m ast.Marker, async bool) bool {
	if !p.expect(token.Arrow) {
		return false
	}
	saved := p.pushFunction(async, false)
	var ok bool
	if p.at(token.LBrace) {
		ok = p.parseFunctionBody()
	} else {
		p.noIn = saved.noIn
		ok = p.parseAssignment()
	}
	p.popFunction(saved)
	if !ok {
		return false
	}
	p.b.Close(ast.ArrowFunction, m)
	return true
}

func (p *Parser) parseYield() bool {
	m := p.b.Open()
	p.advance()
	next := p.peek()
	if !next.NewlineBefore() {
		if next.Kind == token.Star {
			p.advance()
			if !p.parseAssignment() {
				return false
			}
		} else if startsOperand(next.Kind) {
			if !p.parseAssignment() {
				return false
			}
		}
	}
	p.b.Close(ast.YieldExpression, m)
	return true
}

// startsOperand reports whether k may begin the optional operand of yield;
// closers, separators and 'in' cannot.
func startsOperand(k token.Kind) bool {
	switch k {
	case token.RParen, token.RBracket, token.RBrace, token.Comma, token.Semicolon,
		token.Colon, token.EOF, token.KwIn:
		return false
	}
	return true
}

func (p *Parser) parseConditional() bool {
	m := p.b.Open()
	if !p.parseBinary(precCoalesce) {
		return false
	}
	if !p.at(token.Question) {
		return true
	}
	p.advance()
	if !p.allowIn(p.parseAssignment) || !p.expect(token.Colon) || !p.parseAssignment() {
		return false
	}
	p.b.Close(ast.ConditionalExpression, m)
	return true
}

// parseBinary реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinary(minPrec int) bool {
	if !p.enter() {
		return false
	}
	defer p.leave()

	m := p.b.Open()
	if !p.parseUnary() {
		return false
	}
	for {
		op := p.peek().Kind
		prec, rightAssoc := binaryPrec(op)
		if prec == precNone || prec < minPrec || op == token.KwIn && p.noIn {
			return true
		}
		p.advance()
		next := prec + 1
		if rightAssoc {
			next = prec
		}
		if !p.parseBinary(next) {
			return false
		}
		p.b.Close(binaryNodeKind(op), m)
	}
}

// parseUnary обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnary() bool {
	tok := p.peek()
	var kind ast.Kind
	switch {
	case isUnaryOp(tok.Kind):
		kind = ast.UnaryExpression
	case tok.Kind == token.PlusPlus || tok.Kind == token.MinusMinus:
		kind = ast.UpdateExpression
	case tok.Kind == token.KwAwait && p.inAsync:
		kind = ast.AwaitExpression
	default:
		return p.parsePostfix()
	}
	if !p.enter() {
		return false
	}
	defer p.leave()
	m := p.b.Open()
	p.advance()
	if !p.parseUnary() {
		return false
	}
	if kind == ast.UpdateExpression && !isSimpleTarget(p.b.Kind(p.b.Last())) {
		return p.fail(diag.SynInvalidAssignment)
	}
	p.b.Close(kind, m)
	return true
}

// parsePostfix parses `x++` / `x--` with no line terminator before the operator.
func (p *Parser) parsePostfix() bool {
	m := p.b.Open()
	if !p.parseLeftHandSide() {
		return false
	}
	next := p.peek()
	if (next.Kind == token.PlusPlus || next.Kind == token.MinusMinus) && !next.NewlineBefore() {
		if !isSimpleTarget(p.b.Kind(p.b.Last())) {
			return p.fail(diag.SynInvalidAssignment)
		}
		p.advance()
		p.b.Close(ast.UpdateExpression, m)
	}
	return true
}

func (p *Parser) parseLeftHandSide() bool {
	return p.parseMemberExpression(true)
}

// parseMemberExpression parses a primary followed by member accesses,
// calls (when allowed), optional chains and tagged templates.
func (p *Parser) parseMemberExpression(allowCall bool) bool {
	m := p.b.Open()
	switch {
	case p.at(token.KwNew):
		if !p.parseNew() {
			return false
		}
	case p.at(token.KwSuper):
		sm := p.b.Open()
		p.advance()
		p.b.Close(ast.SuperExpression, sm)
	default:
		if !p.parsePrimary() {
			return false
		}
	}
	for {
		switch p.peek().Kind {
		case token.Dot:
			p.advance()
			if !p.parseIdentifierName() {
				return false
			}
			p.b.Close(ast.MemberExpression, m)
		case token.QuestionDot:
			if !allowCall {
				return true
			}
			p.advance()
			switch {
			case p.at(token.LParen):
				if !p.parseArguments() {
					return false
				}
				p.b.Close(ast.CallExpression, m)
			case p.at(token.LBracket):
				if !p.parseComputedMember() {
					return false
				}
				p.b.Close(ast.ComputedMemberExpression, m)
			default:
				if !p.parseIdentifierName() {
					return false
				}
				p.b.Close(ast.MemberExpression, m)
			}
		case token.LBracket:
			if !p.parseComputedMember() {
				return false
			}
			p.b.Close(ast.ComputedMemberExpression, m)
		case token.LParen:
			if !allowCall {
				return true
			}
			if !p.parseArguments() {
				return false
			}
			p.b.Close(ast.CallExpression, m)
		case token.TemplateLit:
			tm := p.b.Open()
			p.advance()
			p.b.Close(ast.TemplateExpression, tm)
			p.b.Close(ast.TaggedTemplate, m)
		default:
			return true
		}
	}
}

func (p *Parser) parseComputedMember() bool {
	p.advance()
	return p.allowIn(p.parseExpression) && p.expect(token.RBracket)
}

// parseNew parses `new Callee [Arguments]` or `new.target`.
func (p *Parser) parseNew() bool {
	if !p.enter() {
		return false
	}
	defer p.leave()
	m := p.b.Open()
	p.advance()
	if p.at(token.Dot) {
		p.advance()
		if !p.parseIdentifierName() {
			return false
		}
		p.b.Close(ast.MemberExpression, m)
		return true
	}
	if !p.parseMemberExpression(false) {
		return false
	}
	if p.at(token.LParen) && !p.parseArguments() {
		return false
	}
	p.b.Close(ast.NewExpression, m)
	return true
}

func (p *Parser) parseArguments() bool {
	m := p.b.Open()
	p.advance()
	for !p.at(token.RParen) {
		if !p.parseSpreadOrAssignment() {
			return false
		}
		if !p.at(token.RParen) && !p.expect(token.Comma) {
			return false
		}
	}
	p.advance()
	p.b.Close(ast.Arguments, m)
	return true
}

func (p *Parser) parseSpreadOrAssignment() bool {
	if !p.at(token.Ellipsis) {
		return p.allowIn(p.parseAssignment)
	}
	m := p.b.Open()
	p.advance()
	if !p.allowIn(p.parseAssignment) {
		return false
	}
	p.b.Close(ast.SpreadElement, m)
	return true
}

func (p *Parser) parsePrimary() bool {
	tok := p.peek()
	m := p.b.Open()
	var kind ast.Kind
	switch tok.Kind {
	case token.KwThis:
		kind = ast.ThisExpression
	case token.KwNull:
		kind = ast.NullLiteral
	case token.KwTrue, token.KwFalse:
		kind = ast.BooleanLiteral
	case token.NumericLit:
		kind = ast.NumericLiteral
	case token.StringLit:
		kind = ast.StringLiteral
	case token.RegexpLit:
		kind = ast.RegexpLiteral
	case token.TemplateLit:
		kind = ast.TemplateExpression
	case token.LParen:
		p.advance()
		if !p.allowIn(p.parseExpression) || !p.expect(token.RParen) {
			return false
		}
		p.b.Close(ast.ParenthesizedExpression, m)
		return true
	case token.LBracket:
		return p.parseArrayLiteral()
	case token.LBrace:
		return p.parseObjectLiteral()
	case token.KwFunction:
		return p.parseFunction(ast.FunctionExpression, false)
	case token.KwClass:
		return p.parseClass(ast.ClassExpression, false)
	default:
		switch {
		case p.atAsyncFunction():
			return p.parseFunction(ast.FunctionExpression, false)
		case p.isIdentifierToken(tok):
			kind = ast.Identifier
		default:
			return p.failNodes(diag.SynExpectExpression, []ast.Selector{ast.GroupExpression}, "expression")
		}
	}
	p.advance()
	p.b.Close(kind, m)
	return true
}

// parseArrayLiteral parses elements, holes (bare commas) and spreads.
func (p *Parser) parseArrayLiteral() bool {
	m := p.b.Open()
	p.advance()
	for !p.at(token.RBracket) {
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if !p.parseSpreadOrAssignment() {
			return false
		}
		if !p.at(token.RBracket) && !p.expect(token.Comma) {
			return false
		}
	}
	p.advance()
	p.b.Close(ast.ArrayLiteral, m)
	return true
}

func (p *Parser) parseObjectLiteral() bool {
	m := p.b.Open()
	p.advance()
	for !p.at(token.RBrace) {
		if !p.parsePropertyDefinition() {
			return false
		}
		if !p.at(token.RBrace) && !p.expect(token.Comma) {
			return false
		}
	}
	p.advance()
	p.b.Close(ast.ObjectLiteral, m)
	return true
}

// parsePropertyDefinition parses spread, shorthand (with an optional cover
// initializer), method, accessor or `key: value`.
func (p *Parser) parsePropertyDefinition() bool {
	t0, t1 := p.peek(), p.peekAt(1)
	if t0.Kind == token.Ellipsis {
		return p.parseSpreadOrAssignment()
	}
	m := p.b.Open()
	if p.isIdentifierToken(t0) && (t1.Kind == token.Comma || t1.Kind == token.RBrace || t1.Kind == token.Assign) {
		im := p.b.Open()
		p.advance()
		p.b.Close(ast.Identifier, im)
		if p.at(token.Assign) {
			p.advance()
			if !p.allowIn(p.parseAssignment) {
				return false
			}
		}
		p.b.Close(ast.ShorthandProperty, m)
		return true
	}
	accessor := (t0.Text == "get" || t0.Text == "set") && t0.Kind == token.Ident && isPropertyNameStart(t1)
	asyncMethod := t0.Kind == token.Ident && t0.Text == "async" && !t1.NewlineBefore() &&
		(t1.Kind == token.Star || isPropertyNameStart(t1))
	if t0.Kind == token.Star || accessor || asyncMethod {
		return p.parseMethod(false)
	}
	if !p.parsePropertyName() {
		return false
	}
	if p.at(token.LParen) {
		if !p.parseFunctionRest(false, false) {
			return false
		}
		p.b.Close(ast.MethodDefinition, m)
		return true
	}
	if !p.expect(token.Colon) || !p.allowIn(p.parseAssignment) {
		return false
	}
	p.b.Close(ast.PropertyAssignment, m)
	return true
}

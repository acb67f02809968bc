package parser

import (
	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/token"
)

// parseStatement выбирает по первому токену нужный распознаватель инструкции.
// Declarations are accepted wherever a statement is.
func (p *Parser) parseStatement() bool {
	if !p.enter() {
		return false
	}
	defer p.leave()

	tok := p.peek()
	switch tok.Kind {
	case token.LBrace:
		return p.parseBlock(ast.BlockStatement)
	case token.Semicolon:
		m := p.b.Open()
		p.advance()
		p.b.Close(ast.EmptyStatement, m)
		return true
	case token.KwVar, token.KwConst:
		return p.parseVariableStatement()
	case token.KwLet:
		if p.letStartsDeclaration() {
			return p.parseVariableStatement()
		}
	case token.KwFunction:
		return p.parseFunction(ast.FunctionDeclaration, true)
	case token.KwClass:
		return p.parseClass(ast.ClassDeclaration, true)
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDoWhile()
	case token.KwContinue:
		return p.parseJump(ast.ContinueStatement)
	case token.KwBreak:
		return p.parseJump(ast.BreakStatement)
	case token.KwReturn:
		return p.parseReturn()
	case token.KwWith:
		return p.parseWith()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwThrow:
		return p.parseThrow()
	case token.KwTry:
		return p.parseTry()
	case token.KwDebugger:
		m := p.b.Open()
		p.advance()
		if !p.semicolon() {
			return false
		}
		p.b.Close(ast.DebuggerStatement, m)
		return true
	case token.Ident:
		if p.atAsyncFunction() {
			return p.parseFunction(ast.FunctionDeclaration, true)
		}
	}
	if p.isIdentifierToken(tok) && p.peekAt(1).Kind == token.Colon {
		return p.parseLabelled()
	}
	return p.parseExpressionStatement()
}

// letStartsDeclaration distinguishes `let x`, `let [a]`, `let {a}` from
// `let` used as a plain identifier.
func (p *Parser) letStartsDeclaration() bool {
	next := p.peekAt(1)
	return next.Kind == token.LBracket || next.Kind == token.LBrace || p.isIdentifierToken(next)
}

func (p *Parser) atAsyncFunction() bool {
	next := p.peekAt(1)
	return p.atWord("async") && next.Kind == token.KwFunction && !next.NewlineBefore()
}

func (p *Parser) parseBlock(kind ast.Kind) bool {
	m := p.b.Open()
	if !p.expect(token.LBrace) {
		return false
	}
	for !p.atAny(token.RBrace, token.EOF) {
		if !p.parseStatement() {
			return false
		}
	}
	if !p.expect(token.RBrace) {
		return false
	}
	p.b.Close(kind, m)
	return true
}

func (p *Parser) parseExpressionStatement() bool {
	m := p.b.Open()
	if !p.parseExpression() || !p.semicolon() {
		return false
	}
	p.b.Close(ast.ExpressionStatement, m)
	return true
}

func (p *Parser) parseVariableStatement() bool {
	m := p.b.Open()
	if !p.parseDeclarationList() || !p.semicolon() {
		return false
	}
	p.b.Close(ast.VariableStatement, m)
	return true
}

// parseDeclarationList parses `var|let|const` declarator (, declarator)*,
// pushed into the enclosing node.
func (p *Parser) parseDeclarationList() bool {
	p.advance()
	for {
		if !p.parseVariableDeclarator() {
			return false
		}
		if !p.at(token.Comma) {
			return true
		}
		p.advance()
	}
}

func (p *Parser) parseVariableDeclarator() bool {
	m := p.b.Open()
	if !p.parseBindingTarget() {
		return false
	}
	if p.at(token.Assign) {
		p.advance()
		if !p.parseAssignment() {
			return false
		}
	}
	p.b.Close(ast.VariableDeclarator, m)
	return true
}

// parseParenCondition parses the `( Expression )` of if/while/with/switch.
func (p *Parser) parseParenCondition() bool {
	return p.expect(token.LParen) && p.allowIn(p.parseExpression) && p.expect(token.RParen)
}

func (p *Parser) parseIf() bool {
	m := p.b.Open()
	p.advance()
	if !p.parseParenCondition() || !p.parseStatement() {
		return false
	}
	if p.at(token.KwElse) {
		p.advance()
		if !p.parseStatement() {
			return false
		}
	}
	p.b.Close(ast.IfStatement, m)
	return true
}

func (p *Parser) parseWhile() bool {
	m := p.b.Open()
	p.advance()
	if !p.parseParenCondition() || !p.parseStatement() {
		return false
	}
	p.b.Close(ast.WhileStatement, m)
	return true
}

// parseDoWhile: the trailing ';' of do-while is always optional.
func (p *Parser) parseDoWhile() bool {
	m := p.b.Open()
	p.advance()
	if !p.parseStatement() || !p.expect(token.KwWhile) || !p.parseParenCondition() {
		return false
	}
	if p.at(token.Semicolon) {
		p.advance()
	}
	p.b.Close(ast.DoWhileStatement, m)
	return true
}

// parseFor tries the for-in/for-of head first and falls back to the
// three-clause form when no 'in' or 'of' follows the left side.
func (p *Parser) parseFor() bool {
	m := p.b.Open()
	p.advance()
	if !p.expect(token.LParen) {
		return false
	}
	kind := ast.ForStatement
	iteration := p.speculate(func() bool {
		k, ok := p.parseForInOfHead()
		kind = k
		return ok
	})
	if !iteration {
		kind = ast.ForStatement
		if !p.parseForClauses() {
			return false
		}
	}
	if !p.parseStatement() {
		return false
	}
	p.b.Close(kind, m)
	return true
}

// parseForInOfHead parses `left in Expression )` or `left of AssignmentExpression )`.
func (p *Parser) parseForInOfHead() (ast.Kind, bool) {
	if p.atAny(token.KwVar, token.KwConst) || p.at(token.KwLet) && p.letStartsDeclaration() {
		m := p.b.Open()
		p.advance()
		dm := p.b.Open()
		if !p.parseBindingTarget() {
			return ast.Invalid, false
		}
		p.b.Close(ast.VariableDeclarator, dm)
		p.b.Close(ast.VariableDeclaration, m)
	} else if !p.parseLeftHandSide() {
		return ast.Invalid, false
	}

	var kind ast.Kind
	switch {
	case p.at(token.KwIn):
		p.advance()
		if !p.allowIn(p.parseExpression) {
			return ast.Invalid, false
		}
		kind = ast.ForInStatement
	case p.atWord("of"):
		p.advance()
		if !p.allowIn(p.parseAssignment) {
			return ast.Invalid, false
		}
		kind = ast.ForOfStatement
	default:
		return ast.Invalid, p.fail(diag.SynUnexpectedToken, "'in'", "'of'")
	}
	return kind, p.expect(token.RParen)
}

// parseForClauses parses `[init] ; [test] ; [update] )`.
func (p *Parser) parseForClauses() bool {
	switch {
	case p.at(token.Semicolon):
	case p.atAny(token.KwVar, token.KwConst) || p.at(token.KwLet) && p.letStartsDeclaration():
		m := p.b.Open()
		saved := p.noIn
		p.noIn = true
		ok := p.parseDeclarationList()
		p.noIn = saved
		if !ok {
			return false
		}
		p.b.Close(ast.VariableDeclaration, m)
	default:
		saved := p.noIn
		p.noIn = true
		ok := p.parseExpression()
		p.noIn = saved
		if !ok {
			return false
		}
	}
	if !p.expect(token.Semicolon) {
		return false
	}
	if !p.at(token.Semicolon) && !p.allowIn(p.parseExpression) {
		return false
	}
	if !p.expect(token.Semicolon) {
		return false
	}
	if !p.at(token.RParen) && !p.allowIn(p.parseExpression) {
		return false
	}
	return p.expect(token.RParen)
}

// parseJump parses continue/break with an optional label on the same line.
func (p *Parser) parseJump(kind ast.Kind) bool {
	m := p.b.Open()
	p.advance()
	if next := p.peek(); p.isIdentifierToken(next) && !next.NewlineBefore() {
		lm := p.b.Open()
		p.advance()
		p.b.Close(ast.IdentifierName, lm)
	}
	if !p.semicolon() {
		return false
	}
	p.b.Close(kind, m)
	return true
}

func (p *Parser) parseReturn() bool {
	m := p.b.Open()
	p.advance()
	next := p.peek()
	if !next.NewlineBefore() && !p.atAny(token.Semicolon, token.RBrace, token.EOF) {
		if !p.allowIn(p.parseExpression) {
			return false
		}
	}
	if !p.semicolon() {
		return false
	}
	p.b.Close(ast.ReturnStatement, m)
	return true
}

// parseThrow: no line terminator is allowed between 'throw' and its operand.
func (p *Parser) parseThrow() bool {
	m := p.b.Open()
	p.advance()
	if p.peek().NewlineBefore() {
		return p.failNodes(diag.SynExpectExpression, []ast.Selector{ast.GroupExpression}, "expression")
	}
	if !p.allowIn(p.parseExpression) || !p.semicolon() {
		return false
	}
	p.b.Close(ast.ThrowStatement, m)
	return true
}

func (p *Parser) parseWith() bool {
	m := p.b.Open()
	p.advance()
	if !p.parseParenCondition() || !p.parseStatement() {
		return false
	}
	p.b.Close(ast.WithStatement, m)
	return true
}

func (p *Parser) parseSwitch() bool {
	m := p.b.Open()
	p.advance()
	if !p.parseParenCondition() || !p.expect(token.LBrace) {
		return false
	}
	for !p.at(token.RBrace) {
		cm := p.b.Open()
		kind := ast.CaseClause
		switch {
		case p.at(token.KwCase):
			p.advance()
			if !p.allowIn(p.parseExpression) {
				return false
			}
		case p.at(token.KwDefault):
			p.advance()
			kind = ast.DefaultClause
		default:
			return p.failNodes(diag.SynUnexpectedToken, []ast.Selector{ast.CaseClause, ast.DefaultClause}, "'case'", "'default'", "'}'")
		}
		if !p.expect(token.Colon) {
			return false
		}
		for !p.atAny(token.KwCase, token.KwDefault, token.RBrace, token.EOF) {
			if !p.parseStatement() {
				return false
			}
		}
		p.b.Close(kind, cm)
	}
	p.advance()
	p.b.Close(ast.SwitchStatement, m)
	return true
}

func (p *Parser) parseTry() bool {
	m := p.b.Open()
	p.advance()
	if !p.parseBlock(ast.BlockStatement) {
		return false
	}
	handled := false
	if p.at(token.KwCatch) {
		cm := p.b.Open()
		p.advance()
		if p.at(token.LParen) {
			p.advance()
			if !p.parseBindingTarget() || !p.expect(token.RParen) {
				return false
			}
		}
		if !p.parseBlock(ast.BlockStatement) {
			return false
		}
		p.b.Close(ast.CatchClause, cm)
		handled = true
	}
	if p.at(token.KwFinally) {
		fm := p.b.Open()
		p.advance()
		if !p.parseBlock(ast.BlockStatement) {
			return false
		}
		p.b.Close(ast.FinallyClause, fm)
		handled = true
	}
	if !handled {
		return p.failNodes(diag.SynUnexpectedToken, []ast.Selector{ast.CatchClause, ast.FinallyClause}, "'catch'", "'finally'")
	}
	p.b.Close(ast.TryStatement, m)
	return true
}

func (p *Parser) parseLabelled() bool {
	m := p.b.Open()
	lm := p.b.Open()
	p.advance()
	p.b.Close(ast.IdentifierName, lm)
	p.advance() // ':'
	if !p.parseStatement() {
		return false
	}
	p.b.Close(ast.LabelledStatement, m)
	return true
}

package parser

import (
	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/token"
)

// isIdentifierToken reports whether t may serve as an identifier reference
// or binding in the current context. Contextual words (let, static, ...) are
// identifiers; yield and await only outside generators and async functions.
func (p *Parser) isIdentifierToken(t token.Token) bool {
	switch {
	case t.Kind == token.Ident:
		return true
	case t.Kind == token.KwYield:
		return !p.inGenerator
	case t.Kind == token.KwAwait:
		return !p.inAsync
	}
	return t.Kind.IsContextual()
}

// isPropertyNameStart accepts any identifier name (keywords included), string,
// number or a computed '['.
func isPropertyNameStart(t token.Token) bool {
	switch t.Kind {
	case token.Ident, token.StringLit, token.NumericLit, token.LBracket:
		return true
	}
	return t.Kind.IsKeyword()
}

type funcState struct {
	inFunction, inGenerator, inAsync, noIn bool
}

func (p *Parser) pushFunction(async, generator bool) funcState {
	s := funcState{p.inFunction, p.inGenerator, p.inAsync, p.noIn}
	p.inFunction, p.inGenerator, p.inAsync, p.noIn = true, generator, async, false
	return s
}

func (p *Parser) popFunction(s funcState) {
	p.inFunction, p.inGenerator, p.inAsync, p.noIn = s.inFunction, s.inGenerator, s.inAsync, s.noIn
}

// parseFunction parses `[async] function [*] [name] (params) { body }`.
func (p *Parser) parseFunction(kind ast.Kind, requireName bool) bool {
	m := p.b.Open()
	async := false
	if p.atWord("async") {
		p.advance()
		async = true
	}
	if !p.expect(token.KwFunction) {
		return false
	}
	generator := false
	if p.at(token.Star) {
		p.advance()
		generator = true
	}
	switch {
	case p.isIdentifierToken(p.peek()):
		p.parseBindingIdentifier()
	case requireName:
		return p.failNodes(diag.SynExpectIdentifier, []ast.Selector{ast.BindingIdentifier}, "function name")
	}
	if !p.parseFunctionRest(async, generator) {
		return false
	}
	p.b.Close(kind, m)
	return true
}

// parseFunctionRest parses parameters and body in the function's own context.
func (p *Parser) parseFunctionRest(async, generator bool) bool {
	saved := p.pushFunction(async, generator)
	defer p.popFunction(saved)
	return p.parseFormalParameters() && p.parseFunctionBody()
}

func (p *Parser) parseFormalParameters() bool {
	m := p.b.Open()
	if !p.expect(token.LParen) {
		return false
	}
	for !p.at(token.RParen) {
		if p.at(token.Ellipsis) {
			if !p.parseRestElement() {
				return false
			}
			break
		}
		if !p.parseBindingElement() {
			return false
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if !p.expect(token.RParen) {
		return false
	}
	p.b.Close(ast.FormalParameters, m)
	return true
}

func (p *Parser) parseFunctionBody() bool {
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
	p.b.Close(ast.FunctionBody, m)
	return true
}

func (p *Parser) parseBindingIdentifier() bool {
	if !p.isIdentifierToken(p.peek()) {
		return p.failNodes(diag.SynExpectIdentifier, []ast.Selector{ast.BindingIdentifier}, "identifier")
	}
	m := p.b.Open()
	p.advance()
	p.b.Close(ast.BindingIdentifier, m)
	return true
}

// parseBindingTarget parses an identifier, array pattern or object pattern.
func (p *Parser) parseBindingTarget() bool {
	if !p.enter() {
		return false
	}
	defer p.leave()
	switch {
	case p.at(token.LBracket):
		return p.parseArrayPattern()
	case p.at(token.LBrace):
		return p.parseObjectPattern()
	}
	return p.parseBindingIdentifier()
}

// parseBindingElement parses a target with an optional default; only a target with
// a default gets its own BindingElement node.
func (p *Parser) parseBindingElement() bool {
	m := p.b.Open()
	if !p.parseBindingTarget() {
		return false
	}
	if p.at(token.Assign) {
		p.advance()
		if !p.allowIn(p.parseAssignment) {
			return false
		}
		p.b.Close(ast.BindingElement, m)
	}
	return true
}

func (p *Parser) parseRestElement() bool {
	m := p.b.Open()
	p.advance()
	if !p.parseBindingTarget() {
		return false
	}
	p.b.Close(ast.RestElement, m)
	return true
}

func (p *Parser) parseArrayPattern() bool {
	m := p.b.Open()
	p.advance()
	for !p.at(token.RBracket) {
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		var ok bool
		if p.at(token.Ellipsis) {
			ok = p.parseRestElement()
		} else {
			ok = p.parseBindingElement()
		}
		if !ok {
			return false
		}
		if !p.at(token.RBracket) && !p.expect(token.Comma) {
			return false
		}
	}
	p.advance()
	p.b.Close(ast.ArrayPattern, m)
	return true
}

func (p *Parser) parseObjectPattern() bool {
	m := p.b.Open()
	p.advance()
	for !p.at(token.RBrace) {
		var ok bool
		if p.at(token.Ellipsis) {
			ok = p.parseRestElement()
		} else {
			ok = p.parseBindingProperty()
		}
		if !ok {
			return false
		}
		if !p.at(token.RBrace) && !p.expect(token.Comma) {
			return false
		}
	}
	p.advance()
	p.b.Close(ast.ObjectPattern, m)
	return true
}

// parseBindingProperty parses `name`, `name = default` or `key: element`.
func (p *Parser) parseBindingProperty() bool {
	m := p.b.Open()
	if p.isIdentifierToken(p.peek()) && p.peekAt(1).Kind != token.Colon {
		p.parseBindingIdentifier()
		if p.at(token.Assign) {
			p.advance()
			if !p.allowIn(p.parseAssignment) {
				return false
			}
			p.b.Close(ast.BindingElement, m)
		}
		return true
	}
	if !p.parsePropertyName() || !p.expect(token.Colon) || !p.parseBindingElement() {
		return false
	}
	p.b.Close(ast.BindingProperty, m)
	return true
}

func (p *Parser) parsePropertyName() bool {
	tok := p.peek()
	m := p.b.Open()
	switch {
	case tok.Kind == token.StringLit:
		p.advance()
		p.b.Close(ast.StringLiteral, m)
	case tok.Kind == token.NumericLit:
		p.advance()
		p.b.Close(ast.NumericLiteral, m)
	case tok.Kind == token.LBracket:
		p.advance()
		if !p.allowIn(p.parseAssignment) || !p.expect(token.RBracket) {
			return false
		}
		p.b.Close(ast.ComputedPropertyName, m)
	default:
		return p.parseIdentifierName()
	}
	return true
}

// parseIdentifierName accepts any identifier or keyword (member names,
// property keys, labels).
func (p *Parser) parseIdentifierName() bool {
	tok := p.peek()
	if tok.Kind != token.Ident && !tok.Kind.IsKeyword() {
		return p.failNodes(diag.SynExpectIdentifier, []ast.Selector{ast.IdentifierName}, "identifier")
	}
	m := p.b.Open()
	p.advance()
	p.b.Close(ast.IdentifierName, m)
	return true
}

// parseClass parses `class [name] [extends LeftHandSide] { members }`.
func (p *Parser) parseClass(kind ast.Kind, requireName bool) bool {
	m := p.b.Open()
	p.advance()
	switch {
	case p.isIdentifierToken(p.peek()):
		p.parseBindingIdentifier()
	case requireName:
		return p.failNodes(diag.SynExpectIdentifier, []ast.Selector{ast.BindingIdentifier}, "class name")
	}
	if p.at(token.KwExtends) {
		hm := p.b.Open()
		p.advance()
		if !p.parseLeftHandSide() {
			return false
		}
		p.b.Close(ast.ClassHeritage, hm)
	}
	bm := p.b.Open()
	if !p.expect(token.LBrace) {
		return false
	}
	for !p.at(token.RBrace) {
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		if p.at(token.EOF) {
			return p.fail(diag.SynUnexpectedToken, "'}'")
		}
		if !p.parseMethod(true) {
			return false
		}
	}
	p.advance()
	p.b.Close(ast.ClassBody, bm)
	p.b.Close(kind, m)
	return true
}

// parseMethod parses `[static] [async] [*] [get|set] name (params) { body }`.
func (p *Parser) parseMethod(inClass bool) bool {
	m := p.b.Open()
	if inClass && p.at(token.KwStatic) && p.peekAt(1).Kind != token.LParen {
		p.advance()
	}
	async, generator := false, false
	if next := p.peekAt(1); p.atWord("async") && !next.NewlineBefore() &&
		(next.Kind == token.Star || isPropertyNameStart(next)) {
		p.advance()
		async = true
	}
	if p.at(token.Star) {
		p.advance()
		generator = true
	}
	if !async && !generator && (p.atWord("get") || p.atWord("set")) && isPropertyNameStart(p.peekAt(1)) {
		p.advance()
	}
	if !p.parsePropertyName() || !p.parseFunctionRest(async, generator) {
		return false
	}
	p.b.Close(ast.MethodDefinition, m)
	return true
}

// parseImport parses a top-level `import` declaration.
func (p *Parser) parseImport() bool {
	m := p.b.Open()
	p.advance()
	if p.at(token.StringLit) {
		if !p.parseModuleSpecifier() || !p.semicolon() {
			return false
		}
		p.b.Close(ast.ImportDeclaration, m)
		return true
	}
	if p.isIdentifierToken(p.peek()) {
		p.parseBindingIdentifier()
		if p.at(token.Comma) {
			p.advance()
			if !p.parseImportClause() {
				return false
			}
		}
	} else if !p.parseImportClause() {
		return false
	}
	if !p.parseFromClause() || !p.semicolon() {
		return false
	}
	p.b.Close(ast.ImportDeclaration, m)
	return true
}

// parseImportClause parses `* as name` or `{ a, b as c }`.
func (p *Parser) parseImportClause() bool {
	switch {
	case p.at(token.Star):
		p.advance()
		if !p.atWord("as") {
			return p.fail(diag.SynUnexpectedToken, "'as'")
		}
		p.advance()
		return p.parseBindingIdentifier()
	case p.at(token.LBrace):
		p.advance()
		for !p.at(token.RBrace) {
			sm := p.b.Open()
			if next := p.peekAt(1); next.Kind == token.Ident && next.Text == "as" {
				if !p.parseIdentifierName() {
					return false
				}
				p.advance()
			}
			if !p.parseBindingIdentifier() {
				return false
			}
			p.b.Close(ast.ImportSpecifier, sm)
			if !p.at(token.RBrace) && !p.expect(token.Comma) {
				return false
			}
		}
		p.advance()
		return true
	}
	return p.fail(diag.SynUnexpectedToken, "'*'", "'{'")
}

func (p *Parser) parseFromClause() bool {
	if !p.atWord("from") {
		return p.fail(diag.SynUnexpectedToken, "'from'")
	}
	p.advance()
	return p.parseModuleSpecifier()
}

func (p *Parser) parseModuleSpecifier() bool {
	if !p.at(token.StringLit) {
		return p.failNodes(diag.SynUnexpectedToken, []ast.Selector{ast.StringLiteral}, "module specifier")
	}
	m := p.b.Open()
	p.advance()
	p.b.Close(ast.StringLiteral, m)
	return true
}

// parseExport parses a top-level `export` declaration.
func (p *Parser) parseExport() bool {
	m := p.b.Open()
	p.advance()
	var ok bool
	switch {
	case p.at(token.KwDefault):
		p.advance()
		switch {
		case p.at(token.KwFunction) || p.atAsyncFunction():
			ok = p.parseFunction(ast.FunctionDeclaration, false)
		case p.at(token.KwClass):
			ok = p.parseClass(ast.ClassDeclaration, false)
		default:
			ok = p.allowIn(p.parseAssignment) && p.semicolon()
		}
	case p.at(token.Star):
		p.advance()
		if p.atWord("as") {
			p.advance()
			if !p.parseIdentifierName() {
				return false
			}
		}
		ok = p.parseFromClause() && p.semicolon()
	case p.at(token.LBrace):
		ok = p.parseExportSpecifiers()
		if ok && p.atWord("from") {
			ok = p.parseFromClause()
		}
		ok = ok && p.semicolon()
	case p.atAny(token.KwVar, token.KwConst, token.KwLet):
		ok = p.parseVariableStatement()
	case p.at(token.KwFunction) || p.atAsyncFunction():
		ok = p.parseFunction(ast.FunctionDeclaration, true)
	case p.at(token.KwClass):
		ok = p.parseClass(ast.ClassDeclaration, true)
	default:
		return p.failNodes(diag.SynUnexpectedToken, []ast.Selector{ast.GroupDeclaration}, "declaration", "'default'", "'{'", "'*'")
	}
	if !ok {
		return false
	}
	p.b.Close(ast.ExportDeclaration, m)
	return true
}

func (p *Parser) parseExportSpecifiers() bool {
	p.advance()
	for !p.at(token.RBrace) {
		sm := p.b.Open()
		if !p.parseIdentifierName() {
			return false
		}
		if p.atWord("as") {
			p.advance()
			if !p.parseIdentifierName() {
				return false
			}
		}
		p.b.Close(ast.ExportSpecifier, sm)
		if !p.at(token.RBrace) && !p.expect(token.Comma) {
			return false
		}
	}
	p.advance()
	return true
}

package ast

import "strings"

// Group is a set of kinds sharing a syntactic role.
type Group uint16

const (
	GroupStatement Group = 1 << iota
	GroupDeclaration
	GroupExpression
	GroupLiteral
	GroupFunction
	GroupLoop
	GroupPattern
)

var groupNames = []struct {
	g    Group
	name string
}{
	{GroupStatement, "statement"},
	{GroupDeclaration, "declaration"},
	{GroupExpression, "expression"},
	{GroupLiteral, "literal"},
	{GroupFunction, "function"},
	{GroupLoop, "loop"},
	{GroupPattern, "pattern"},
}

const (
	stmt = GroupStatement
	decl = GroupDeclaration
	expr = GroupExpression
	lit  = GroupLiteral | GroupExpression
	fn   = GroupFunction
	loop = GroupLoop | GroupStatement
	pat  = GroupPattern
)

var kindGroups = [kindCount]Group{
	BlockStatement:           stmt,
	EmptyStatement:           stmt,
	ExpressionStatement:      stmt,
	IfStatement:              stmt,
	ForStatement:             loop,
	ForInStatement:           loop,
	ForOfStatement:           loop,
	WhileStatement:           loop,
	DoWhileStatement:         loop,
	ContinueStatement:        stmt,
	BreakStatement:           stmt,
	ReturnStatement:          stmt,
	WithStatement:            stmt,
	SwitchStatement:          stmt,
	ThrowStatement:           stmt,
	TryStatement:             stmt,
	DebuggerStatement:        stmt,
	LabelledStatement:        stmt,
	VariableStatement:        stmt | decl,
	VariableDeclaration:      decl,
	FunctionDeclaration:      stmt | decl | fn,
	ClassDeclaration:         stmt | decl,
	MethodDefinition:         fn,
	ImportDeclaration:        stmt | decl,
	ExportDeclaration:        stmt | decl,
	Identifier:               expr,
	ThisExpression:           expr,
	SuperExpression:          expr,
	ParenthesizedExpression:  expr,
	ArrayLiteral:             expr,
	ObjectLiteral:            expr,
	FunctionExpression:       expr | fn,
	ArrowFunction:            expr | fn,
	ClassExpression:          expr,
	TemplateExpression:       lit,
	TaggedTemplate:           expr,
	MemberExpression:         expr,
	ComputedMemberExpression: expr,
	CallExpression:           expr,
	NewExpression:            expr,
	UnaryExpression:          expr,
	UpdateExpression:         expr,
	BinaryExpression:         expr,
	LogicalExpression:        expr,
	ConditionalExpression:    expr,
	AssignmentExpression:     expr,
	SequenceExpression:       expr,
	YieldExpression:          expr,
	AwaitExpression:          expr,
	NullLiteral:              lit,
	BooleanLiteral:           lit,
	NumericLiteral:           lit,
	StringLiteral:            lit,
	RegexpLiteral:            lit,
	BindingIdentifier:        pat,
	ArrayPattern:             pat,
	ObjectPattern:            pat,
	BindingElement:           pat,
	RestElement:              pat,
}

// Groups returns the groups k belongs to.
func (k Kind) Groups() Group {
	if int(k) >= len(kindGroups) {
		return 0
	}
	return kindGroups[k]
}

// In reports whether k belongs to every group in g.
func (k Kind) In(g Group) bool {
	return g != 0 && k.Groups()&g == g
}

// Matches lets a group act as a Selector.
func (g Group) Matches(k Kind) bool {
	return k.In(g)
}

func (g Group) String() string {
	var parts []string
	for _, gn := range groupNames {
		if g&gn.g != 0 {
			parts = append(parts, gn.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// GroupByName resolves a single group name such as "loop".
func GroupByName(name string) (Group, bool) {
	for _, gn := range groupNames {
		if gn.name == name {
			return gn.g, true
		}
	}
	return 0, false
}

// Selector chooses node kinds: a Kind matches itself, a Group every member.
type Selector interface {
	Matches(Kind) bool
}

// Match reports whether k is chosen by any of the selectors.
func Match(k Kind, selectors ...Selector) bool {
	for _, s := range selectors {
		if s != nil && s.Matches(k) {
			return true
		}
	}
	return false
}

// Expand lists every valid kind chosen by the selectors, in enumeration order.
func Expand(selectors ...Selector) []Kind {
	var out []Kind
	for k := Program; k < kindCount; k++ {
		if Match(k, selectors...) {
			out = append(out, k)
		}
	}
	return out
}

package ast

// Kind is the closed set of syntax node kinds.
type Kind uint8

const (
	Invalid Kind = iota
	Program

	// statements
	BlockStatement
	EmptyStatement
	ExpressionStatement
	IfStatement
	ForStatement
	ForInStatement
	ForOfStatement
	WhileStatement
	DoWhileStatement
	ContinueStatement
	BreakStatement
	ReturnStatement
	WithStatement
	SwitchStatement
	CaseClause
	DefaultClause
	ThrowStatement
	TryStatement
	CatchClause
	FinallyClause
	DebuggerStatement
	LabelledStatement

	// declarations
	VariableStatement   // var/let/const list terminated by ';'
	VariableDeclaration // var/let/const list without terminator (for heads)
	VariableDeclarator
	FunctionDeclaration
	ClassDeclaration
	ClassHeritage
	ClassBody
	MethodDefinition
	FormalParameters
	FunctionBody
	ImportDeclaration
	ImportSpecifier
	ExportDeclaration
	ExportSpecifier

	// expressions
	Identifier
	ThisExpression
	SuperExpression
	ParenthesizedExpression
	ArrayLiteral
	ObjectLiteral
	PropertyAssignment
	ShorthandProperty
	ComputedPropertyName
	SpreadElement
	FunctionExpression
	ArrowFunction
	ClassExpression
	TemplateExpression
	TaggedTemplate
	MemberExpression
	ComputedMemberExpression
	CallExpression
	Arguments
	NewExpression
	UnaryExpression
	UpdateExpression
	BinaryExpression
	LogicalExpression
	ConditionalExpression
	AssignmentExpression
	SequenceExpression
	YieldExpression
	AwaitExpression

	// literals
	NullLiteral
	BooleanLiteral
	NumericLiteral
	StringLiteral
	RegexpLiteral

	// patterns and names
	BindingIdentifier
	IdentifierName
	ArrayPattern
	ObjectPattern
	BindingProperty
	BindingElement
	RestElement

	kindCount
)

// KindCount is the number of node kinds, Invalid included.
const KindCount = int(kindCount)

var kindNames = [...]string{
	Invalid:                  "Invalid",
	Program:                  "Program",
	BlockStatement:           "BlockStatement",
	EmptyStatement:           "EmptyStatement",
	ExpressionStatement:      "ExpressionStatement",
	IfStatement:              "IfStatement",
	ForStatement:             "ForStatement",
	ForInStatement:           "ForInStatement",
	ForOfStatement:           "ForOfStatement",
	WhileStatement:           "WhileStatement",
	DoWhileStatement:         "DoWhileStatement",
	ContinueStatement:        "ContinueStatement",
	BreakStatement:           "BreakStatement",
	ReturnStatement:          "ReturnStatement",
	WithStatement:            "WithStatement",
	SwitchStatement:          "SwitchStatement",
	CaseClause:               "CaseClause",
	DefaultClause:            "DefaultClause",
	ThrowStatement:           "ThrowStatement",
	TryStatement:             "TryStatement",
	CatchClause:              "CatchClause",
	FinallyClause:            "FinallyClause",
	DebuggerStatement:        "DebuggerStatement",
	LabelledStatement:        "LabelledStatement",
	VariableStatement:        "VariableStatement",
	VariableDeclaration:      "VariableDeclaration",
	VariableDeclarator:       "VariableDeclarator",
	FunctionDeclaration:      "FunctionDeclaration",
	ClassDeclaration:         "ClassDeclaration",
	ClassHeritage:            "ClassHeritage",
	ClassBody:                "ClassBody",
	MethodDefinition:         "MethodDefinition",
	FormalParameters:         "FormalParameters",
	FunctionBody:             "FunctionBody",
	ImportDeclaration:        "ImportDeclaration",
	ImportSpecifier:          "ImportSpecifier",
	ExportDeclaration:        "ExportDeclaration",
	ExportSpecifier:          "ExportSpecifier",
	Identifier:               "Identifier",
	ThisExpression:           "ThisExpression",
	SuperExpression:          "SuperExpression",
	ParenthesizedExpression:  "ParenthesizedExpression",
	ArrayLiteral:             "ArrayLiteral",
	ObjectLiteral:            "ObjectLiteral",
	PropertyAssignment:       "PropertyAssignment",
	ShorthandProperty:        "ShorthandProperty",
	ComputedPropertyName:     "ComputedPropertyName",
	SpreadElement:            "SpreadElement",
	FunctionExpression:       "FunctionExpression",
	ArrowFunction:            "ArrowFunction",
	ClassExpression:          "ClassExpression",
	TemplateExpression:       "TemplateExpression",
	TaggedTemplate:           "TaggedTemplate",
	MemberExpression:         "MemberExpression",
	ComputedMemberExpression: "ComputedMemberExpression",
	CallExpression:           "CallExpression",
	Arguments:                "Arguments",
	NewExpression:            "NewExpression",
	UnaryExpression:          "UnaryExpression",
	UpdateExpression:         "UpdateExpression",
	BinaryExpression:         "BinaryExpression",
	LogicalExpression:        "LogicalExpression",
	ConditionalExpression:    "ConditionalExpression",
	AssignmentExpression:     "AssignmentExpression",
	SequenceExpression:       "SequenceExpression",
	YieldExpression:          "YieldExpression",
	AwaitExpression:          "AwaitExpression",
	NullLiteral:              "NullLiteral",
	BooleanLiteral:           "BooleanLiteral",
	NumericLiteral:           "NumericLiteral",
	StringLiteral:            "StringLiteral",
	RegexpLiteral:            "RegexpLiteral",
	BindingIdentifier:        "BindingIdentifier",
	IdentifierName:           "IdentifierName",
	ArrayPattern:             "ArrayPattern",
	ObjectPattern:            "ObjectPattern",
	BindingProperty:          "BindingProperty",
	BindingElement:           "BindingElement",
	RestElement:              "RestElement",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Valid reports whether k is a member of the closed enumeration.
func (k Kind) Valid() bool {
	return k > Invalid && k < kindCount
}

// KindByName resolves the display name of a kind.
func KindByName(name string) (Kind, bool) {
	for k := Program; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return Invalid, false
}

// Matches lets a single kind act as a Selector.
func (k Kind) Matches(other Kind) bool {
	return k == other
}

package parser

import (
	"jsfront/internal/ast"
	"jsfront/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precNone           = iota
	precCoalesce       // ??
	precLogicalOr      // ||
	precLogicalAnd     // &&
	precBitwiseOr      // |
	precBitwiseXor     // ^
	precBitwiseAnd     // &
	precEquality       // == != === !==
	precRelational     // < > <= >= instanceof in
	precShift          // << >> >>>
	precAdditive       // + -
	precMultiplicative // * / %
	precExponent       // ** (правоассоциативно)
)

// binaryPrec возвращает приоритет и ассоциативность оператора
// Возвращает (приоритет, правоассоциативный)
func binaryPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.QuestionQuestion:
		return precCoalesce, false
	case token.OrOr:
		return precLogicalOr, false
	case token.AndAnd:
		return precLogicalAnd, false
	case token.Pipe:
		return precBitwiseOr, false
	case token.Caret:
		return precBitwiseXor, false
	case token.Amp:
		return precBitwiseAnd, false
	case token.EqEq, token.NotEq, token.EqEqEq, token.NotEqEq:
		return precEquality, false
	case token.Lt, token.Gt, token.LtEq, token.GtEq, token.KwInstanceof, token.KwIn:
		return precRelational, false
	case token.Shl, token.Shr, token.UShr:
		return precShift, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	case token.StarStar:
		return precExponent, true
	default:
		return precNone, false // не бинарный оператор
	}
}

// binaryNodeKind separates short-circuit operators from the rest.
func binaryNodeKind(kind token.Kind) ast.Kind {
	switch kind {
	case token.AndAnd, token.OrOr, token.QuestionQuestion:
		return ast.LogicalExpression
	default:
		return ast.BinaryExpression
	}
}

func isAssignOp(kind token.Kind) bool {
	switch kind {
	case token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign, token.SlashAssign,
		token.PercentAssign, token.StarStarAssign, token.ShlAssign, token.ShrAssign, token.UShrAssign,
		token.AmpAssign, token.PipeAssign, token.CaretAssign, token.AndAndAssign, token.OrOrAssign,
		token.QuestionAssign:
		return true
	default:
		return false
	}
}

func isUnaryOp(kind token.Kind) bool {
	switch kind {
	case token.KwDelete, token.KwVoid, token.KwTypeof, token.Plus, token.Minus, token.Tilde, token.Bang:
		return true
	default:
		return false
	}
}

// isSimpleTarget reports what an update or compound assignment may write to.
func isSimpleTarget(kind ast.Kind) bool {
	switch kind {
	case ast.Identifier, ast.MemberExpression, ast.ComputedMemberExpression, ast.ParenthesizedExpression:
		return true
	default:
		return false
	}
}

// isAssignTarget additionally admits destructuring literals for plain '='.
func isAssignTarget(kind ast.Kind, op token.Kind) bool {
	if isSimpleTarget(kind) {
		return true
	}
	return op == token.Assign && (kind == ast.ArrayLiteral || kind == ast.ObjectLiteral)
}

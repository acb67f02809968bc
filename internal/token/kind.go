package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	kwBegin
	KwBreak      // break
	KwCase       // case
	KwCatch      // catch
	KwClass      // class
	KwConst      // const
	KwContinue   // continue
	KwDebugger   // debugger
	KwDefault    // default
	KwDelete     // delete
	KwDo         // do
	KwElse       // else
	KwEnum       // enum
	KwExport     // export
	KwExtends    // extends
	KwFalse      // false
	KwFinally    // finally
	KwFor        // for
	KwFunction   // function
	KwIf         // if
	KwImport     // import
	KwIn         // in
	KwInstanceof // instanceof
	KwNew        // new
	KwNull       // null
	KwReturn     // return
	KwSuper      // super
	KwSwitch     // switch
	KwThis       // this
	KwThrow      // throw
	KwTrue       // true
	KwTry        // try
	KwTypeof     // typeof
	KwVar        // var
	KwVoid       // void
	KwWhile      // while
	KwWith       // with
	KwYield      // yield
	KwLet        // let
	KwStatic     // static
	KwAwait      // await
	KwImplements // implements
	KwInterface  // interface
	KwPackage    // package
	KwPrivate    // private
	KwProtected  // protected
	KwPublic     // public
	kwEnd

	// NumericLit represents a numeric literal (decimal, hex, octal, binary, float, bigint).
	NumericLit
	// StringLit represents a single or double quoted string literal.
	StringLit
	// TemplateLit represents a whole template literal including substitutions.
	TemplateLit
	// RegexpLit represents a regular expression literal with its flags.
	RegexpLit

	punctBegin
	LBrace           // {
	RBrace           // }
	LParen           // (
	RParen           // )
	LBracket         // [
	RBracket         // ]
	Dot              // .
	Ellipsis         // ...
	Semicolon        // ;
	Comma            // ,
	Lt               // <
	Gt               // >
	LtEq             // <=
	GtEq             // >=
	EqEq             // ==
	NotEq            // !=
	EqEqEq           // ===
	NotEqEq          // !==
	Plus             // +
	Minus            // -
	Star             // *
	Slash            // /
	Percent          // %
	StarStar         // **
	PlusPlus         // ++
	MinusMinus       // --
	Shl              // <<
	Shr              // >>
	UShr             // >>>
	Amp              // &
	Pipe             // |
	Caret            // ^
	Bang             // !
	Tilde            // ~
	AndAnd           // &&
	OrOr             // ||
	QuestionQuestion // ??
	Question         // ?
	QuestionDot      // ?.
	Colon            // :
	Assign           // =
	PlusAssign       // +=
	MinusAssign      // -=
	StarAssign       // *=
	SlashAssign      // /=
	PercentAssign    // %=
	StarStarAssign   // **=
	ShlAssign        // <<=
	ShrAssign        // >>=
	UShrAssign       // >>>=
	AmpAssign        // &=
	PipeAssign       // |=
	CaretAssign      // ^=
	AndAndAssign     // &&=
	OrOrAssign       // ||=
	QuestionAssign   // ??=
	Arrow            // =>
	punctEnd
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	NumericLit:  "NumericLit",
	StringLit:   "StringLit",
	TemplateLit: "TemplateLit",
	RegexpLit:   "RegexpLit",
}

// String returns the keyword or punctuator spelling, or the kind name.
func (k Kind) String() string {
	if s, ok := kindText[k]; ok {
		return s
	}
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether k is a reserved word kind.
func (k Kind) IsKeyword() bool { return k > kwBegin && k < kwEnd }

// IsPunctuator reports whether k is an operator or punctuation kind.
func (k Kind) IsPunctuator() bool { return k > punctBegin && k < punctEnd }

// IsLiteral reports whether k is a numeric, string, template or regexp literal.
func (k Kind) IsLiteral() bool {
	switch k {
	case NumericLit, StringLit, TemplateLit, RegexpLit:
		return true
	default:
		return false
	}
}

// EndsExpression reports whether a token of kind k can be the last token of
// an expression. A '/' following such a token is division, otherwise it
// starts a regular expression literal. Contextual keywords count as names,
// so `yield /re/` and `await /re/` need parentheses around the literal.
func (k Kind) EndsExpression() bool {
	switch k {
	case Ident, NumericLit, StringLit, TemplateLit, RegexpLit,
		RParen, RBracket, RBrace, PlusPlus, MinusMinus,
		KwThis, KwSuper, KwNull, KwTrue, KwFalse:
		return true
	default:
		return k.IsContextual()
	}
}

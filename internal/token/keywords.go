package token

import (
	"cmp"
	"slices"
)

var keywords = map[string]Kind{
	"break":      KwBreak,
	"case":       KwCase,
	"catch":      KwCatch,
	"class":      KwClass,
	"const":      KwConst,
	"continue":   KwContinue,
	"debugger":   KwDebugger,
	"default":    KwDefault,
	"delete":     KwDelete,
	"do":         KwDo,
	"else":       KwElse,
	"enum":       KwEnum,
	"export":     KwExport,
	"extends":    KwExtends,
	"false":      KwFalse,
	"finally":    KwFinally,
	"for":        KwFor,
	"function":   KwFunction,
	"if":         KwIf,
	"import":     KwImport,
	"in":         KwIn,
	"instanceof": KwInstanceof,
	"new":        KwNew,
	"null":       KwNull,
	"return":     KwReturn,
	"super":      KwSuper,
	"switch":     KwSwitch,
	"this":       KwThis,
	"throw":      KwThrow,
	"true":       KwTrue,
	"try":        KwTry,
	"typeof":     KwTypeof,
	"var":        KwVar,
	"void":       KwVoid,
	"while":      KwWhile,
	"with":       KwWith,
	"yield":      KwYield,
	"let":        KwLet,
	"static":     KwStatic,
	"await":      KwAwait,
	"implements": KwImplements,
	"interface":  KwInterface,
	"package":    KwPackage,
	"private":    KwPrivate,
	"protected":  KwProtected,
	"public":     KwPublic,
}

var punctuators = map[string]Kind{
	"{": LBrace, "}": RBrace, "(": LParen, ")": RParen, "[": LBracket, "]": RBracket,
	".": Dot, "...": Ellipsis, ";": Semicolon, ",": Comma,
	"<": Lt, ">": Gt, "<=": LtEq, ">=": GtEq,
	"==": EqEq, "!=": NotEq, "===": EqEqEq, "!==": NotEqEq,
	"+": Plus, "-": Minus, "*": Star, "/": Slash, "%": Percent, "**": StarStar,
	"++": PlusPlus, "--": MinusMinus,
	"<<": Shl, ">>": Shr, ">>>": UShr,
	"&": Amp, "|": Pipe, "^": Caret, "!": Bang, "~": Tilde,
	"&&": AndAnd, "||": OrOr, "??": QuestionQuestion,
	"?": Question, "?.": QuestionDot, ":": Colon,
	"=": Assign, "+=": PlusAssign, "-=": MinusAssign, "*=": StarAssign, "/=": SlashAssign,
	"%=": PercentAssign, "**=": StarStarAssign, "<<=": ShlAssign, ">>=": ShrAssign,
	">>>=": UShrAssign, "&=": AmpAssign, "|=": PipeAssign, "^=": CaretAssign,
	"&&=": AndAndAssign, "||=": OrOrAssign, "??=": QuestionAssign,
	"=>": Arrow,
}

// Punct is one entry of the punctuator table.
type Punct struct {
	Text string
	Kind Kind
}

var (
	kindText map[Kind]string
	// punctByFirst groups punctuators by their first byte, longest first.
	punctByFirst [128][]Punct
)

func init() {
	kindText = make(map[Kind]string, len(keywords)+len(punctuators))
	for text, k := range keywords {
		kindText[k] = text
	}
	for text, k := range punctuators {
		kindText[k] = text
		punctByFirst[text[0]] = append(punctByFirst[text[0]], Punct{Text: text, Kind: k})
	}
	for i := range punctByFirst {
		slices.SortFunc(punctByFirst[i], func(a, b Punct) int {
			if c := cmp.Compare(len(b.Text), len(a.Text)); c != 0 {
				return c
			}
			return cmp.Compare(a.Text, b.Text)
		})
	}
}

// LookupKeyword returns the keyword kind for ident. Keywords are case sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// PunctuatorsFor returns the punctuators starting with b, longest first.
// The returned slice is shared and must not be modified.
func PunctuatorsFor(b byte) []Punct {
	if b >= 128 {
		return nil
	}
	return punctByFirst[b]
}

// IsContextual reports whether k is a keyword that may still be used as a
// binding or reference name in non-strict code.
func (k Kind) IsContextual() bool {
	switch k {
	case KwLet, KwStatic, KwAwait, KwYield, KwImplements, KwInterface,
		KwPackage, KwPrivate, KwProtected, KwPublic:
		return true
	default:
		return false
	}
}

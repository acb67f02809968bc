package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedRegexp       Code = 1005
	LexUnterminatedTemplate     Code = 1006
	LexBadEscape                Code = 1007

	// Синтаксические
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectSemicolon   Code = 2002
	SynExpectExpression  Code = 2003
	SynExpectIdentifier  Code = 2004
	SynTrailingInput     Code = 2005
	SynInvalidAssignment Code = 2006

	// Ограничения ресурсов
	LimInfo         Code = 3000
	LimNestingDepth Code = 3001
	LimTokenCount   Code = 3002

	// Правила
	RuleIssue     Code = 4000
	RuleExecution Code = 4001

	// Ошибки I/O
	IOLoadFileError Code = 5001
	IOEncodingError Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	LexUnterminatedRegexp:       "Unterminated regular expression",
	LexUnterminatedTemplate:     "Unterminated template literal",
	LexBadEscape:                "Bad escape sequence",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectSemicolon:          "Expect semicolon",
	SynExpectExpression:         "Expect expression",
	SynExpectIdentifier:         "Expect identifier",
	SynTrailingInput:            "Unconsumed trailing input",
	SynInvalidAssignment:        "Invalid assignment target",
	LimInfo:                     "Resource limit information",
	LimNestingDepth:             "Nesting depth limit exceeded",
	LimTokenCount:               "Token count limit exceeded",
	RuleIssue:                   "Rule issue",
	RuleExecution:               "Rule execution failed",
	IOLoadFileError:             "Failed to load file",
	IOEncodingError:             "Failed to decode file",
}

// ID returns the stable short identifier of the code, e.g. "SYN2001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LIM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("RUL%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

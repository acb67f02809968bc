package diag

import (
	"jsfront/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	// Rule is set for diagnostics produced by analysis rules.
	Rule    string
	Message string
	Primary source.Span
	Notes   []Note
}

package diag

import (
	"jsfront/internal/source"
)

// Reporter receives the diagnostics produced by the lexer and the parser.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// BagReporter кладёт диагностики в Bag; nil Bag всё отбрасывает.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	d := New(sev, code, primary, msg)
	d.Notes = notes
	r.Bag.Add(d)
}

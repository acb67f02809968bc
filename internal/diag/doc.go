// Package diag defines the diagnostic model shared by the lexer, the parser
// and the rule dispatch engine.
//
// Diagnostic is the central record: a Severity, a compact numeric Code with a
// stable string form (LEX…, SYN…, LIM…, RUL…, IO…), the rule identifier for
// rule issues, a message and a primary source.Span, plus optional notes.
//
// Producers emit through a Reporter so they never depend on storage; BagReporter
// aggregates into a Bag, which supports sorting and merging.
// Rendering lives in internal/diagfmt.
package diag

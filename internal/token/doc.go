// Package token defines lexical token kinds, trivia and the static grammar
// tables (keywords, punctuators, character classes) used by the lexer.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Whitespace, line terminators and comments never appear in the token
//     stream; they are kept as Leading trivia of the next token.
//   - Trivia after the last significant token is attached to EOF, so the
//     concatenation of all trivia and token texts equals the input.
//   - Contextual words (of, get, set, async, as, from) are identifiers.
package token

package lexer

import "jsfront/internal/diag"

type Options struct {
	// Reporter receives the diagnostic of a failed scan; may be nil.
	Reporter diag.Reporter
	// MaxTokens bounds the number of significant tokens (EOF excluded).
	// Zero means unbounded.
	MaxTokens int
}

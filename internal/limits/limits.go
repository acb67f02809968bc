// Package limits holds the structural limits of a single analysis pass and
// the error reported when one of them is exceeded.
package limits

import (
	"fmt"

	"jsfront/internal/diag"
	"jsfront/internal/source"
)

const (
	// DefaultMaxDepth bounds syntactic nesting (statements, expressions, patterns).
	DefaultMaxDepth = 512
	// DefaultMaxTokens of zero leaves the token count unbounded.
	DefaultMaxTokens = 0
)

// Resource names the limit that was exceeded.
type Resource uint8

const (
	NestingDepth Resource = iota + 1
	TokenCount
)

func (r Resource) String() string {
	switch r {
	case NestingDepth:
		return "nesting depth"
	case TokenCount:
		return "token count"
	}
	return "resource"
}

// ResourceLimitError aborts a pass whose input exceeds a structural limit.
type ResourceLimitError struct {
	Resource Resource
	Limit    int
	Span     source.Span
	Pos      source.LineCol
}

func (e *ResourceLimitError) Error() string {
	return fmt.Sprintf("%d:%d: %s limit of %d exceeded", e.Pos.Line, e.Pos.Col, e.Resource, e.Limit)
}

// Diagnostic converts the failure into a diagnostic record.
func (e *ResourceLimitError) Diagnostic() diag.Diagnostic {
	code := diag.LimNestingDepth
	if e.Resource == TokenCount {
		code = diag.LimTokenCount
	}
	return diag.NewError(code, e.Span, fmt.Sprintf("%s limit of %d exceeded", e.Resource, e.Limit))
}

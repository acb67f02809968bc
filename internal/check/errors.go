package check

import (
	"fmt"

	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/source"
)

// RuleExecutionError records a callback that returned an error or panicked.
// Traversal goes on after it.
type RuleExecutionError struct {
	RuleID string
	Node   ast.NodeID
	Kind   ast.Kind
	Pos    source.LineCol
	Span   source.Span
	// Exit is set when the failing callback was the exit one.
	Exit bool
	Err  error
}

func (e *RuleExecutionError) Error() string {
	phase := "enter"
	if e.Exit {
		phase = "exit"
	}
	return fmt.Sprintf("rule %q failed on %s (%s) at %d:%d: %v", e.RuleID, e.Kind, phase, e.Pos.Line, e.Pos.Col, e.Err)
}

func (e *RuleExecutionError) Unwrap() error { return e.Err }

func (e *RuleExecutionError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.RuleExecution, e.Span, e.Error()).WithRule(e.RuleID)
}

// PanicError wraps a value recovered from a rule callback.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

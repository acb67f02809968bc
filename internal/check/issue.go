package check

import (
	"jsfront/internal/diag"
	"jsfront/internal/source"
)

// Issue is one finding of a rule. Lines and columns are 1-based.
type Issue struct {
	RuleID  string
	Message string
	Line    uint32
	Column  uint32
	EndLine uint32
	Span    source.Span
}

// Diagnostic converts the issue into a warning attributed to its rule.
func (i Issue) Diagnostic() diag.Diagnostic {
	return diag.New(diag.SevWarning, diag.RuleIssue, i.Span, i.Message).WithRule(i.RuleID)
}

// IssueSink is append-only; identical issues are kept.
type IssueSink struct {
	issues []Issue
}

func (s *IssueSink) Add(is Issue) {
	s.issues = append(s.issues, is)
}

func (s *IssueSink) Issues() []Issue {
	return s.issues
}

func (s *IssueSink) Len() int {
	return len(s.issues)
}

// Result is the outcome of one traversal.
type Result struct {
	Issues []Issue
	Errors []*RuleExecutionError
}

// Diagnostics lists issues followed by rule failures.
func (r Result) Diagnostics() []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(r.Issues)+len(r.Errors))
	for _, is := range r.Issues {
		out = append(out, is.Diagnostic())
	}
	for _, e := range r.Errors {
		out = append(out, e.Diagnostic())
	}
	return out
}

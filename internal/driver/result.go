package driver

import (
	"errors"
	"fmt"
	"io/fs"

	"jsfront/internal/ast"
	"jsfront/internal/check"
	"jsfront/internal/diag"
	"jsfront/internal/observ"
	"jsfront/internal/source"
	"jsfront/internal/token"
)

// FileResult is the outcome of one file pipeline. Err holds the pass-level
// failure (load, lexical, syntax or resource limit); rule failures are in
// RuleErrors and never stop the pipeline.
type FileResult struct {
	Path       string
	FileSet    *source.FileSet
	File       *source.File
	Tokens     []token.Token
	Tree       *ast.Tree
	Issues     []check.Issue
	RuleErrors []*check.RuleExecutionError
	Bag        *diag.Bag
	Err        error
	Timing     *observ.Report
	// Cached is set when issues were replayed from the result cache; Tokens
	// and Tree are nil then.
	Cached bool
}

// Failed reports whether a pass-level failure happened.
func (r *FileResult) Failed() bool {
	return r.Err != nil
}

// DirResult holds per-file results in deterministic path order.
type DirResult struct {
	FileSet *source.FileSet
	Files   []*FileResult
}

func (r *DirResult) IssueCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Issues)
	}
	return n
}

func (r *DirResult) Failed() bool {
	for _, f := range r.Files {
		if f.Failed() || len(f.RuleErrors) > 0 {
			return true
		}
	}
	return false
}

// LoadError is returned when a file cannot be read or decoded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load file: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Diagnostic() diag.Diagnostic {
	code := diag.IOEncodingError
	var pathErr *fs.PathError
	if errors.As(e.Err, &pathErr) {
		code = diag.IOLoadFileError
	}
	return diag.NewError(code, source.Span{}, e.Error())
}

// diagnoser is implemented by every pass-level error.
type diagnoser interface {
	Diagnostic() diag.Diagnostic
}

// Diagnostic converts any pass-level error into a diagnostic record.
func Diagnostic(err error) diag.Diagnostic {
	var d diagnoser
	if errors.As(err, &d) {
		return d.Diagnostic()
	}
	return diag.NewError(diag.UnknownCode, source.Span{}, err.Error())
}

package check_test

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"jsfront/internal/ast"
	"jsfront/internal/check"
	"jsfront/internal/diag"
	"jsfront/internal/lexer"
	"jsfront/internal/parser"
	"jsfront/internal/source"
)

func mustParse(t *testing.T, src string) *ast.Tree {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.js", []byte(src)))
	toks, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	tree, err := parser.Parse(file, toks, parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return tree
}

func mustRegister(t *testing.T, reg *check.Registry, id string, kinds []ast.Selector, onEnter, onExit check.Callback) {
	t.Helper()
	if err := reg.RegisterFunc(id, kinds, onEnter, onExit); err != nil {
		t.Fatalf("register %s: %v", id, err)
	}
}

func TestTraversalOrder(t *testing.T) {
	tree := mustParse(t, "a(b);\nc;")
	var events []string
	record := func(prefix string) check.Callback {
		return func(ctx *check.Context, id ast.NodeID) error {
			tr := ctx.Tree()
			if tr.Kind(id) == ast.Identifier {
				events = append(events, prefix+" "+tr.Text(id))
			} else {
				events = append(events, prefix+" "+tr.Kind(id).String())
			}
			return nil
		}
	}

	reg := check.NewRegistry()
	mustRegister(t, reg, "walk", []ast.Selector{ast.Identifier, ast.CallExpression}, record("enter"), record("exit"))
	res := check.Traverse(tree, reg)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}

	want := []string{
		"enter CallExpression",
		"enter a", "exit a",
		"enter b", "exit b",
		"exit CallExpression",
		"enter c", "exit c",
	}
	if !slices.Equal(events, want) {
		t.Errorf("events:\n got %v\nwant %v", events, want)
	}
}

func TestRegistrationOrder(t *testing.T) {
	tree := mustParse(t, "x; y;")
	var events []string
	reg := check.NewRegistry()
	for _, id := range []string{"second", "first", "third"} {
		mustRegister(t, reg, id, []ast.Selector{ast.Identifier}, func(ctx *check.Context, n ast.NodeID) error {
			events = append(events, ctx.RuleID()+":"+ctx.Tree().Text(n))
			return nil
		}, nil)
	}
	check.Traverse(tree, reg)

	want := []string{"second:x", "first:x", "third:x", "second:y", "first:y", "third:y"}
	if !slices.Equal(events, want) {
		t.Errorf("got %v, want %v", events, want)
	}
	if ids := reg.IDs(); !slices.Equal(ids, []string{"second", "first", "third"}) {
		t.Errorf("IDs() = %v", ids)
	}
}

func TestDuplicateRegistrationDispatchesTwice(t *testing.T) {
	tree := mustParse(t, "x;")
	var calls []string
	reg := check.NewRegistry()
	for pass := 1; pass <= 2; pass++ {
		mustRegister(t, reg, "flag-ident", []ast.Selector{ast.Identifier}, func(ctx *check.Context, id ast.NodeID) error {
			calls = append(calls, fmt.Sprintf("%d:%s", pass, ctx.Tree().Text(id)))
			ctx.Report(id, "identifier")
			return nil
		}, nil)
	}
	res := check.Traverse(tree, reg)

	if want := []string{"1:x", "2:x"}; !slices.Equal(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
	if len(res.Issues) != 2 {
		t.Errorf("issues = %d, want 2", len(res.Issues))
	}
	if ids := reg.IDs(); !slices.Equal(ids, []string{"flag-ident", "flag-ident"}) {
		t.Errorf("IDs() = %v", ids)
	}
}

func TestGroupSubscription(t *testing.T) {
	tree := mustParse(t, "if (a) { b; } for (;;) break;")
	count := 0
	reg := check.NewRegistry()
	mustRegister(t, reg, "statements", []ast.Selector{ast.GroupStatement}, func(*check.Context, ast.NodeID) error {
		count++
		return nil
	}, nil)
	check.Traverse(tree, reg)
	// if, block, b;, for, break
	if count != 5 {
		t.Errorf("visited %d statements, want 5", count)
	}
}

var errRule = errors.New("rule gave up")

func TestRuleFailuresAreIsolated(t *testing.T) {
	tree := mustParse(t, "a;\nb;\nc;")
	reg := check.NewRegistry()
	mustRegister(t, reg, "fragile", []ast.Selector{ast.Identifier}, func(ctx *check.Context, id ast.NodeID) error {
		switch ctx.Tree().Text(id) {
		case "a":
			panic("boom")
		case "b":
			return errRule
		}
		return nil
	}, nil)
	mustRegister(t, reg, "steady", []ast.Selector{ast.Identifier}, func(ctx *check.Context, id ast.NodeID) error {
		ctx.Report(id, "seen "+ctx.Tree().Text(id))
		return nil
	}, nil)

	res := check.Traverse(tree, reg)
	if len(res.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(res.Issues))
	}
	if len(res.Errors) != 2 {
		t.Fatalf("expected 2 rule errors, got %d", len(res.Errors))
	}

	first := res.Errors[0]
	var pe *check.PanicError
	if first.RuleID != "fragile" || first.Kind != ast.Identifier || !errors.As(first, &pe) {
		t.Errorf("first failure = %v", first)
	}
	if first.Pos.Line != 1 || first.Pos.Col != 1 {
		t.Errorf("first failure at %d:%d, want 1:1", first.Pos.Line, first.Pos.Col)
	}
	if pe != nil && pe.Value != "boom" {
		t.Errorf("panic value = %v", pe.Value)
	}
	if second := res.Errors[1]; !errors.Is(second, errRule) || second.Pos.Line != 2 {
		t.Errorf("second failure = %v", second)
	}
}

func TestExitFailureIsMarked(t *testing.T) {
	tree := mustParse(t, "a;")
	reg := check.NewRegistry()
	mustRegister(t, reg, "exit-only", []ast.Selector{ast.Identifier}, nil, func(*check.Context, ast.NodeID) error {
		return fmt.Errorf("exit: %w", errRule)
	})
	res := check.Traverse(tree, reg)
	if len(res.Errors) != 1 || !res.Errors[0].Exit || !errors.Is(res.Errors[0], errRule) {
		t.Fatalf("errors = %v", res.Errors)
	}
	d := res.Errors[0].Diagnostic()
	if d.Code != diag.RuleExecution || d.Rule != "exit-only" || d.Severity != diag.SevError {
		t.Errorf("diagnostic = %+v", d)
	}
}

func TestReportOutsideCallbackIsRejected(t *testing.T) {
	tree := mustParse(t, "a;")
	var saved *check.Context
	var savedNode ast.NodeID
	reg := check.NewRegistry()
	mustRegister(t, reg, "leaky", []ast.Selector{ast.Identifier}, func(ctx *check.Context, id ast.NodeID) error {
		saved, savedNode = ctx, id
		if !ctx.Report(id, "inside") {
			t.Error("report inside the callback was rejected")
		}
		return nil
	}, nil)

	res := check.Traverse(tree, reg)
	if saved == nil {
		t.Fatal("callback was not called")
	}
	if saved.Report(savedNode, "late") {
		t.Error("late Report was accepted")
	}
	if saved.ReportAt(tree.Span(savedNode), "late") {
		t.Error("late ReportAt was accepted")
	}
	if len(res.Issues) != 1 || res.Issues[0].Message != "inside" {
		t.Errorf("issues = %+v", res.Issues)
	}
}

func TestIssuePositions(t *testing.T) {
	tree := mustParse(t, "x;\n  debugger;\n")
	reg := check.NewRegistry()
	mustRegister(t, reg, "debugger", []ast.Selector{ast.DebuggerStatement}, func(ctx *check.Context, id ast.NodeID) error {
		ctx.Report(id, "Remove this debugger statement.")
		ctx.ReportToken(ctx.Tree().FirstToken(id), "token")
		return nil
	}, nil)

	res := check.Traverse(tree, reg)
	if len(res.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(res.Issues))
	}
	is := res.Issues[0]
	if is.RuleID != "debugger" || is.Line != 2 || is.Column != 3 || is.EndLine != 2 {
		t.Errorf("issue = %+v", is)
	}
	if is.Span.Start != 5 || is.Span.End != 14 {
		t.Errorf("span = %v", is.Span)
	}
	if tok := res.Issues[1]; tok.Span.End != 13 {
		t.Errorf("token issue span = %v", tok.Span)
	}

	diags := res.Diagnostics()
	if len(diags) != 2 || diags[0].Code != diag.RuleIssue || diags[0].Rule != "debugger" || diags[0].Severity != diag.SevWarning {
		t.Errorf("diagnostics = %+v", diags)
	}
}

func TestDuplicateIssuesAreKept(t *testing.T) {
	tree := mustParse(t, "a;")
	reg := check.NewRegistry()
	mustRegister(t, reg, "twice", []ast.Selector{ast.Identifier}, func(ctx *check.Context, id ast.NodeID) error {
		ctx.Report(id, "same")
		ctx.Report(id, "same")
		return nil
	}, nil)
	if res := check.Traverse(tree, reg); len(res.Issues) != 2 {
		t.Errorf("expected both issues, got %d", len(res.Issues))
	}
}

type structRule struct{ seen int }

func (r *structRule) ID() string            { return "struct" }
func (r *structRule) Kinds() []ast.Selector { return []ast.Selector{ast.Program} }
func (r *structRule) Exit(*check.Context, ast.NodeID) error {
	r.seen++
	return nil
}

func TestRegistryValidation(t *testing.T) {
	noop := func(*check.Context, ast.NodeID) error { return nil }
	reg := check.NewRegistry()

	rule := &structRule{}
	if err := reg.Register(rule); err != nil {
		t.Fatalf("register struct rule: %v", err)
	}
	if err := reg.RegisterFunc("", []ast.Selector{ast.Program}, noop, nil); err == nil {
		t.Error("empty id was accepted")
	}
	if err := reg.RegisterFunc("nothing", nil, noop, nil); err == nil {
		t.Error("rule without kinds was accepted")
	}
	if err := reg.RegisterFunc("silent", []ast.Selector{ast.Program}, nil, nil); err == nil {
		t.Error("rule without callbacks was accepted")
	}
	if err := reg.Register(nil); err == nil {
		t.Error("nil rule was accepted")
	}

	reg.Freeze()
	if !reg.Frozen() {
		t.Fatal("registry is not frozen")
	}
	if err := reg.RegisterFunc("late", []ast.Selector{ast.Program}, noop, nil); !errors.Is(err, check.ErrFrozen) {
		t.Errorf("register after freeze: %v", err)
	}

	check.Traverse(mustParse(t, "1;"), reg)
	check.Traverse(mustParse(t, "2;"), reg)
	if rule.seen != 2 {
		t.Errorf("exit rule saw %d programs, want 2", rule.seen)
	}
}

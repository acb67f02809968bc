package rules_test

import (
	"slices"
	"testing"

	"jsfront/internal/check"
	"jsfront/internal/lexer"
	"jsfront/internal/parser"
	"jsfront/internal/rules"
	"jsfront/internal/source"
)

func run(t *testing.T, src string, ids ...string) []check.Issue {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.js", []byte(src)))
	toks, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		t.Fatalf("tokenize %q: %v", src, err)
	}
	tree, err := parser.Parse(file, toks, parser.Options{})
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	reg, err := rules.NewRegistry(ids)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	res := check.Traverse(tree, reg)
	if len(res.Errors) != 0 {
		t.Fatalf("%q: rule errors %v", src, res.Errors)
	}
	return res.Issues
}

func messages(issues []check.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, is := range issues {
		out = append(out, is.Message)
	}
	return out
}

func TestEval(t *testing.T) {
	const msg = `Remove this use of the "eval" function.`
	tests := []struct {
		src  string
		want int
	}{
		{"eval(x);", 1},
		{"foo(x);", 0},
		{"obj.eval(x);", 0},
		{"eval;", 0},
		{"new eval(x);", 0},
		{"eval('a'); if (b) { eval(c) }", 2},
	}
	for _, tt := range tests {
		issues := run(t, tt.src, "eval")
		if len(issues) != tt.want {
			t.Errorf("%q: %d issues, want %d", tt.src, len(issues), tt.want)
			continue
		}
		for _, is := range issues {
			if is.RuleID != "eval" || is.Message != msg {
				t.Errorf("%q: issue %+v", tt.src, is)
			}
		}
	}
}

func TestEvalPosition(t *testing.T) {
	issues := run(t, "var a;\n  eval(x);", "eval")
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	if is := issues[0]; is.Line != 2 || is.Column != 3 || is.EndLine != 2 {
		t.Errorf("issue at %d:%d-%d", is.Line, is.Column, is.EndLine)
	}
}

func TestUnusedFunctionArgument(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"function f(a, b) { return a; }", []string{`Remove the unused function parameter "b".`}},
		{"function f(a, b, c) { return a; }", []string{`Remove the unused function parameters "b, c".`}},
		{"function f(a, b) { return b; }", nil},
		{"function f(a, b) { return arguments.length; }", nil},
		{"var g = x => 1;", []string{`Remove the unused function parameter "x".`}},
		{"var g = (x, y = x) => y;", nil},
		{"function f(a, ...rest) { a(); }", []string{`Remove the unused function parameter "rest".`}},
		{"function f(a, {b}) {}", nil},
		{"class A { m(v) { return 1 } }", []string{`Remove the unused function parameter "v".`}},
		{"function outer(a) { return function (b) { return a + b; }; }", nil},
		{"o = { m(p1) {} };", []string{`Remove the unused function parameter "p1".`}},
		{"function f() {}", nil},
	}
	for _, tt := range tests {
		got := messages(run(t, tt.src, "unused-function-argument"))
		if !slices.Equal(got, tt.want) {
			t.Errorf("%q:\n got %q\nwant %q", tt.src, got, tt.want)
		}
	}
}

func TestUnusedFunctionArgumentLine(t *testing.T) {
	issues := run(t, "function f() {}\n\nfunction g(a, b) {\n  return a;\n}\n", "unused-function-argument")
	if len(issues) != 1 || issues[0].Line != 3 || issues[0].EndLine != 5 {
		t.Errorf("issues = %+v", issues)
	}
}

func TestDebugger(t *testing.T) {
	got := messages(run(t, "debugger;\nif (x) debugger", "debugger"))
	want := []string{"Remove this debugger statement.", "Remove this debugger statement."}
	if !slices.Equal(got, want) {
		t.Errorf("got %q", got)
	}
}

func TestSpaceInModelPropertyName(t *testing.T) {
	const src = `var Person = Backbone.Model.extend({
  defaults: {
    "first name": "",
    'last name': "",
    age: 0,
    "email": ""
  },
  "other key": 1
});
person.set("nick name", "x");
person.set({"home town": "y", zip: 1});
person.set("nickname", "x");
other("a b");
obj["set"]("c d");
Base.extend({ "defaults": { "x y": 1 } });
`
	issues := run(t, src, "space-in-model-property-name")
	var lines []uint32
	for _, is := range issues {
		if is.Message != "Rename this property to remove the spaces." {
			t.Errorf("message = %q", is.Message)
		}
		lines = append(lines, is.Line)
	}
	if want := []uint32{3, 4, 10, 11, 15}; !slices.Equal(lines, want) {
		t.Errorf("lines = %v, want %v", lines, want)
	}
	if len(issues) > 0 && issues[0].Column != 5 {
		t.Errorf("first issue column = %d", issues[0].Column)
	}
}

func TestAllRulesTogether(t *testing.T) {
	issues := run(t, "function f(a) { debugger; eval(a); }\nfoo(x);")
	var ids []string
	for _, is := range issues {
		ids = append(ids, is.RuleID)
	}
	if !slices.Equal(ids, []string{"debugger", "eval"}) {
		t.Errorf("rule ids = %v", ids)
	}
}

func TestCatalog(t *testing.T) {
	ids := rules.IDs()
	if !slices.Equal(ids, []string{"eval", "unused-function-argument", "debugger", "space-in-model-property-name"}) {
		t.Errorf("IDs() = %v", ids)
	}
	for _, id := range ids {
		r, ok := rules.ByID(id)
		if !ok || r.ID() != id || r.Description() == "" {
			t.Errorf("ByID(%q) = %v, %v", id, r, ok)
		}
	}
	if _, ok := rules.ByID("nope"); ok {
		t.Error("ByID found an unknown rule")
	}
	if _, err := rules.NewRegistry([]string{"eval", "nope"}); err == nil {
		t.Error("unknown rule id was accepted")
	}
	reg, err := rules.NewRegistry([]string{"debugger"})
	if err != nil || !reg.Frozen() || reg.Len() != 1 {
		t.Errorf("NewRegistry(debugger) = %v, %v", reg, err)
	}
}

package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"jsfront/internal/diag"
	"jsfront/internal/lexer"
	"jsfront/internal/limits"
	"jsfront/internal/logging"
	"jsfront/internal/parser"
	"jsfront/internal/token"
)

func quietOptions() Options {
	return Options{Logger: logging.Discard()}
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestAnalyzeSourceReportsIssues(t *testing.T) {
	res, err := AnalyzeSource("a.js", []byte("eval(x);\nfoo(x);\n"), quietOptions())
	if err != nil {
		t.Fatal(err)
	}
	if res.Err != nil || res.Tree == nil {
		t.Fatalf("pipeline failed: %v", res.Err)
	}
	if len(res.Issues) != 1 || res.Issues[0].RuleID != "eval" || res.Issues[0].Line != 1 {
		t.Fatalf("issues = %+v", res.Issues)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.RuleIssue || items[0].Rule != "eval" {
		t.Errorf("bag = %+v", items)
	}
	if res.Timing != nil {
		t.Error("timings recorded without being asked for")
	}
}

func TestAnalyzeSourceFailures(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts Options
		code diag.Code
		as   func(error) bool
	}{
		{
			name: "syntax",
			src:  "var = ;",
			code: diag.SynExpectIdentifier,
			as:   func(err error) bool { var e *parser.SyntaxError; return errors.As(err, &e) },
		},
		{
			name: "lexical",
			src:  "a = 'x",
			code: diag.LexUnterminatedString,
			as:   func(err error) bool { var e *lexer.LexicalError; return errors.As(err, &e) },
		},
		{
			name: "token limit",
			src:  "a; b;",
			opts: Options{MaxTokens: 2},
			code: diag.LimTokenCount,
			as:   func(err error) bool { var e *limits.ResourceLimitError; return errors.As(err, &e) },
		},
		{
			name: "depth limit",
			src:  "x = " + strings.Repeat("[", 20) + strings.Repeat("]", 20) + ";",
			opts: Options{MaxDepth: 10},
			code: diag.LimNestingDepth,
			as:   func(err error) bool { var e *limits.ResourceLimitError; return errors.As(err, &e) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.Logger = logging.Discard()
			res, err := AnalyzeSource("bad.js", []byte(tt.src), opts)
			if err != nil {
				t.Fatal(err)
			}
			if !res.Failed() || !tt.as(res.Err) {
				t.Fatalf("unexpected failure %T: %v", res.Err, res.Err)
			}
			if res.Tree != nil || len(res.Issues) != 0 {
				t.Error("a failed pipeline must not produce a tree or issues")
			}
			items := res.Bag.Items()
			if len(items) != 1 || items[0].Code != tt.code {
				t.Errorf("bag = %+v, want code %v", items, tt.code)
			}
			if d := Diagnostic(res.Err); d.Code != tt.code {
				t.Errorf("Diagnostic code = %v", d.Code)
			}
		})
	}
}

func TestRuleSelection(t *testing.T) {
	opts := quietOptions()
	opts.Rules = []string{"debugger"}
	res, err := AnalyzeSource("a.js", []byte("eval(x); debugger;"), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Issues) != 1 || res.Issues[0].RuleID != "debugger" {
		t.Errorf("issues = %+v", res.Issues)
	}

	opts.Rules = []string{"no-such-rule"}
	if _, err := AnalyzeSource("a.js", []byte("x;"), opts); err == nil {
		t.Error("unknown rule was accepted")
	}
}

func TestTimings(t *testing.T) {
	opts := quietOptions()
	opts.Timings = true
	res, err := AnalyzeSource("a.js", []byte("f(1);"), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Timing == nil {
		t.Fatal("no timing report")
	}
	var names []string
	for _, p := range res.Timing.Phases {
		names = append(names, p.Name)
	}
	if !slices.Equal(names, []string{"lex", "parse", "check"}) {
		t.Errorf("phases = %v", names)
	}
}

func TestEncoding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "latin1.js")
	if err := os.WriteFile(path, []byte{'s', ' ', '=', ' ', '"', 0xE9, '"', ';'}, 0o600); err != nil {
		t.Fatal(err)
	}
	opts := quietOptions()
	opts.Encoding = "iso-8859-1"
	tr, err := Tokenize(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Err != nil {
		t.Fatalf("tokenize: %v", tr.Err)
	}
	if got := tr.Tokens[2]; got.Kind != token.StringLit || got.Text != "\"é\"" {
		t.Errorf("string token = %v %q", got.Kind, got.Text)
	}
}

func TestTokenizeAndParse(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.js": "let x = 1;\n", "bad.js": "let x = ;"})

	tr, err := Tokenize(filepath.Join(dir, "a.js"), quietOptions())
	if err != nil || tr.Err != nil {
		t.Fatalf("tokenize: %v %v", err, tr.Err)
	}
	if last := tr.Tokens[len(tr.Tokens)-1]; last.Kind != token.EOF {
		t.Errorf("last token = %v", last.Kind)
	}

	pr, err := Parse(filepath.Join(dir, "a.js"), quietOptions())
	if err != nil || pr.Err != nil || pr.Tree == nil {
		t.Fatalf("parse: %v %v", err, pr.Err)
	}
	if pr.Tree.Source() != "let x = 1;\n" {
		t.Errorf("tree is not lossless: %q", pr.Tree.Source())
	}

	pr, err = Parse(filepath.Join(dir, "bad.js"), quietOptions())
	if err != nil || pr.Err == nil || pr.Bag.Len() != 1 {
		t.Errorf("bad.js: err=%v pipeline=%v bag=%d", err, pr.Err, pr.Bag.Len())
	}

	_, err = Tokenize(filepath.Join(dir, "missing.js"), quietOptions())
	var lerr *LoadError
	if !errors.As(err, &lerr) || lerr.Diagnostic().Code != diag.IOLoadFileError {
		t.Errorf("missing file: %v", err)
	}
}

func TestAnalyzeFileMissing(t *testing.T) {
	res, err := AnalyzeFile(context.Background(), filepath.Join(t.TempDir(), "nope.js"), quietOptions())
	if err != nil {
		t.Fatal(err)
	}
	var lerr *LoadError
	if !errors.As(res.Err, &lerr) {
		t.Fatalf("Err = %v", res.Err)
	}
	if items := res.Bag.Items(); len(items) != 1 || items[0].Code != diag.IOLoadFileError {
		t.Errorf("bag = %+v", items)
	}
}

var treeFiles = map[string]string{
	"a.js":               "eval(1);\n",
	"b.mjs":              "function f(a, b) { return a }\n",
	"c.txt":              "eval(2);\n",
	"sub/d.cjs":          "debugger;\n",
	"broken.js":          "var = ;\n",
	"node_modules/x.js":  "eval(3);\n",
	".hidden/y.js":       "eval(4);\n",
	"sub/deeper/e.JS":    "x;\n",
	"sub/deeper/f.jsx":   "eval(5);\n",
	"sub/deeper/g.js.md": "eval(6);\n",
}

func TestCollectFiles(t *testing.T) {
	dir := writeFiles(t, treeFiles)
	files, err := CollectFiles([]string{dir, filepath.Join(dir, "c.txt"), filepath.Join(dir, "a.js")}, nil)
	if err != nil {
		t.Fatal(err)
	}
	var rel []string
	for _, f := range files {
		r, _ := filepath.Rel(dir, filepath.FromSlash(f))
		rel = append(rel, filepath.ToSlash(r))
	}
	want := []string{"a.js", "b.mjs", "broken.js", "c.txt", "sub/d.cjs", "sub/deeper/e.JS"}
	if !slices.Equal(rel, want) {
		t.Errorf("files = %v, want %v", rel, want)
	}
	if _, err := CollectFiles([]string{filepath.Join(dir, "none")}, nil); err == nil {
		t.Error("missing path was accepted")
	}
}

func TestAnalyzeDir(t *testing.T) {
	dir := writeFiles(t, treeFiles)
	events := make(chan Event, 256)
	opts := quietOptions()
	opts.Jobs = 2
	opts.Progress = ChannelSink{Ch: events}

	res, err := AnalyzeDir(context.Background(), dir, opts)
	close(events)
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, f := range res.Files {
		names = append(names, filepath.Base(f.Path))
	}
	if !slices.Equal(names, []string{"a.js", "b.mjs", "broken.js", "d.cjs", "e.JS"}) {
		t.Fatalf("files = %v", names)
	}
	if n := res.IssueCount(); n != 3 {
		t.Errorf("IssueCount = %d, want 3", n)
	}
	if !res.Failed() || !res.Files[2].Failed() {
		t.Error("broken.js must fail")
	}

	final := make(map[string]Status)
	for ev := range events {
		if ev.Status == StatusDone || ev.Status == StatusError {
			final[filepath.Base(ev.File)] = ev.Status
		}
	}
	want := map[string]Status{"a.js": StatusDone, "b.mjs": StatusDone, "broken.js": StatusError, "d.cjs": StatusDone, "e.JS": StatusDone}
	for name, status := range want {
		if final[name] != status {
			t.Errorf("%s: final status %q, want %q", name, final[name], status)
		}
	}
}

func TestAnalyzeDirCancelled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.js": "x;", "b.js": "y;"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := AnalyzeDir(ctx, dir, quietOptions()); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestAnalyzeDirUsesCache(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.js":      "eval(1);\nfunction f(a, b) { return a }\n",
		"broken.js": "var = ;\n",
		"open.js":   "f(a, ;\n",
	})
	cache, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := quietOptions()
	opts.Cache = cache

	first, err := AnalyzeDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := AnalyzeDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}

	for i := range first.Files {
		a, b := first.Files[i], second.Files[i]
		if a.Cached || !b.Cached {
			t.Errorf("%s: cached flags %v then %v", a.Path, a.Cached, b.Cached)
		}
		if !slices.Equal(a.Issues, b.Issues) {
			t.Errorf("%s: issues differ:\n%+v\n%+v", a.Path, a.Issues, b.Issues)
		}
		if (a.Err == nil) != (b.Err == nil) || a.Err != nil && a.Err.Error() != b.Err.Error() {
			t.Errorf("%s: failures differ: %v / %v", a.Path, a.Err, b.Err)
		}
		if !slices.EqualFunc(a.Bag.Items(), b.Bag.Items(), sameDiagnostic) {
			t.Errorf("%s: diagnostics differ:\n%+v\n%+v", a.Path, a.Bag.Items(), b.Bag.Items())
		}
	}

	opened := second.Files[2]
	var cached *CachedError
	if !errors.As(opened.Err, &cached) {
		t.Fatalf("%s: replayed failure is %T", opened.Path, opened.Err)
	}
	if notes := Diagnostic(opened.Err).Notes; len(notes) != 1 || notes[0].Span.Start != 1 || notes[0].Span.File != opened.File.ID {
		t.Errorf("%s: notes = %+v", opened.Path, notes)
	}

	// another rule set must not hit the same entries
	opts.Rules = []string{"eval"}
	third, err := AnalyzeDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Files[0].Cached || len(third.Files[0].Issues) != 1 {
		t.Errorf("rule subset: cached=%v issues=%d", third.Files[0].Cached, len(third.Files[0].Issues))
	}
}

func sameDiagnostic(a, b diag.Diagnostic) bool {
	return a.Code == b.Code && a.Rule == b.Rule && a.Message == b.Message && a.Primary == b.Primary &&
		a.Severity == b.Severity && slices.Equal(a.Notes, b.Notes)
}

func TestParseSource(t *testing.T) {
	tree, err := ParseSource("mem.js", []byte("s = \"\xE9\";\n"), "iso-8859-1")
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	if tree.Source() != "s = \"é\";\n" {
		t.Errorf("source = %q", tree.Source())
	}

	src := "\ufeffvar a;"
	tree, err = ParseSource("bom.js", []byte(src), "")
	if err != nil {
		t.Fatalf("ParseSource with BOM: %v", err)
	}
	if tree.Source() != src {
		t.Errorf("BOM lost: %q", tree.Source())
	}
	if lead := tree.Tokens()[0].Leading; len(lead) != 1 || lead[0].Kind != token.TriviaWhitespace || lead[0].Text != "\ufeff" {
		t.Errorf("leading trivia = %+v", lead)
	}

	if _, err := ParseSource("bad.js", []byte("let x = ;"), ""); err == nil {
		t.Error("expected syntax error")
	}

	_, err = ParseSource("x.js", []byte("x"), "no-such-encoding")
	var lerr *LoadError
	if !errors.As(err, &lerr) || lerr.Diagnostic().Code != diag.IOEncodingError {
		t.Errorf("unknown encoding: %v", err)
	}
}

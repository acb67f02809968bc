package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"jsfront/internal/check"
	"jsfront/internal/source"
)

func TestCacheRoundTrip(t *testing.T) {
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.js", []byte("eval(x);")))
	key := cache.Key(file, []string{"eval"}, 512, 0)

	if _, ok, err := cache.Get(key); ok || err != nil {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	in := &CachedResult{
		Path: "a.js",
		Issues: []check.Issue{{
			RuleID: "eval", Message: "m", Line: 1, Column: 1, EndLine: 1,
			Span: source.Span{Start: 0, End: 7},
		}},
		RuleErrors: []CachedRuleError{{RuleID: "r", Kind: "Identifier", Line: 1, Col: 6, Message: "boom"}},
	}
	if err := cache.Put(key, in); err != nil {
		t.Fatal(err)
	}
	out, ok, err := cache.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if out.Schema != cacheSchemaVersion || len(out.Issues) != 1 || out.Issues[0] != in.Issues[0] {
		t.Errorf("round trip = %+v", out)
	}
	if len(out.RuleErrors) != 1 || out.RuleErrors[0] != in.RuleErrors[0] {
		t.Errorf("rule errors = %+v", out.RuleErrors)
	}

	res := &FileResult{File: file}
	out.restore(res)
	if !res.Cached || len(res.RuleErrors) != 1 || res.RuleErrors[0].Err.Error() != "boom" || res.RuleErrors[0].Kind.String() != "Identifier" {
		t.Errorf("restored = %+v", res)
	}

	if err := cache.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cache.Get(key); ok {
		t.Error("entry survived Clear")
	}
}

func TestCacheKeyDependsOnInputs(t *testing.T) {
	cache := &Cache{dir: t.TempDir()}
	fs := source.NewFileSet()
	a := fs.Get(fs.AddVirtual("a.js", []byte("x;")))
	b := fs.Get(fs.AddVirtual("b.js", []byte("y;")))
	c := fs.Get(fs.AddVirtual("c.js", []byte("x;")))

	base := cache.Key(a, []string{"eval"}, 512, 0)
	if cache.Key(c, []string{"eval"}, 512, 0) != base {
		t.Error("key must depend on content, not on the path")
	}
	for name, other := range map[string]Digest{
		"content": cache.Key(b, []string{"eval"}, 512, 0),
		"rules":   cache.Key(a, []string{"eval", "debugger"}, 512, 0),
		"depth":   cache.Key(a, []string{"eval"}, 64, 0),
		"tokens":  cache.Key(a, []string{"eval"}, 512, 10),
	} {
		if other == base {
			t.Errorf("key ignores %s", name)
		}
	}
}

func TestCacheStaleSchemaIsMiss(t *testing.T) {
	cache, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var key Digest
	key[0] = 0xab
	data, err := msgpack.Marshal(&CachedResult{Schema: cacheSchemaVersion + 1, Path: "old.js"})
	if err != nil {
		t.Fatal(err)
	}
	p := cache.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := cache.Get(key); ok || err != nil {
		t.Errorf("stale entry: ok=%v err=%v", ok, err)
	}

	if err := os.WriteFile(p, []byte{0xc1}, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := cache.Get(key); ok || err == nil {
		t.Errorf("corrupt entry: ok=%v err=%v", ok, err)
	}
}

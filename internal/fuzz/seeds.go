package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

var languageSeeds = []string{
	"",
	"var a = 1;",
	"let x = y\n/re/g.exec(z)",
	"a = b\n(c)",
	"return\nx",
	"for (var i = 0, n = a.length; i < n; i++) {}",
	"for (const k in o) for (let v of k) ;",
	"function f(a, { b, c: [d] }, ...e) { 'use strict'; return a ? b : c; }",
	"async function* g() { for await (const x of y) yield* x; }",
	"const h = async (a = 1) => ({ a, [b]: c, ...d });",
	"class A extends B { constructor() { super(); } static get x() { return 1; } }",
	"label: while (true) { do continue label; while (0); break; }",
	"switch (x) { case 1: case 2: y(); default: z(); }",
	"try { throw e } catch { } finally { debugger }",
	"import a, * as ns from 'm'; export { a as b }; export default class {}",
	"x = `a${`b${c}`}d`",
	"<!-- html comment\nx --> y\n-->z",
	"a?.b?.[c]?.(d) ?? e",
	"((((((((((a))))))))))",
	"if (a) b; else if (c) d; else { e }",
	"new new A()()",
	"0x1F + 1e-3 + .5 + 0b101 + 0o17 + 10n",
	"'\\u{1F600}' + \"\\x41\"",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("testdata", "seeds")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.js файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".js" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

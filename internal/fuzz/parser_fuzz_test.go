package fuzztests

import (
	"testing"
	"time"

	"jsfront/internal/lexer"
	"jsfront/internal/parser"
	"jsfront/internal/source"
	"jsfront/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsTree(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.js", input))
		tokens, err := lexer.Tokenize(file, lexer.Options{})
		if err != nil {
			return
		}
		tree, err := parser.Parse(file, tokens, parser.Options{})
		if err != nil {
			if tree != nil {
				t.Fatal("failed parse returned a tree")
			}
			return
		}
		if err := testkit.CheckTreeInvariants(tree); err != nil {
			t.Fatalf("invariant violated for %q: %v", input, err)
		}
	})
}

// FuzzParserNoHang tests that speculative parsing of arrow functions and
// patterns stays bounded on any input.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("((((((((((((((((((((((((a,b))))))))))))))))))))))))"))
	f.Add([]byte("(a, (b, (c, (d, (e, (f) => 1) => 2) => 3) => 4) => 5) => 6"))
	f.Add([]byte("[[[[[[[[[[[[[[[[[[[[{a:[{b:[{c:1}]}]}]]]]]]]]]]]]]]]]] = x"))
	f.Add([]byte("({a:({b:({c:({d:({e:1})})})})})"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		done := make(chan struct{})
		go func() {
			defer close(done)
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.js", input))
			tokens, err := lexer.Tokenize(file, lexer.Options{})
			if err != nil {
				return
			}
			_, _ = parser.Parse(file, tokens, parser.Options{})
		}()

		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}

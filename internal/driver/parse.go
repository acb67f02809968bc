package driver

import (
	"jsfront/internal/ast"
	"jsfront/internal/diag"
	"jsfront/internal/lexer"
	"jsfront/internal/parser"
	"jsfront/internal/source"
	"jsfront/internal/token"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Tree    *ast.Tree
	Bag     *diag.Bag
	Err     error
}

// Parse loads one file and builds its syntax tree. Like Tokenize, only load
// failures are returned as error.
func Parse(path string, opts Options) (*ParseResult, error) {
	tr, err := Tokenize(path, opts)
	if err != nil {
		return nil, err
	}
	res := &ParseResult{
		FileSet: tr.FileSet,
		File:    tr.File,
		Tokens:  tr.Tokens,
		Bag:     tr.Bag,
		Err:     tr.Err,
	}
	if tr.Err != nil {
		return res, nil
	}
	opts = opts.withDefaults()
	res.Tree, res.Err = parser.Parse(tr.File, tr.Tokens, parser.Options{
		MaxDepth: opts.MaxDepth,
		Reporter: diag.BagReporter{Bag: tr.Bag},
	})
	return res, nil
}

// ParseSource decodes content from encoding and parses it. The error is a
// *LoadError when decoding fails, otherwise the lexical, syntax or resource
// limit failure of the pass; no tree is returned with it.
func ParseSource(name string, content []byte, encoding string) (*ast.Tree, error) {
	fs := source.NewFileSet()
	id, err := fs.AddEncoded(name, content, encoding, source.FileVirtual)
	if err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}
	file := fs.Get(id)
	tokens, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		return nil, err
	}
	return parser.Parse(file, tokens, parser.Options{})
}

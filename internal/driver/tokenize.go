package driver

import (
	"jsfront/internal/diag"
	"jsfront/internal/lexer"
	"jsfront/internal/source"
	"jsfront/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	// Tokens ends with EOF on success; on failure it holds the tokens
	// produced before the error.
	Tokens []token.Token
	Bag    *diag.Bag
	Err    error
}

// Tokenize loads one file and splits it into tokens. The returned error is a
// load failure; lexical failures land in TokenizeResult.Err.
func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	opts = opts.withDefaults()
	fs := source.NewFileSet()
	fileID, err := fs.Load(path, opts.Encoding)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.MaxDiagnostics)
	tokens, err := lexer.Tokenize(file, lexer.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxTokens: opts.MaxTokens,
	})
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
		Err:     err,
	}, nil
}

package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"jsfront/internal/ast"
	"jsfront/internal/source"
	"jsfront/internal/token"
)

// CheckTreeInvariants runs the structural checks every parsed tree must pass:
// 1) the tokens and their trivia reproduce the file content byte for byte
// 2) every token is a child of exactly one node, in source order, EOF last
// 3) child spans lie inside the parent span and do not overlap
// 4) parent links point back to the enclosing node
func CheckTreeInvariants(tree *ast.Tree) error {
	if tree == nil || tree.File() == nil {
		return fmt.Errorf("nil tree or file")
	}
	sf := tree.File()
	if got := tree.Source(); got != string(sf.Content) {
		return fmt.Errorf("tree is not lossless: %d bytes rebuilt, %d in file", len(got), len(sf.Content))
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	root := tree.Root()
	if tree.Kind(root) != ast.Program {
		return fmt.Errorf("root is %s, want Program", tree.Kind(root))
	}
	if tree.Parent(root) != ast.NoNode {
		return fmt.Errorf("root has parent %d", tree.Parent(root))
	}

	next := 0
	var walk func(id ast.NodeID) error
	walk = func(id ast.NodeID) error {
		sp := tree.Span(id)
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", tree.Kind(id), sp.File, sf.ID)
		}
		if sp.Start > sp.End || sp.End > lenContent {
			return fmt.Errorf("%s has invalid span %v", tree.Kind(id), sp)
		}
		cursor := sp.Start
		for _, c := range tree.Children(id) {
			var csp source.Span
			if c.IsNode() {
				if p := tree.Parent(c.Node); p != id {
					return fmt.Errorf("%s points to parent %d, want %d", tree.Kind(c.Node), p, id)
				}
				csp = tree.Span(c.Node)
			} else {
				if int(c.Token) != next {
					return fmt.Errorf("token %d visited at position %d", c.Token, next)
				}
				next++
				csp = tree.Token(c.Token).Span
			}
			if csp.Start < cursor || csp.End > sp.End {
				return fmt.Errorf("child span %v escapes %s span %v", csp, tree.Kind(id), sp)
			}
			cursor = csp.End
			if c.IsNode() {
				if err := walk(c.Node); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return err
	}

	toks := tree.Tokens()
	if next != len(toks) {
		return fmt.Errorf("%d of %d tokens are attached to the tree", next, len(toks))
	}
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		return fmt.Errorf("token stream does not end with EOF")
	}
	return nil
}

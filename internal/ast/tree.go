package ast

import (
	"jsfront/internal/source"
	"jsfront/internal/token"
)

// Tree is an immutable concrete syntax tree over one file. Every token of
// the file, EOF included, is a child of exactly one node, so the tree
// reproduces the source byte for byte.
type Tree struct {
	file   *source.File
	tokens []token.Token
	nodes  *Arena[Node]
	root   NodeID
}

func (t *Tree) File() *source.File { return t.file }
func (t *Tree) Root() NodeID { return t.root }
func (t *Tree) Tokens() []token.Token { return t.tokens }
func (t *Tree) Len() int { return int(t.nodes.Len()) }
func (t *Tree) Token(i TokenIndex) token.Token {
	return t.tokens[i]
}

func (t *Tree) node(id NodeID) *Node {
	n := t.nodes.Get(uint32(id))
	if n == nil {
		return &Node{}
	}
	return n
}

func (t *Tree) Kind(id NodeID) Kind { return t.node(id).Kind }
func (t *Tree) Parent(id NodeID) NodeID { return t.node(id).Parent }
func (t *Tree) Span(id NodeID) source.Span { return t.node(id).Span }

// Children returns the ordered children of id. The slice must not be modified.
func (t *Tree) Children(id NodeID) []Child {
	return t.node(id).Children
}

// ChildNodes returns the node children of id, skipping tokens.
func (t *Tree) ChildNodes(id NodeID) []NodeID {
	var out []NodeID
	for _, c := range t.node(id).Children {
		if c.IsNode() {
			out = append(out, c.Node)
		}
	}
	return out
}

// FirstChildNode returns the first node child matching any selector, or the
// first node child at all when no selector is given.
func (t *Tree) FirstChildNode(id NodeID, selectors ...Selector) NodeID {
	for _, c := range t.node(id).Children {
		if c.IsNode() && (len(selectors) == 0 || Match(t.Kind(c.Node), selectors...)) {
			return c.Node
		}
	}
	return NoNode
}

// ChildToken returns the first direct token child of the given kind.
func (t *Tree) ChildToken(id NodeID, kind token.Kind) (token.Token, bool) {
	for _, c := range t.node(id).Children {
		if c.IsToken() && t.tokens[c.Token].Kind == kind {
			return t.tokens[c.Token], true
		}
	}
	return token.Token{}, false
}

// Is reports whether the kind of id matches any of the selectors.
func (t *Tree) Is(id NodeID, selectors ...Selector) bool {
	return Match(t.Kind(id), selectors...)
}

// FirstToken returns the index of the first token covered by id.
func (t *Tree) FirstToken(id NodeID) TokenIndex {
	for {
		n := t.node(id)
		if len(n.Children) == 0 {
			return 0
		}
		c := n.Children[0]
		if c.IsToken() {
			return c.Token
		}
		id = c.Node
	}
}

// LastToken returns the index of the last token covered by id.
func (t *Tree) LastToken(id NodeID) TokenIndex {
	for {
		n := t.node(id)
		if len(n.Children) == 0 {
			return 0
		}
		c := n.Children[len(n.Children)-1]
		if c.IsToken() {
			return c.Token
		}
		id = c.Node
	}
}

// FullSpan extends Span to the leading trivia of the first token.
func (t *Tree) FullSpan(id NodeID) source.Span {
	sp := t.Span(id)
	if first := t.tokens[t.FirstToken(id)]; len(first.Leading) > 0 {
		sp.Start = first.Leading[0].Span.Start
	}
	return sp
}

// Text returns the source text of id without leading trivia.
func (t *Tree) Text(id NodeID) string {
	sp := t.Span(id)
	return string(t.file.Content[sp.Start:sp.End])
}

// Pos is the position of the first token of id.
func (t *Tree) Pos(id NodeID) source.LineCol {
	return t.tokens[t.FirstToken(id)].Pos
}

// EndPos is the position just past the last token of id.
func (t *Tree) EndPos(id NodeID) source.LineCol {
	return t.file.Position(t.Span(id).End)
}

// Inspect walks the subtree rooted at id in pre-order. Returning false from
// fn skips the children of that node.
func (t *Tree) Inspect(id NodeID, fn func(NodeID) bool) {
	stack := []NodeID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			continue
		}
		children := t.node(cur).Children
		for i := len(children) - 1; i >= 0; i-- {
			if children[i].IsNode() {
				stack = append(stack, children[i].Node)
			}
		}
	}
}

// Source rebuilds the text covered by the tree from its tokens and trivia.
func (t *Tree) Source() string {
	size := 0
	if t.file != nil {
		size = len(t.file.Content)
	}
	buf := make([]byte, 0, size)
	var visit func(NodeID)
	visit = func(id NodeID) {
		for _, c := range t.node(id).Children {
			if c.IsNode() {
				visit(c.Node)
				continue
			}
			tok := t.tokens[c.Token]
			for _, tr := range tok.Leading {
				buf = append(buf, tr.Text...)
			}
			buf = append(buf, tok.Text...)
		}
	}
	visit(t.root)
	return string(buf)
}

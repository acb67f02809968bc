package ast

import (
	"fmt"
	"slices"

	"jsfront/internal/source"
	"jsfront/internal/token"
)

// Builder assembles a Tree bottom-up for the parser. Children accumulate on
// a pending stack; Close wraps everything pushed since a marker into a new
// node and leaves that node on the stack in their place.
type Builder struct {
	file    *source.File
	tokens  []token.Token
	nodes   *Arena[Node]
	pending []Child
}

// Marker is a position on the pending stack returned by Open.
type Marker int

// Snapshot captures the builder state for speculative parsing.
type Snapshot struct {
	pending int
	nodes   uint32
}

func NewBuilder(file *source.File, tokens []token.Token) *Builder {
	capHint := uint(len(tokens)/2 + 1) //nolint:gosec // len is never negative
	return &Builder{
		file:    file,
		tokens:  tokens,
		nodes:   NewArena[Node](capHint),
		pending: make([]Child, 0, 64),
	}
}

// Open starts a node whose children are pushed from now on.
func (b *Builder) Open() Marker {
	return Marker(len(b.pending))
}

// PushToken appends a token to the node being built.
func (b *Builder) PushToken(i TokenIndex) {
	b.pending = append(b.pending, TokenChild(i))
}

// Pending reports how many children were pushed since m.
func (b *Builder) Pending(m Marker) int {
	return len(b.pending) - int(m)
}

// Close turns the children pushed since m into a node of the given kind.
func (b *Builder) Close(kind Kind, m Marker) NodeID {
	if !kind.Valid() {
		panic(fmt.Sprintf("ast: close with invalid kind %d", kind))
	}
	if int(m) >= len(b.pending) {
		panic(fmt.Sprintf("ast: %s closed without children", kind))
	}
	children := slices.Clone(b.pending[m:])
	b.pending = b.pending[:m]
	sp := source.Span{
		File:  b.file.ID,
		Start: b.childSpan(children[0]).Start,
		End:   b.childSpan(children[len(children)-1]).End,
	}
	id := NodeID(b.nodes.Allocate(Node{Kind: kind, Span: sp, Children: children}))
	b.pending = append(b.pending, NodeChild(id))
	return id
}

func (b *Builder) childSpan(c Child) source.Span {
	if c.IsNode() {
		return b.nodes.Get(uint32(c.Node)).Span
	}
	return b.tokens[c.Token].Span
}

// Mark captures the state to return to when a speculative parse fails.
// Nodes opened before the snapshot must not be closed before the matching
// Reset.
func (b *Builder) Mark() Snapshot {
	return Snapshot{pending: len(b.pending), nodes: b.nodes.Len()}
}

// Reset discards everything built since s.
func (b *Builder) Reset(s Snapshot) {
	clear(b.pending[s.pending:])
	b.pending = b.pending[:s.pending]
	b.nodes.Truncate(s.nodes)
}

// Finish closes the Program node over the whole stack and links parents.
func (b *Builder) Finish() *Tree {
	root := b.Close(Program, 0)
	b.pending = nil
	data := b.nodes.Slice()
	for i := range data {
		parent := NodeID(i + 1) //nolint:gosec // bounded by the arena length
		for _, c := range data[i].Children {
			if c.IsNode() {
				data[c.Node-1].Parent = parent
			}
		}
	}
	return &Tree{file: b.file, tokens: b.tokens, nodes: b.nodes, root: root}
}

// Last returns the node on top of the pending stack, or NoNode when the top
// is a token or the stack is empty.
func (b *Builder) Last() NodeID {
	if len(b.pending) == 0 {
		return NoNode
	}
	return b.pending[len(b.pending)-1].Node
}

// Kind reports the kind of an already closed node.
func (b *Builder) Kind(id NodeID) Kind {
	if n := b.nodes.Get(uint32(id)); n != nil {
		return n.Kind
	}
	return Invalid
}

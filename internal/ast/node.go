package ast

import "jsfront/internal/source"

type (
	// NodeID is the stable identity of a node within its tree (1-based).
	NodeID uint32
	// TokenIndex addresses a token of the tree's token slice.
	TokenIndex uint32
)

const NoNode NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNode }

// Child is either a nested node or a token.
type Child struct {
	Node  NodeID     // valid for node children
	Token TokenIndex // meaningful only when Node is NoNode
}

func NodeChild(id NodeID) Child { return Child{Node: id} }
func TokenChild(i TokenIndex) Child { return Child{Token: i} }
func (c Child) IsNode() bool { return c.Node != NoNode }
func (c Child) IsToken() bool { return c.Node == NoNode }

// Node is one vertex of the concrete syntax tree. Span runs from the start
// of the first token to the end of the last one; leading trivia is excluded.
type Node struct {
	Kind     Kind
	Span     source.Span
	Children []Child
	Parent   NodeID
}

package ast

import (
	"strconv"
	"strings"

	"jsfront/internal/token"
)

// Dump renders the tree as an indented s-expression: one node per line,
// tokens quoted on the line of their parent.
//
//	(Program
//	  (ExpressionStatement
//	    (CallExpression
//	      (Identifier "eval")
//	      (Arguments "(" (Identifier "x") ")"))
//	    ";")
//	  <EOF>)
func Dump(t *Tree) string {
	var sb strings.Builder
	dumpNode(&sb, t, t.Root(), 0)
	sb.WriteByte('\n')
	return sb.String()
}

func dumpNode(sb *strings.Builder, t *Tree, id NodeID, depth int) {
	sb.WriteByte('(')
	sb.WriteString(t.Kind(id).String())
	children := t.Children(id)
	// a node whose children are all leaves or single-token nodes stays on one line
	inline := true
	for _, c := range children {
		if c.IsNode() && !isLeafNode(t, c.Node) {
			inline = false
			break
		}
	}
	for _, c := range children {
		if inline {
			sb.WriteByte(' ')
		} else {
			sb.WriteByte('\n')
			sb.WriteString(strings.Repeat("  ", depth+1))
		}
		if c.IsToken() {
			writeToken(sb, t.Token(c.Token))
			continue
		}
		dumpNode(sb, t, c.Node, depth+1)
	}
	sb.WriteByte(')')
}

func isLeafNode(t *Tree, id NodeID) bool {
	for _, c := range t.Children(id) {
		if c.IsNode() {
			return false
		}
	}
	return true
}

func writeToken(sb *strings.Builder, tok token.Token) {
	if tok.Kind == token.EOF {
		sb.WriteString("<EOF>")
		return
	}
	sb.WriteString(strconv.Quote(tok.Text))
}

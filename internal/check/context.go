package check

import (
	"jsfront/internal/ast"
	"jsfront/internal/source"
)

// Context is handed to one callback invocation. Reports made after the
// callback has returned are rejected.
type Context struct {
	tree   *ast.Tree
	rule   string
	node   ast.NodeID
	sink   *IssueSink
	active bool
}

func (c *Context) Tree() *ast.Tree    { return c.tree }
func (c *Context) RuleID() string     { return c.rule }
func (c *Context) Node() ast.NodeID   { return c.node }
func (c *Context) File() *source.File { return c.tree.File() }

// Report attaches an issue to a node, positioned at its first token.
func (c *Context) Report(id ast.NodeID, message string) bool {
	if !c.active || !id.IsValid() {
		return false
	}
	return c.ReportAt(c.tree.Span(id), message)
}

// ReportToken attaches an issue to a single token.
func (c *Context) ReportToken(i ast.TokenIndex, message string) bool {
	if !c.active || int(i) >= len(c.tree.Tokens()) {
		return false
	}
	return c.ReportAt(c.tree.Token(i).Span, message)
}

// ReportAt attaches an issue to an arbitrary span of the current file.
func (c *Context) ReportAt(span source.Span, message string) bool {
	if !c.active {
		return false
	}
	file := c.tree.File()
	start, end := file.Resolve(span)
	c.sink.Add(Issue{
		RuleID:  c.rule,
		Message: message,
		Line:    start.Line,
		Column:  start.Col,
		EndLine: end.Line,
		Span:    span,
	})
	return true
}

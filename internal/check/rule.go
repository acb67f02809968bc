// Package check walks a syntax tree once and dispatches every node to the
// rules subscribed to its kind.
package check

import (
	"jsfront/internal/ast"
)

// Rule is the minimal capability of an analysis rule. A rule also implements
// EnterRule, ExitRule or both.
type Rule interface {
	ID() string
	// Kinds lists the node kinds or groups the rule subscribes to.
	Kinds() []ast.Selector
}

// EnterRule is called when a subscribed node is entered (pre-order).
type EnterRule interface {
	Rule
	Enter(ctx *Context, id ast.NodeID) error
}

// ExitRule is called when a subscribed node is left (post-order).
type ExitRule interface {
	Rule
	Exit(ctx *Context, id ast.NodeID) error
}

// Callback is the shape of enter and exit callbacks.
type Callback func(ctx *Context, id ast.NodeID) error

type funcRule struct {
	id      string
	kinds   []ast.Selector
	onEnter Callback
	onExit  Callback
}

func (r *funcRule) ID() string            { return r.id }
func (r *funcRule) Kinds() []ast.Selector { return r.kinds }

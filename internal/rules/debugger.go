package rules

import (
	"jsfront/internal/ast"
	"jsfront/internal/check"
)

type debuggerRule struct{}

func (debuggerRule) ID() string { return "debugger" }

func (debuggerRule) Description() string { return "debugger statements left in code" }

func (debuggerRule) Kinds() []ast.Selector { return []ast.Selector{ast.DebuggerStatement} }

func (debuggerRule) Enter(ctx *check.Context, id ast.NodeID) error {
	ctx.Report(id, "Remove this debugger statement.")
	return nil
}

package rules

import (
	"jsfront/internal/ast"
	"jsfront/internal/check"
)

type evalRule struct{}

func (evalRule) ID() string { return "eval" }

func (evalRule) Description() string { return "calls of the eval function" }

func (evalRule) Kinds() []ast.Selector { return []ast.Selector{ast.CallExpression} }

func (evalRule) Enter(ctx *check.Context, id ast.NodeID) error {
	tree := ctx.Tree()
	callee := tree.FirstChildNode(id)
	if tree.Kind(callee) == ast.Identifier && tree.Text(callee) == "eval" {
		ctx.Report(id, `Remove this use of the "eval" function.`)
	}
	return nil
}

package rules

import (
	"strings"

	"jsfront/internal/ast"
	"jsfront/internal/check"
)

// modelPropertyRule flags model attribute names containing spaces: the
// string passed to `x.set("a b", v)`, keys of an object passed to `x.set`,
// and keys of the `defaults` object in `X.extend({defaults: {...}})`.
type modelPropertyRule struct{}

func (modelPropertyRule) ID() string { return "space-in-model-property-name" }

func (modelPropertyRule) Description() string {
	return "model property names containing spaces"
}

func (modelPropertyRule) Kinds() []ast.Selector { return []ast.Selector{ast.CallExpression} }

const modelPropertyMessage = "Rename this property to remove the spaces."

func (modelPropertyRule) Enter(ctx *check.Context, id ast.NodeID) error {
	tree := ctx.Tree()
	method := calledMethod(tree, id)
	if method == "" {
		return nil
	}
	args := tree.FirstChildNode(id, ast.Arguments)
	if !args.IsValid() {
		return nil
	}
	first := tree.FirstChildNode(args)
	if !first.IsValid() {
		return nil
	}

	switch method {
	case "set":
		switch tree.Kind(first) {
		case ast.StringLiteral:
			if hasSpace(tree.Text(first)) {
				ctx.Report(first, modelPropertyMessage)
			}
		case ast.ObjectLiteral:
			reportSpacedKeys(ctx, first)
		}
	case "extend":
		if tree.Kind(first) != ast.ObjectLiteral {
			return nil
		}
		for _, prop := range tree.ChildNodes(first) {
			if tree.Kind(prop) != ast.PropertyAssignment {
				continue
			}
			nodes := tree.ChildNodes(prop)
			if len(nodes) == 2 && propertyKey(tree, nodes[0]) == "defaults" && tree.Kind(nodes[1]) == ast.ObjectLiteral {
				reportSpacedKeys(ctx, nodes[1])
			}
		}
	}
	return nil
}

// calledMethod returns the property name of a `recv.name(...)` callee.
func calledMethod(tree *ast.Tree, call ast.NodeID) string {
	callee := tree.FirstChildNode(call)
	if !callee.IsValid() || tree.Kind(callee) != ast.MemberExpression {
		return ""
	}
	name := tree.FirstChildNode(callee, ast.IdentifierName)
	if !name.IsValid() {
		return ""
	}
	return tree.Text(name)
}

func reportSpacedKeys(ctx *check.Context, obj ast.NodeID) {
	tree := ctx.Tree()
	for _, prop := range tree.ChildNodes(obj) {
		if tree.Kind(prop) != ast.PropertyAssignment {
			continue
		}
		key := tree.FirstChildNode(prop)
		if tree.Kind(key) == ast.StringLiteral && hasSpace(tree.Text(key)) {
			ctx.Report(key, modelPropertyMessage)
		}
	}
}

// propertyKey is the unquoted name of an identifier or string key.
func propertyKey(tree *ast.Tree, key ast.NodeID) string {
	switch tree.Kind(key) {
	case ast.IdentifierName:
		return tree.Text(key)
	case ast.StringLiteral:
		return unquote(tree.Text(key))
	}
	return ""
}

func hasSpace(lit string) bool {
	return strings.ContainsRune(unquote(lit), ' ')
}

func unquote(lit string) string {
	if len(lit) >= 2 {
		return lit[1 : len(lit)-1]
	}
	return lit
}

package rules

import (
	"fmt"
	"slices"
	"strings"

	"jsfront/internal/ast"
	"jsfront/internal/check"
)

// unusedArgumentRule flags trailing parameters that no identifier of the
// function refers to. It is purely syntactic: shadowing is not tracked.
type unusedArgumentRule struct{}

func (unusedArgumentRule) ID() string { return "unused-function-argument" }

func (unusedArgumentRule) Description() string {
	return "trailing function parameters that are never used"
}

func (unusedArgumentRule) Kinds() []ast.Selector { return []ast.Selector{ast.GroupFunction} }

func (unusedArgumentRule) Enter(ctx *check.Context, id ast.NodeID) error {
	tree := ctx.Tree()
	params := parameterNames(tree, id)
	if len(params) == 0 {
		return nil
	}

	used := make(map[string]bool)
	tree.Inspect(id, func(n ast.NodeID) bool {
		if tree.Kind(n) == ast.Identifier {
			used[tree.Text(n)] = true
		}
		return true
	})
	if used["arguments"] {
		return nil
	}

	var unused []string
	for i := len(params) - 1; i >= 0; i-- {
		name := params[i]
		if name == "" || used[name] {
			break
		}
		unused = append(unused, name)
	}
	if len(unused) == 0 {
		return nil
	}
	slices.Reverse(unused)

	noun := "parameter"
	if len(unused) > 1 {
		noun = "parameters"
	}
	ctx.Report(id, fmt.Sprintf("Remove the unused function %s %q.", noun, strings.Join(unused, ", ")))
	return nil
}

// parameterNames lists the bound name of each parameter; destructuring
// patterns yield "".
func parameterNames(tree *ast.Tree, fn ast.NodeID) []string {
	if single := tree.FirstChildNode(fn, ast.BindingIdentifier); single.IsValid() && tree.Kind(fn) == ast.ArrowFunction {
		return []string{tree.Text(single)}
	}
	list := tree.FirstChildNode(fn, ast.FormalParameters)
	if !list.IsValid() {
		return nil
	}
	var names []string
	for _, p := range tree.ChildNodes(list) {
		names = append(names, boundName(tree, p))
	}
	return names
}

func boundName(tree *ast.Tree, p ast.NodeID) string {
	switch tree.Kind(p) {
	case ast.BindingIdentifier:
		return tree.Text(p)
	case ast.BindingElement, ast.RestElement:
		return boundName(tree, tree.FirstChildNode(p))
	}
	return ""
}

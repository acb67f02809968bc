package check

import (
	"jsfront/internal/ast"
)

type frame struct {
	id   ast.NodeID
	exit bool
}

// Traverse walks tree once: enter callbacks in pre-order, exit callbacks in
// post-order, subscribers of a node in registration order. The visiting order
// depends only on the tree. An unfrozen registry is frozen first.
func Traverse(tree *ast.Tree, reg *Registry) Result {
	reg.Freeze()
	var (
		sink IssueSink
		res  Result
	)
	if tree == nil || !tree.Root().IsValid() {
		return res
	}

	stack := []frame{{id: tree.Root()}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		subs := reg.subscribers(tree.Kind(f.id))

		if f.exit {
			for _, s := range subs {
				if s.onExit == nil {
					continue
				}
				if err := run(tree, &sink, s.rule, s.onExit, f.id); err != nil {
					res.Errors = append(res.Errors, failure(tree, s.rule, f.id, true, err))
				}
			}
			continue
		}

		for _, s := range subs {
			if s.onEnter == nil {
				continue
			}
			if err := run(tree, &sink, s.rule, s.onEnter, f.id); err != nil {
				res.Errors = append(res.Errors, failure(tree, s.rule, f.id, false, err))
			}
		}
		stack = append(stack, frame{id: f.id, exit: true})
		children := tree.Children(f.id)
		for i := len(children) - 1; i >= 0; i-- {
			if children[i].IsNode() {
				stack = append(stack, frame{id: children[i].Node})
			}
		}
	}
	res.Issues = sink.Issues()
	return res
}

func failure(tree *ast.Tree, rule string, id ast.NodeID, exit bool, err error) *RuleExecutionError {
	return &RuleExecutionError{
		RuleID: rule,
		Node:   id,
		Kind:   tree.Kind(id),
		Pos:    tree.Pos(id),
		Span:   tree.Span(id),
		Exit:   exit,
		Err:    err,
	}
}

// run invokes one callback; a panic is returned as *PanicError.
func run(tree *ast.Tree, sink *IssueSink, rule string, cb Callback, id ast.NodeID) (err error) {
	ctx := &Context{tree: tree, rule: rule, node: id, sink: sink, active: true}
	defer func() {
		ctx.active = false
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return cb(ctx, id)
}

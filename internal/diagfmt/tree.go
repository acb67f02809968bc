package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"jsfront/internal/ast"
	"jsfront/internal/source"
)

// TreeNodeOutput is the JSON form of a node or, when Token is set, a token.
type TreeNodeOutput struct {
	Kind     string           `json:"kind"`
	Token    bool             `json:"token,omitempty"`
	Text     string           `json:"text,omitempty"`
	Span     source.Span      `json:"span"`
	Line     uint32           `json:"line"`
	Col      uint32           `json:"col"`
	Children []TreeNodeOutput `json:"children,omitempty"`
}

// FormatTreeSexpr prints the tree as an indented s-expression.
func FormatTreeSexpr(w io.Writer, tree *ast.Tree) error {
	_, err := io.WriteString(w, ast.Dump(tree))
	return err
}

// FormatTreePretty prints the tree with box-drawing guides, one node or
// token per line.
func FormatTreePretty(w io.Writer, tree *ast.Tree, fs *source.FileSet) error {
	root := tree.Root()
	if _, err := fmt.Fprintf(w, "%s %s\n", tree.Kind(root), formatSpan(tree.Span(root), fs)); err != nil {
		return err
	}
	return formatChildren(w, tree, root, fs, "")
}

func formatChildren(w io.Writer, tree *ast.Tree, id ast.NodeID, fs *source.FileSet, prefix string) error {
	children := tree.Children(id)
	for i, c := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		if c.IsToken() {
			tok := tree.Token(c.Token)
			if _, err := fmt.Fprintf(w, "%s%s%s %q\n", prefix, branch, tok.Kind, tok.Text); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s%s%s %s\n", prefix, branch, tree.Kind(c.Node), formatSpan(tree.Span(c.Node), fs)); err != nil {
			return err
		}
		if err := formatChildren(w, tree, c.Node, fs, prefix+next); err != nil {
			return err
		}
	}
	return nil
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs == nil || !fs.Has(span.File) {
		return fmt.Sprintf("[%d..%d)", span.Start, span.End)
	}
	start, end := fs.Resolve(span)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

// BuildTreeOutput converts the tree into its JSON form.
func BuildTreeOutput(tree *ast.Tree) TreeNodeOutput {
	return buildNode(tree, tree.Root())
}

func buildNode(tree *ast.Tree, id ast.NodeID) TreeNodeOutput {
	pos := tree.Pos(id)
	out := TreeNodeOutput{
		Kind: tree.Kind(id).String(),
		Span: tree.Span(id),
		Line: pos.Line,
		Col:  pos.Col,
	}
	for _, c := range tree.Children(id) {
		if c.IsNode() {
			out.Children = append(out.Children, buildNode(tree, c.Node))
			continue
		}
		tok := tree.Token(c.Token)
		out.Children = append(out.Children, TreeNodeOutput{
			Kind:  tok.Kind.String(),
			Token: true,
			Text:  tok.Text,
			Span:  tok.Span,
			Line:  tok.Pos.Line,
			Col:   tok.Pos.Col,
		})
	}
	return out
}

// FormatTreeJSON prints the tree as nested JSON objects.
func FormatTreeJSON(w io.Writer, tree *ast.Tree) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTreeOutput(tree))
}

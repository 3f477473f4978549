package diagfmt

import (
	"fmt"
	"io"

	"dol/internal/ast"
)

// FormatASTPretty prints the tree with box-drawing guides:
//
//	example.dol
//	└─ Spirit Foo (line 1)
//	   └─ Function bar() (line 2)
func FormatASTPretty(w io.Writer, title string, nodes []ast.Node) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	return formatNodes(w, nodes, "")
}

func formatNodes(w io.Writer, nodes []ast.Node, prefix string) error {
	for i, n := range nodes {
		branch, next := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s (line %d)\n", prefix, branch, nodeLabel(n), n.DeclLine()); err != nil {
			return err
		}
		if s, ok := n.(*ast.Spirit); ok {
			if err := formatNodes(w, s.Body, prefix+next); err != nil {
				return err
			}
		}
	}
	return nil
}

func nodeLabel(n ast.Node) string {
	switch v := n.(type) {
	case *ast.Spirit:
		return "Spirit " + v.Name
	case *ast.Function:
		if v.Visibility == ast.VisPublic {
			return "Function pub " + v.Name + "()"
		}
		return "Function " + v.Name + "()"
	default:
		return n.Kind().String()
	}
}

// FormatASTJSON writes nodes in their tagged JSON shape.
func FormatASTJSON(w io.Writer, nodes []ast.Node) error {
	if nodes == nil {
		nodes = []ast.Node{}
	}
	return encode(w, nodes)
}

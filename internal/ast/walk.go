package ast

// Visitor is called for every node in depth-first, source order. depth is 0
// for top-level nodes. Returning false skips the node's children.
type Visitor func(n Node, depth int) bool

// Walk traverses nodes depth-first.
func Walk(nodes []Node, visit Visitor) {
	walk(nodes, 0, visit)
}

func walk(nodes []Node, depth int, visit Visitor) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if !visit(n, depth) {
			continue
		}
		if s, ok := n.(*Spirit); ok {
			walk(s.Body, depth+1, visit)
		}
	}
}

// Count returns how many spirits and functions nodes contain, recursively.
func Count(nodes []Node) (spirits, functions int) {
	Walk(nodes, func(n Node, _ int) bool {
		switch n.Kind() {
		case KindSpirit:
			spirits++
		case KindFunction:
			functions++
		}
		return true
	})
	return spirits, functions
}

// Find returns the first node named name, searching depth-first.
func Find(nodes []Node, name string) Node {
	var found Node
	Walk(nodes, func(n Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.Ident() == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// Inspect calls fn for every node depth-first; fn returning false prunes the
// subtree.
func Inspect(nodes []Node, fn func(Node) bool) {
	Walk(nodes, func(n Node, _ int) bool { return fn(n) })
}

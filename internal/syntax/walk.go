package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order. Children are the attributes
// ending in .node or .list, visited in attribute order; absent optional
// children are skipped.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}
	for _, c := range Children(node) {
		Walk(c, v)
	}
}

// Inspect traverses an AST and calls f for each node.
// Convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, Visitor(f))
}

// WalkDepth is like Walk but also passes the depth of each node, with the
// root at depth 0.
func WalkDepth(node Node, f func(node Node, depth int) bool) {
	walkDepth(node, 0, f)
}

func walkDepth(node Node, depth int, f func(Node, int) bool) {
	if node == nil || !f(node, depth) {
		return
	}
	for _, c := range Children(node) {
		walkDepth(c, depth+1, f)
	}
}

package runelock

import "fmt"

// NodeHandle is the stable index of a node in an AssumptionTree's arena.
type NodeHandle int

func (h NodeHandle) String() string {
	return fmt.Sprintf("%d", int(h))
}

// UnknownNodeError reports a node id that does not exist in the tree.
type UnknownNodeError struct {
	ID int
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("node %d does not exist", e.ID)
}

// AssumptionTree is a slice-backed arena tree. Nodes are addressed by
// stable integer handles rather than pointers so snapshots can be cheap
// values and no ownership cycles arise. Nodes are never deleted; "going
// back" means moving a cursor, not destroying history.
type AssumptionTree[T any] struct {
	nodes []treeNode[T]
}

type treeNode[T any] struct {
	parent   NodeHandle // -1 for the root
	children []NodeHandle
	data     T
}

// NewAssumptionTree returns a tree holding only the root node, and the
// root's handle.
func NewAssumptionTree[T any](root T) (*AssumptionTree[T], NodeHandle) {
	t := &AssumptionTree[T]{
		nodes: []treeNode[T]{{parent: -1, data: root}},
	}
	return t, NodeHandle(0)
}

// InsertChild appends a new node under parent and returns its handle.
func (t *AssumptionTree[T]) InsertChild(parent NodeHandle, data T) NodeHandle {
	t.nodes = append(t.nodes, treeNode[T]{parent: parent, data: data})
	child := NodeHandle(len(t.nodes) - 1)
	t.nodes[parent].children = append(t.nodes[parent].children, child)
	return child
}

// Handle validates a raw node id from the boundary.
func (t *AssumptionTree[T]) Handle(id int) (NodeHandle, error) {
	if id < 0 || id >= len(t.nodes) {
		return 0, &UnknownNodeError{ID: id}
	}
	return NodeHandle(id), nil
}

// Len returns the number of nodes in the tree.
func (t *AssumptionTree[T]) Len() int {
	return len(t.nodes)
}

// ParentOf returns the parent of node; ok is false for the root.
func (t *AssumptionTree[T]) ParentOf(node NodeHandle) (NodeHandle, bool) {
	p := t.nodes[node].parent
	return p, p >= 0
}

// Children returns the child handles of node in insertion order.
func (t *AssumptionTree[T]) Children(node NodeHandle) []NodeHandle {
	return t.nodes[node].children
}

// Data returns a pointer to the payload of node.
func (t *AssumptionTree[T]) Data(node NodeHandle) *T {
	return &t.nodes[node].data
}

// Walk visits every node depth-first from the root, reporting each node's
// handle and depth.
func (t *AssumptionTree[T]) Walk(visit func(node NodeHandle, depth int)) {
	var walk func(node NodeHandle, depth int)
	walk = func(node NodeHandle, depth int) {
		visit(node, depth)
		for _, child := range t.nodes[node].children {
			walk(child, depth+1)
		}
	}
	if len(t.nodes) > 0 {
		walk(0, 0)
	}
}

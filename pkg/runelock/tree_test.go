package runelock

import (
	"errors"
	"testing"
)

func TestAssumptionTreeInsertAndNavigate(t *testing.T) {
	tree, root := NewAssumptionTree("root")
	if root != 0 {
		t.Fatalf("root handle = %d, want 0", root)
	}
	if _, ok := tree.ParentOf(root); ok {
		t.Error("root should have no parent")
	}

	a := tree.InsertChild(root, "a")
	b := tree.InsertChild(root, "b")
	aa := tree.InsertChild(a, "aa")

	if parent, _ := tree.ParentOf(aa); parent != a {
		t.Errorf("ParentOf(aa) = %v, want %v", parent, a)
	}
	children := tree.Children(root)
	if len(children) != 2 || children[0] != a || children[1] != b {
		t.Errorf("Children(root) = %v, want [%v %v]", children, a, b)
	}
	if got := *tree.Data(aa); got != "aa" {
		t.Errorf("Data(aa) = %q, want %q", got, "aa")
	}
	if tree.Len() != 4 {
		t.Errorf("Len() = %d, want 4", tree.Len())
	}
}

func TestAssumptionTreeHandleValidation(t *testing.T) {
	tree, root := NewAssumptionTree(1)
	tree.InsertChild(root, 2)

	if _, err := tree.Handle(1); err != nil {
		t.Errorf("Handle(1) unexpected error: %v", err)
	}

	for _, id := range []int{-1, 2, 100} {
		_, err := tree.Handle(id)
		var unknown *UnknownNodeError
		if !errors.As(err, &unknown) {
			t.Errorf("Handle(%d) = %v, want UnknownNodeError", id, err)
			continue
		}
		if unknown.ID != id {
			t.Errorf("UnknownNodeError.ID = %d, want %d", unknown.ID, id)
		}
	}
}

func TestAssumptionTreeWalkOrder(t *testing.T) {
	tree, root := NewAssumptionTree(0)
	a := tree.InsertChild(root, 1)
	tree.InsertChild(root, 2)
	tree.InsertChild(a, 3)

	var visited []int
	var depths []int
	tree.Walk(func(node NodeHandle, depth int) {
		visited = append(visited, *tree.Data(node))
		depths = append(depths, depth)
	})

	wantOrder := []int{0, 1, 3, 2}
	wantDepths := []int{0, 1, 2, 1}
	for i := range wantOrder {
		if visited[i] != wantOrder[i] || depths[i] != wantDepths[i] {
			t.Fatalf("walk = %v at depths %v, want %v at %v",
				visited, depths, wantOrder, wantDepths)
		}
	}
}

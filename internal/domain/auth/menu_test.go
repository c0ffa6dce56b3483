package auth

import "testing"

func sampleTree() []MenuNode {
	return buildTree([]menuRow{
		{ID: "1", Key: "master", Label: "Master Data", Path: "/master"},
		{ID: "2", ParentID: "1", Key: "employees", Label: "Employees", Path: "/master/employees", CanCreate: true, CanUpdate: true},
		{ID: "3", ParentID: "1", Key: "units", Label: "Units", Path: "/master/units", CanDelete: true},
		{ID: "4", Key: "reports", Label: "Reports", Path: "/reports"},
	})
}

func TestBuildTreeNesting(t *testing.T) {
	tree := sampleTree()
	if len(tree) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(tree))
	}
	master := FindNode(tree, "master")
	if master == nil || len(master.Children) != 2 {
		t.Fatalf("expected master with 2 children, got %+v", master)
	}
}

func TestBuildTreeOrphanSurfacesAsRoot(t *testing.T) {
	tree := buildTree([]menuRow{
		{ID: "2", ParentID: "1", Key: "employees", Label: "Employees", Path: "/master/employees"},
	})
	if len(tree) != 1 || tree[0].Key != "employees" {
		t.Fatalf("orphan should become a root, got %+v", tree)
	}
}

func TestFindNodeNested(t *testing.T) {
	tree := sampleTree()
	node := FindNode(tree, "units")
	if node == nil || node.Path != "/master/units" {
		t.Fatalf("expected nested units node, got %+v", node)
	}
	if FindNode(tree, "missing") != nil {
		t.Fatal("expected nil for unknown key")
	}
}

func TestMenuNodeAllows(t *testing.T) {
	node := MenuNode{CanCreate: true}
	if !node.Allows(ActionRead) {
		t.Error("read should be implied by presence")
	}
	if !node.Allows(ActionCreate) {
		t.Error("create flag should allow create")
	}
	if node.Allows(ActionUpdate) || node.Allows(ActionDelete) {
		t.Error("unset flags should deny")
	}
	if node.Allows("export") {
		t.Error("unknown action should deny")
	}
}

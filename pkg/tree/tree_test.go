package tree

// Shared fixtures for the package tests. testNode is the minimal
// caller-owned node shape: an id, ordered children and a back-pointer the
// optional Parent accessor can use.

type testNode struct {
	id       string
	children []*testNode
	parent   *testNode
}

// node builds a testNode and wires the parent back-pointers.
func node(id string, children ...*testNode) *testNode {
	n := &testNode{id: id, children: children}
	for _, c := range children {
		c.parent = n
	}
	return n
}

func testAccessor() Accessor[*testNode, string] {
	return Accessor[*testNode, string]{
		Children: func(n *testNode) []*testNode { return n.children },
		Parent: func(n *testNode) (*testNode, bool) {
			return n.parent, n.parent != nil
		},
		Identity: func(n *testNode) string { return n.id },
	}
}

// testAccessorNoParent drops the optional Parent function to exercise the
// degraded code paths.
func testAccessorNoParent() Accessor[*testNode, string] {
	acc := testAccessor()
	acc.Parent = nil
	return acc
}

// sampleForest builds:
//
//	a
//	├── b
//	│   ├── d
//	│   └── e
//	└── c
//	f
//	└── g
func sampleForest() []*testNode {
	return []*testNode{
		node("a",
			node("b", node("d"), node("e")),
			node("c"),
		),
		node("f", node("g")),
	}
}

func entryIDs(entries []*Entry[*testNode]) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.Node().id
	}
	return ids
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

package tree

import (
	"testing"
)

func TestSearchAggregation(t *testing.T) {
	// A -> [B, C], B -> [D]; the predicate matches only D.
	d := node("D")
	b := node("B", d)
	cNode := node("C")
	a := node("A", b, cNode)

	c := NewController([]*testNode{a}, testAccessor())
	report := c.Search(func(n *testNode) bool { return n.id == "D" })

	if report.TotalNodes != 4 {
		t.Errorf("TotalNodes = %d, want 4", report.TotalNodes)
	}
	if report.TotalMatches != 1 {
		t.Errorf("TotalMatches = %d, want 1", report.TotalMatches)
	}

	want := map[string]MatchDetails{
		"D": {Direct: true, SubtreeNodes: 0, SubtreeMatches: 0},
		"B": {Direct: false, SubtreeNodes: 1, SubtreeMatches: 1},
		"A": {Direct: false, SubtreeNodes: 3, SubtreeMatches: 1},
	}
	if len(report.Matches) != len(want) {
		t.Errorf("Matches has %d entries, want %d: %v", len(report.Matches), len(want), report.Matches)
	}
	for id, details := range want {
		got, ok := report.Matches[id]
		if !ok {
			t.Errorf("node %s missing from report", id)
			continue
		}
		if got != details {
			t.Errorf("node %s: details = %+v, want %+v", id, got, details)
		}
	}

	// C matched neither directly nor through a descendant.
	if _, ok := report.Matches["C"]; ok {
		t.Error("node C should be absent from the report")
	}

	// Indirect classification.
	if report.Matches["D"].IsIndirect() {
		t.Error("D is a direct match, not indirect")
	}
	if !report.Matches["B"].IsIndirect() {
		t.Error("B should be an indirect match")
	}
}

func TestSearchNoMatches(t *testing.T) {
	c := NewController(sampleForest(), testAccessor())

	report := c.Search(func(*testNode) bool { return false })
	if len(report.Matches) != 0 {
		t.Errorf("Matches = %v, want empty", report.Matches)
	}
	if report.TotalNodes != 7 {
		t.Errorf("TotalNodes = %d, want 7", report.TotalNodes)
	}
	if report.TotalMatches != 0 {
		t.Errorf("TotalMatches = %d, want 0", report.TotalMatches)
	}
}

func TestSearchDirectMatchWithMatchingDescendants(t *testing.T) {
	c := NewController(sampleForest(), testAccessor())

	// Matches b and both of its children.
	report := c.Search(func(n *testNode) bool {
		return n.id == "b" || n.id == "d" || n.id == "e"
	})

	got := report.Matches["b"]
	want := MatchDetails{Direct: true, SubtreeNodes: 2, SubtreeMatches: 2}
	if got != want {
		t.Errorf("node b: details = %+v, want %+v", got, want)
	}
	if report.TotalMatches != 3 {
		t.Errorf("TotalMatches = %d, want 3", report.TotalMatches)
	}

	// a matched only through descendants; its subtree holds all three.
	a := report.Matches["a"]
	if a.Direct || a.SubtreeNodes != 4 || a.SubtreeMatches != 3 {
		t.Errorf("node a: details = %+v, want indirect with 4 nodes / 3 matches", a)
	}

	// Search ignores expansion state entirely: everything is collapsed.
	if !c.IsEverythingCollapsed() {
		t.Error("test premise violated: tree should be fully collapsed")
	}
}

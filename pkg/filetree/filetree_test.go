package filetree

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/baumths/treeview/pkg/tree"
)

// scaffold builds a small hierarchy and returns its root:
//
//	root/
//	├── docs/
//	│   └── readme.md
//	├── src/
//	│   ├── main.go
//	│   └── main_test.go
//	├── .git/config
//	└── notes.txt
func scaffold(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"docs", "src", ".git"} {
		if err := os.Mkdir(filepath.Join(root, dir), 0755); err != nil {
			t.Fatal(err)
		}
	}
	for _, file := range []string{
		"docs/readme.md", "src/main.go", "src/main_test.go", ".git/config", "notes.txt",
	} {
		if err := os.WriteFile(filepath.Join(root, file), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func childNames(n *Node) []string {
	names := make([]string, len(n.children))
	for i, c := range n.children {
		names[i] = c.Name
	}
	return names
}

func TestLoadSortsDirectoriesFirst(t *testing.T) {
	root := scaffold(t)
	node, err := Load(root, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !node.Dir {
		t.Fatal("root should be a directory")
	}

	got := childNames(node)
	want := []string{".git", "docs", "src", "notes.txt"}
	if len(got) != len(want) {
		t.Fatalf("children = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children = %v, want %v", got, want)
		}
	}
}

func TestLoadWithIgnore(t *testing.T) {
	root := scaffold(t)
	ignore := NewIgnoreMatcher(root, []string{".git/", "*_test.go"})

	node, err := Load(root, ignore)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, c := range node.children {
		if c.Name == ".git" {
			t.Error(".git should be ignored")
		}
	}
	var src *Node
	for _, c := range node.children {
		if c.Name == "src" {
			src = c
		}
	}
	if src == nil {
		t.Fatal("src missing")
	}
	if got := childNames(src); len(got) != 1 || got[0] != "main.go" {
		t.Errorf("src children = %v, want [main.go]", got)
	}
}

func TestLoadSingleFile(t *testing.T) {
	root := scaffold(t)
	node, err := Load(filepath.Join(root, "notes.txt"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if node.Dir || len(node.Children()) != 0 {
		t.Errorf("file node should be a childless leaf: %+v", node)
	}
}

func TestLoadMissingRoot(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent"), nil); err == nil {
		t.Error("Load of a missing root should error")
	}
}

func TestIgnoreMatcher(t *testing.T) {
	root := "/repo"
	m := NewIgnoreMatcher(root, []string{
		"node_modules/", "*.log", "build/cache", "", "# comment",
	})

	tests := []struct {
		path  string
		isDir bool
		want  bool
	}{
		{"/repo/node_modules", true, true},
		{"/repo/node_modules", false, false}, // dir-only pattern
		{"/repo/deep/node_modules", true, true},
		{"/repo/debug.log", false, true},
		{"/repo/sub/trace.log", false, true},
		{"/repo/build/cache", true, true},
		{"/repo/other/build/cache", true, false}, // root-relative
		{"/repo/main.go", false, false},
	}
	for _, tt := range tests {
		if got := m.Matches(tt.path, tt.isDir); got != tt.want {
			t.Errorf("Matches(%s, dir=%v) = %v, want %v", tt.path, tt.isDir, got, tt.want)
		}
	}

	var nilMatcher *IgnoreMatcher
	if nilMatcher.Matches("/anything", true) {
		t.Error("nil matcher should match nothing")
	}
}

func TestAccessorContract(t *testing.T) {
	root := scaffold(t)
	node, err := Load(root, NewIgnoreMatcher(root, []string{".git/"}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	c := tree.NewController([]*Node{node}, Accessor(), tree.WithDefaultExpansionState(true))
	entries := c.Flatten(nil)
	if len(entries) != 7 { // root, docs, readme.md, src, main.go, main_test.go, notes.txt
		t.Fatalf("Flatten returned %d entries, want 7", len(entries))
	}
	if entries[0].Node() != node || entries[0].Parent() != nil {
		t.Error("root entry malformed")
	}
	for _, e := range entries[1:] {
		if e.Parent() == nil {
			t.Errorf("%s has no parent entry", e.Node().Name)
		}
	}

	// Identity survives a reload of the same hierarchy.
	again, err := Load(root, NewIgnoreMatcher(root, []string{".git/"}))
	if err != nil {
		t.Fatal(err)
	}
	if Accessor().Identity(node) != Accessor().Identity(again) {
		t.Error("reload changed the root identity")
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	root := t.TempDir()

	changed := make(chan struct{}, 1)
	w, err := NewWatcher(root, nil, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(root, "new.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("no change callback within 3s")
	}
}

func TestWatcherSkipsIgnored(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "skip"), 0755); err != nil {
		t.Fatal(err)
	}

	changed := make(chan struct{}, 1)
	w, err := NewWatcher(root, NewIgnoreMatcher(root, []string{"skip/"}), func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(root, "skip", "inner.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
		t.Error("change inside an ignored directory fired a callback")
	case <-time.After(500 * time.Millisecond):
	}
}

// Package filetree adapts a directory hierarchy to the tree accessor
// contract, so a filesystem can be browsed through a tree view. It ships
// an ignore matcher for gitignore-style patterns and an fsnotify-based
// watcher for live reloads.
package filetree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/baumths/treeview/pkg/tree"
)

// Node is one file or directory in a loaded snapshot. The tree is built
// eagerly by Load; identities are absolute paths, stable across reloads.
type Node struct {
	Path string // absolute path, the node identity
	Name string // base name
	Dir  bool

	parent   *Node
	children []*Node
}

// Children returns the node's direct children, directories first.
func (n *Node) Children() []*Node { return n.children }

// Parent returns the containing directory node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Load reads the directory hierarchy rooted at root into a Node tree.
// Entries matched by ignore are skipped along with their subtrees; a nil
// matcher keeps everything. Children are sorted directories first, then
// by name, so reloads produce a stable order.
func Load(root string, ignore *IgnoreMatcher) (*Node, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}

	node := &Node{Path: abs, Name: filepath.Base(abs), Dir: info.IsDir()}
	if node.Dir {
		if err := loadChildren(node, abs, ignore); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func loadChildren(parent *Node, dir string, ignore *IgnoreMatcher) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Unreadable directories render as empty rather than failing the
		// whole load.
		return nil
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if ignore.Matches(path, entry.IsDir()) {
			continue
		}
		child := &Node{
			Path:   path,
			Name:   entry.Name(),
			Dir:    entry.IsDir(),
			parent: parent,
		}
		if child.Dir {
			if err := loadChildren(child, path, ignore); err != nil {
				return err
			}
		}
		parent.children = append(parent.children, child)
	}
	return nil
}

// Accessor returns the accessor contract for Node trees. Identity is the
// absolute path, so expansion state survives a reload of the same
// hierarchy.
func Accessor() tree.Accessor[*Node, string] {
	return tree.Accessor[*Node, string]{
		Children: func(n *Node) []*Node { return n.children },
		Parent:   func(n *Node) (*Node, bool) { return n.parent, n.parent != nil },
		Identity: func(n *Node) string { return n.Path },
	}
}

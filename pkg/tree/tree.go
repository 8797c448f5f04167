// Package tree implements an external-iterator flattening engine for
// caller-owned hierarchical data.
//
// The package never stores a hierarchy of its own. A Controller is handed
// the root nodes plus an Accessor describing how to reach the children,
// parent and identity of any node, and produces ordered, indexable
// flattenings of the currently visible nodes for a virtualized view to
// render. Expansion state lives inside the Controller; the nodes stay
// wherever the caller keeps them.
//
// Everything in this package is single-threaded and synchronous. All
// traversal and mutation operations run to completion on the calling
// goroutine, and the flat lists they produce are snapshots: any later
// mutation invalidates derived fields like Entry.Index, and callers must
// flatten again before trusting them.
package tree

// Accessor supplies read access to caller-owned hierarchical data. The
// engine treats nodes as opaque values and never mutates them.
//
// The accessor is trusted, not validated: cyclic structures and duplicate
// identities are not detected and will loop or corrupt expansion tracking.
// Keeping the data acyclic with unique identities is the caller's job.
type Accessor[T any, I comparable] struct {
	// Children returns the ordered children of a node, or an empty slice
	// for a leaf. It is called once per visited node per flattening pass,
	// so it must be cheap, must not mutate the hierarchy and must not
	// block.
	Children func(node T) []T

	// Parent returns the parent of a node, reporting false for a root.
	// Optional. When nil, ExpandAncestors panics and HasAncestor falls
	// back to an O(subtree) downward search.
	Parent func(node T) (T, bool)

	// Identity returns a stable key for the node, used for map and set
	// membership. Keys must be unique across a traversal and stable for
	// the node's lifetime in the tree.
	Identity func(node T) I
}

// RootLevel is the level assigned to entries created for the traversal
// roots unless WithRootLevel says otherwise.
const RootLevel = 0

// Entry describes one visible node within a single flattening pass.
//
// Entries are created fresh on every pass and are immutable from the
// caller's point of view. An Entry outlives its pass only as a stale
// snapshot: Index and IsExpanded in particular may no longer reflect the
// controller after a mutation.
type Entry[T any] struct {
	node           T
	parent         *Entry[T]
	index          int
	level          int
	expanded       bool
	hasChildren    bool
	hasNextSibling bool
}

// Node returns the caller-owned node this entry was created for.
func (e *Entry[T]) Node() T { return e.node }

// Parent returns the entry of the enclosing node, or nil at the root
// level of the pass.
func (e *Entry[T]) Parent() *Entry[T] { return e.parent }

// Index is the 0-based position of the entry in its flattening pass.
// Indices are dense (0..n-1) within a pass and not stable across passes.
func (e *Entry[T]) Index() int { return e.index }

// Level is the distance from the nearest traversal root.
func (e *Entry[T]) Level() int { return e.level }

// IsExpanded is the expansion snapshot taken when the entry was created.
func (e *Entry[T]) IsExpanded() bool { return e.expanded }

// HasChildren reports whether the accessor returned any children for the
// node, regardless of whether the pass descended into them.
func (e *Entry[T]) HasChildren() bool { return e.hasChildren }

// HasNextSibling reports whether another entry follows at the same level
// under the same parent. Views use it for connector-line continuity.
func (e *Entry[T]) HasNextSibling() bool { return e.hasNextSibling }

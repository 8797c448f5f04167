package tree

// TraverseOptions adjusts a single depth-first pass. The zero value (or a
// nil pointer) yields the standard visible-tree flattening.
type TraverseOptions[T any] struct {
	// Descend decides whether the pass enters an entry's children. It is
	// consulted only for entries that have children, after OnVisit ran
	// for them. nil means descend into expanded entries, which produces
	// exactly the visible portion of the tree.
	Descend func(*Entry[T]) bool

	// Root confines the pass to the children of an existing entry instead
	// of the controller roots. Levels continue from the ancestor context,
	// so a detached subtree renders with correct indentation.
	Root *Entry[T]
}

// DepthFirstTraversal walks the hierarchy pre-order, creating an Entry per
// visited node and handing it to onVisit. The running index is shared
// across the whole pass, so the onVisit sequence observes indices 0..n-1
// with no gaps, parents strictly before their descendants, and siblings in
// accessor order.
//
// HasNextSibling is initialized optimistically and corrected on the last
// entry of each sibling sequence once that sequence completes, so reading
// it from inside onVisit is premature: only the returned or collected
// entries carry the final value.
//
// The traversal performs no cycle or duplicate-identity detection; see
// Accessor.
func (c *Controller[T, I]) DepthFirstTraversal(onVisit func(*Entry[T]), opts *TraverseOptions[T]) {
	descend := func(e *Entry[T]) bool { return e.expanded }
	if opts != nil && opts.Descend != nil {
		descend = opts.Descend
	}

	index := 0
	var walk func(nodes []T, parent *Entry[T], level int)
	walk = func(nodes []T, parent *Entry[T], level int) {
		var last *Entry[T]
		for _, node := range nodes {
			children := c.accessor.Children(node)
			entry := &Entry[T]{
				node:           node,
				parent:         parent,
				index:          index,
				level:          level,
				expanded:       c.expansion.get(c.accessor.Identity(node)),
				hasChildren:    len(children) > 0,
				hasNextSibling: true,
			}
			index++
			onVisit(entry)
			if entry.hasChildren && descend(entry) {
				walk(children, entry, level+1)
			}
			last = entry
		}
		if last != nil {
			last.hasNextSibling = false
		}
	}

	roots, parent, level := c.roots, (*Entry[T])(nil), c.rootLevel
	if opts != nil && opts.Root != nil {
		parent = opts.Root
		roots = c.accessor.Children(parent.node)
		level = parent.level + 1
	}
	walk(roots, parent, level)
}

// Flatten materializes a depth-first pass into an ordered entry list. The
// result is a snapshot; it stays internally consistent but goes stale on
// the next mutation.
func (c *Controller[T, I]) Flatten(opts *TraverseOptions[T]) []*Entry[T] {
	var entries []*Entry[T]
	c.DepthFirstTraversal(func(e *Entry[T]) { entries = append(entries, e) }, opts)
	return entries
}

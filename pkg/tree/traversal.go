package tree

// BreadthFirstOptions parameterizes BreadthFirstSearch. All fields are
// optional.
type BreadthFirstOptions[T any] struct {
	// OnVisit runs for every dequeued node before Descend and Return are
	// consulted, enabling update-then-decide flows where the visit itself
	// changes the state the predicates read.
	OnVisit func(T)

	// Descend decides whether a node's children join the queue. nil means
	// always descend.
	Descend func(T) bool

	// Return stops the search at the first node it accepts. nil means
	// never, turning the call into a plain whole-tree visit.
	Return func(T) bool
}

// BreadthFirstSearch walks the hierarchy level by level (FIFO) starting at
// the roots. It returns the first node satisfying Return, or the zero
// value and false once the queue drains. The early exit is cooperative:
// the condition is checked once per visited node.
func (c *Controller[T, I]) BreadthFirstSearch(opts BreadthFirstOptions[T]) (T, bool) {
	queue := append([]T(nil), c.roots...)
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		if opts.OnVisit != nil {
			opts.OnVisit(node)
		}
		if opts.Return != nil && opts.Return(node) {
			return node, true
		}
		if opts.Descend == nil || opts.Descend(node) {
			queue = append(queue, c.accessor.Children(node)...)
		}
	}
	var zero T
	return zero, false
}

// ExpandAncestors walks from node toward the root, force-expanding every
// ancestor so the node becomes reachable in the next flattening. The node
// itself is left untouched. Listeners are notified once, after the walk.
//
// Panics when the accessor has no Parent function; there is no silent
// fallback because an ancestor walk without parent linkage would have to
// scan the whole tree on an operation callers expect to be O(depth).
func (c *Controller[T, I]) ExpandAncestors(node T) {
	if c.accessor.Parent == nil {
		panic("treeview: ExpandAncestors requires Accessor.Parent")
	}
	current := node
	for {
		parent, ok := c.accessor.Parent(current)
		if !ok {
			break
		}
		c.expansion.set(c.accessor.Identity(parent), true)
		current = parent
	}
	c.notifyListeners()
}

// HasAncestor reports whether candidate lies on the path from node to its
// root. A node is not its own ancestor.
//
// With a Parent accessor this is an O(depth) upward walk. Without one it
// degrades to an O(subtree) downward search that locates node from the
// roots while tracking whether candidate was seen on the active path.
func (c *Controller[T, I]) HasAncestor(node T, candidate T) bool {
	target := c.accessor.Identity(candidate)

	if c.accessor.Parent != nil {
		current := node
		for {
			parent, ok := c.accessor.Parent(current)
			if !ok {
				return false
			}
			if c.accessor.Identity(parent) == target {
				return true
			}
			current = parent
		}
	}

	want := c.accessor.Identity(node)
	found := false
	var walk func(n T, onPath bool) bool
	walk = func(n T, onPath bool) bool {
		if c.accessor.Identity(n) == want {
			found = onPath
			return true
		}
		if c.accessor.Identity(n) == target {
			onPath = true
		}
		for _, child := range c.accessor.Children(n) {
			if walk(child, onPath) {
				return true
			}
		}
		return false
	}
	for _, root := range c.roots {
		if walk(root, false) {
			break
		}
	}
	return found
}

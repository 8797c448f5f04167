package tree

// Transitions diffs consecutive flattening passes to find entries whose
// expansion state flipped between them. A flipped node enters the
// animating set and its subtree is kept out of the flat list, so the view
// can animate the node as a single collapsed row. When the view's
// transition finishes it calls Complete and re-flattens plainly to
// reconcile the now-stable subtree.
//
// A Transitions value wraps one controller and replaces direct Flatten
// calls for views that animate. It carries per-view state (the previous
// pass), so two views over the same controller need two trackers.
type Transitions[T any, I comparable] struct {
	controller *Controller[T, I]
	previous   map[I]*Entry[T]
	animating  map[I]struct{}
}

// NewTransitions creates a tracker over controller with no previous pass,
// so the first Flatten detects no transitions.
func NewTransitions[T any, I comparable](controller *Controller[T, I]) *Transitions[T, I] {
	return &Transitions[T, I]{
		controller: controller,
		previous:   make(map[I]*Entry[T]),
		animating:  make(map[I]struct{}),
	}
}

// Flatten runs a tracked flattening pass.
//
// Nodes whose expansion snapshot differs from the previous pass join the
// animating set during the visit, and the pass refuses to descend into any
// animating node regardless of its expansion flag, so a freshly expanded
// subtree stays hidden until Complete releases it. The removed result
// lists nodes that were visible in the previous pass but not in this one,
// whether deleted from the data or hidden behind a collapsed ancestor;
// views use them for removal transitions.
func (t *Transitions[T, I]) Flatten() (entries []*Entry[T], removed []T) {
	identity := t.controller.accessor.Identity
	visited := make(map[I]struct{}, len(t.previous))

	onVisit := func(e *Entry[T]) {
		id := identity(e.node)
		visited[id] = struct{}{}
		if prev, ok := t.previous[id]; ok && prev.expanded != e.expanded {
			t.animating[id] = struct{}{}
		}
		entries = append(entries, e)
	}
	descend := func(e *Entry[T]) bool {
		if _, ok := t.animating[identity(e.node)]; ok {
			return false
		}
		return e.expanded
	}
	t.controller.DepthFirstTraversal(onVisit, &TraverseOptions[T]{Descend: descend})

	for id, prev := range t.previous {
		if _, ok := visited[id]; !ok {
			removed = append(removed, prev.node)
		}
	}

	next := make(map[I]*Entry[T], len(entries))
	for _, e := range entries {
		next[identity(e.node)] = e
	}
	t.previous = next

	return entries, removed
}

// IsAnimating reports whether node is currently mid-transition.
func (t *Transitions[T, I]) IsAnimating(node T) bool {
	_, ok := t.animating[t.controller.accessor.Identity(node)]
	return ok
}

// AnimatingCount returns the number of nodes currently mid-transition.
func (t *Transitions[T, I]) AnimatingCount() int { return len(t.animating) }

// Complete releases node from the animating set, reporting whether it was
// in there. The view calls this when its transition finishes and must
// re-flatten afterwards; until then the flat list still renders the node
// as a single transitioning row.
func (t *Transitions[T, I]) Complete(node T) bool {
	id := t.controller.accessor.Identity(node)
	if _, ok := t.animating[id]; !ok {
		return false
	}
	delete(t.animating, id)
	return true
}

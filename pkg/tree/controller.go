package tree

// Option configures a Controller at construction time.
type Option func(*options)

type options struct {
	defaultExpanded bool
	rootLevel       int
}

// WithDefaultExpansionState sets the expansion state reported for nodes
// that were never explicitly expanded or collapsed. The default is
// collapsed.
func WithDefaultExpansionState(expanded bool) Option {
	return func(o *options) { o.defaultExpanded = expanded }
}

// WithRootLevel sets the level assigned to root entries during flattening.
// Defaults to RootLevel.
func WithRootLevel(level int) Option {
	return func(o *options) { o.rootLevel = level }
}

// Controller owns the expansion state for a caller-supplied hierarchy and
// exposes the mutation, query and flattening operations a tree view needs.
//
// The controller has exactly one logical writer: all state changes go
// through its methods on a single goroutine. Mutating the expansion state
// behind the controller's back leaves any cached flattening inconsistent.
type Controller[T any, I comparable] struct {
	accessor  Accessor[T, I]
	roots     []T
	expansion *expansionState[I]
	rootLevel int

	listeners  []listener
	nextHandle int
}

type listener struct {
	handle int
	fn     func()
}

// NewController creates a controller over roots using the given accessor.
// Panics if accessor.Children or accessor.Identity is nil; those two are
// the minimum contract, while accessor.Parent stays optional.
func NewController[T any, I comparable](roots []T, accessor Accessor[T, I], opts ...Option) *Controller[T, I] {
	if accessor.Children == nil {
		panic("treeview: Accessor.Children must not be nil")
	}
	if accessor.Identity == nil {
		panic("treeview: Accessor.Identity must not be nil")
	}

	o := options{rootLevel: RootLevel}
	for _, opt := range opts {
		opt(&o)
	}

	return &Controller[T, I]{
		accessor:  accessor,
		roots:     roots,
		expansion: newExpansionState[I](o.defaultExpanded),
		rootLevel: o.rootLevel,
	}
}

// Roots returns the current traversal roots.
func (c *Controller[T, I]) Roots() []T { return c.roots }

// SetRoots replaces the traversal roots and notifies listeners. Use it
// when the underlying data changed out-of-band and the view must
// re-flatten from scratch. Expansion state is kept; identities that no
// longer occur simply stop mattering.
func (c *Controller[T, I]) SetRoots(roots []T) {
	c.roots = roots
	c.notifyListeners()
}

// Accessor returns the accessor the controller was built with.
func (c *Controller[T, I]) Accessor() Accessor[T, I] { return c.accessor }

// DefaultExpansionState reports the state assumed for nodes that were
// never explicitly expanded or collapsed.
func (c *Controller[T, I]) DefaultExpansionState() bool {
	return c.expansion.defaultExpanded
}

// AddListener registers fn to run after every mutation that invalidates
// cached flattenings, and returns a handle for RemoveListener. Listeners
// run synchronously, in registration order, on the mutating goroutine.
func (c *Controller[T, I]) AddListener(fn func()) int {
	c.nextHandle++
	c.listeners = append(c.listeners, listener{handle: c.nextHandle, fn: fn})
	return c.nextHandle
}

// RemoveListener unregisters a listener by its handle. Unknown handles are
// ignored.
func (c *Controller[T, I]) RemoveListener(handle int) {
	for i, l := range c.listeners {
		if l.handle == handle {
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			return
		}
	}
}

// Notify tells listeners that cached flattenings are stale. Mutation
// methods call it automatically; callers need it only after out-of-band
// changes such as bulk SetExpansionState batches or mutations of the
// underlying data the controller cannot see.
func (c *Controller[T, I]) Notify() {
	c.notifyListeners()
}

func (c *Controller[T, I]) notifyListeners() {
	for _, l := range c.listeners {
		l.fn()
	}
}

// GetExpansionState returns the current expansion flag of node. Nodes the
// controller has never seen report the default state.
func (c *Controller[T, I]) GetExpansionState(node T) bool {
	return c.expansion.get(c.accessor.Identity(node))
}

// SetExpansionState writes the expansion flag of node without notifying
// listeners. It exists for bulk state restoration (e.g. applying persisted
// view state before a single rebuild); interactive code should use Expand,
// Collapse or Toggle instead.
func (c *Controller[T, I]) SetExpansionState(node T, expanded bool) {
	c.expansion.set(c.accessor.Identity(node), expanded)
}

// Expand marks node as expanded and notifies listeners. No-op without
// notification when the node is already expanded.
func (c *Controller[T, I]) Expand(node T) {
	if c.expansion.set(c.accessor.Identity(node), true) {
		c.notifyListeners()
	}
}

// Collapse marks node as collapsed and notifies listeners. No-op without
// notification when the node is already collapsed.
func (c *Controller[T, I]) Collapse(node T) {
	if c.expansion.set(c.accessor.Identity(node), false) {
		c.notifyListeners()
	}
}

// Toggle inverts the expansion state of node. Unlike Expand and Collapse
// it always results in a change, so it always notifies.
func (c *Controller[T, I]) Toggle(node T) {
	id := c.accessor.Identity(node)
	c.expansion.set(id, !c.expansion.get(id))
	c.notifyListeners()
}

// ExpandCascading expands the given nodes and all of their descendants,
// depth-first pre-order, then notifies exactly once. The per-node
// notification bypass is what keeps this usable on large subtrees.
func (c *Controller[T, I]) ExpandCascading(nodes ...T) {
	c.cascade(nodes, true)
	c.notifyListeners()
}

// CollapseCascading collapses the given nodes and all of their
// descendants, then notifies exactly once.
func (c *Controller[T, I]) CollapseCascading(nodes ...T) {
	c.cascade(nodes, false)
	c.notifyListeners()
}

func (c *Controller[T, I]) cascade(nodes []T, expanded bool) {
	for _, node := range nodes {
		c.expansion.set(c.accessor.Identity(node), expanded)
		c.cascade(c.accessor.Children(node), expanded)
	}
}

// ExpandAll expands every node reachable from the roots and notifies once.
func (c *Controller[T, I]) ExpandAll() {
	c.ExpandCascading(c.roots...)
}

// CollapseAll collapses every node reachable from the roots and notifies
// once.
func (c *Controller[T, I]) CollapseAll() {
	c.CollapseCascading(c.roots...)
}

// IsEverythingExpanded reports whether every node reachable from the roots
// is currently expanded, leaves included.
func (c *Controller[T, I]) IsEverythingExpanded() bool {
	if c.expansion.defaultExpanded && len(c.expansion.overrides) == 0 {
		return true
	}
	_, collapsed := c.BreadthFirstSearch(BreadthFirstOptions[T]{
		Return: func(node T) bool { return !c.GetExpansionState(node) },
	})
	return !collapsed
}

// IsEverythingCollapsed reports whether every node reachable from the
// roots is currently collapsed.
func (c *Controller[T, I]) IsEverythingCollapsed() bool {
	if !c.expansion.defaultExpanded && len(c.expansion.overrides) == 0 {
		return true
	}
	_, expanded := c.BreadthFirstSearch(BreadthFirstOptions[T]{
		Return: func(node T) bool { return c.GetExpansionState(node) },
	})
	return !expanded
}

// Dispose drops all expansion overrides and listeners. The controller can
// be reused afterwards as if freshly constructed over the same roots.
func (c *Controller[T, I]) Dispose() {
	c.expansion.clear()
	c.listeners = nil
}

package tree

// expansionState tracks which node identities are expanded. Only the
// identities holding the non-default state are stored; the effective state
// of any identity is the default flag XOR its presence in the override
// set. Identities never seen before simply report the default, so there is
// no registration step.
//
// The store itself never notifies anyone. Cascading operations call set in
// a tight loop over thousands of nodes, and notification cost is paid once
// at the end of the batch by the controller.
type expansionState[I comparable] struct {
	defaultExpanded bool
	overrides       map[I]struct{}
}

func newExpansionState[I comparable](defaultExpanded bool) *expansionState[I] {
	return &expansionState[I]{
		defaultExpanded: defaultExpanded,
		overrides:       make(map[I]struct{}),
	}
}

func (s *expansionState[I]) get(id I) bool {
	_, overridden := s.overrides[id]
	return s.defaultExpanded != overridden
}

// set records the expansion state for id and reports whether it changed.
// Setting the already-held state is a no-op.
func (s *expansionState[I]) set(id I, expanded bool) bool {
	if s.get(id) == expanded {
		return false
	}
	if expanded != s.defaultExpanded {
		s.overrides[id] = struct{}{}
	} else {
		delete(s.overrides, id)
	}
	return true
}

func (s *expansionState[I]) clear() {
	s.overrides = make(map[I]struct{})
}

package tree

// MatchDetails describes how one node related to a Search predicate.
type MatchDetails struct {
	// Direct reports whether the predicate matched the node itself.
	Direct bool

	// SubtreeNodes counts the node's descendants. The node itself is not
	// included.
	SubtreeNodes int

	// SubtreeMatches counts direct predicate matches among the node's
	// descendants, again excluding the node itself.
	SubtreeMatches int
}

// IsIndirect reports whether the node is only in the report because a
// descendant matched.
func (d MatchDetails) IsIndirect() bool {
	return !d.Direct && d.SubtreeMatches > 0
}

// SearchReport is the result of a whole-tree predicate search.
type SearchReport[I comparable] struct {
	// Matches holds details for every node that matched directly or has
	// at least one matching descendant. Nodes matching neither way are
	// absent entirely.
	Matches map[I]MatchDetails

	// TotalNodes is the number of nodes visited.
	TotalNodes int

	// TotalMatches is the number of direct predicate matches.
	TotalMatches int
}

// Search traverses the entire hierarchy, expansion state notwithstanding,
// and reports every direct and indirect match of predicate.
//
// This is a bottom-up aggregation: a node's subtree counts are only known
// once all of its children have been visited, so the traversal is
// post-order internally even though the predicate runs on the way down.
func (c *Controller[T, I]) Search(predicate func(T) bool) SearchReport[I] {
	report := SearchReport[I]{Matches: make(map[I]MatchDetails)}

	// walk returns the subtree size and direct match count including n
	// itself, which is what the parent needs to accumulate.
	var walk func(n T) (nodes, matches int)
	walk = func(n T) (int, int) {
		direct := predicate(n)
		report.TotalNodes++
		if direct {
			report.TotalMatches++
		}

		subtreeNodes, subtreeMatches := 0, 0
		for _, child := range c.accessor.Children(n) {
			cn, cm := walk(child)
			subtreeNodes += cn
			subtreeMatches += cm
		}

		if direct || subtreeMatches > 0 {
			report.Matches[c.accessor.Identity(n)] = MatchDetails{
				Direct:         direct,
				SubtreeNodes:   subtreeNodes,
				SubtreeMatches: subtreeMatches,
			}
		}

		if direct {
			return subtreeNodes + 1, subtreeMatches + 1
		}
		return subtreeNodes + 1, subtreeMatches
	}

	for _, root := range c.roots {
		walk(root)
	}
	return report
}
